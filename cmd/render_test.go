package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jiashen-meow/feelingdiary/internal/model"
)

func TestPreview(t *testing.T) {
	twelve := make([]string, 12)
	for i := range twelve {
		twelve[i] = fmt.Sprintf("line %d", i+1)
	}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "Feeling great", "Feeling great"},
		{"trims surrounding blank lines", "\n\nhello\n\n", "hello"},
		{"ten lines kept", strings.Join(twelve[:10], "\n"), strings.Join(twelve[:10], "\n")},
		{"longer cut after ten", strings.Join(twelve, "\n"), strings.Join(twelve[:10], "\n") + "\n…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preview(tt.input); got != tt.want {
				t.Errorf("preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	id := uuid.MustParse("0D5D6A4A-9E4B-4C1A-8F5B-2C1A3E4D5F60")
	if got := shortID(id); got != "0d5d6a4a" {
		t.Errorf("shortID = %q, want %q", got, "0d5d6a4a")
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 entries"},
		{1, "1 entry"},
		{2, "2 entries"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "entry", "entries"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage", usageError(base), 1},
		{"storage", storageError(base), 2},
		{"wrapped storage", fmt.Errorf("running: %w", storageError(base)), 2},
		{"plain", base, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode = %d, want %d", got, tt.want)
			}
		})
	}
	if !errors.Is(storageError(base), base) {
		t.Error("exitError should unwrap to its cause")
	}
}

func TestRenderCard(t *testing.T) {
	now := time.Date(2025, 11, 6, 20, 0, 0, 0, time.Local)
	e := model.NewEntry("Slept well", []string{"#rested"}, now.Add(-24*time.Hour))

	card := renderCard(e, now, false)
	for _, want := range []string{"Slept well", "#rested", "Yesterday", shortID(e.ID)} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}
