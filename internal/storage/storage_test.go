package storage_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jiashen-meow/feelingdiary/internal/model"
	"github.com/jiashen-meow/feelingdiary/internal/storage"
)

func sampleEntries() []model.Entry {
	base := time.Date(2025, 11, 6, 21, 15, 30, 987654321, time.UTC)
	return []model.Entry{
		{ID: uuid.New(), Content: "Tired.", Date: base, Tags: []string{"#tired"}},
		{ID: uuid.New(), Content: "Had dinner with #A today.", Date: base.Add(-24 * time.Hour), Tags: []string{"#A", "#cooking", "#A"}},
		{ID: uuid.New(), Content: "Good session today.", Date: base.Add(-48 * time.Hour), Tags: []string{}},
	}
}

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.New(storage.DefaultPath(t.TempDir()))
}

func TestLoadNotExist(t *testing.T) {
	s := newStore(t)
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("Load entries = %v, want empty non-nil slice", entries)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	want := sampleEntries()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load entries = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("entry %d id = %s, want %s", i, got[i].ID, want[i].ID)
		}
		if got[i].Content != want[i].Content {
			t.Errorf("entry %d content = %q, want %q", i, got[i].Content, want[i].Content)
		}
		if !got[i].Date.Equal(want[i].Date.Truncate(time.Second)) {
			t.Errorf("entry %d date = %v, want %v", i, got[i].Date, want[i].Date.Truncate(time.Second))
		}
		if strings.Join(got[i].Tags, ",") != strings.Join(want[i].Tags, ",") {
			t.Errorf("entry %d tags = %v, want %v", i, got[i].Tags, want[i].Tags)
		}
	}
}

func TestSaveEmptyCollection(t *testing.T) {
	s := newStore(t)
	if err := s.Save([]model.Entry{}); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty document = %q, want []", data)
	}
}

func TestSaveWireFormat(t *testing.T) {
	s := newStore(t)
	e := model.Entry{
		ID:      uuid.MustParse("3f2b8c1e-5d4a-4e8f-9b7c-1a2d3e4f5a6b"),
		Content: "Awful.",
		Date:    time.Date(2025, 11, 3, 8, 0, 0, 0, time.FixedZone("PST", -8*3600)),
	}
	if err := s.Save([]model.Entry{e}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Errorf("document is not pretty-printed:\n%s", data)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("document is not a JSON array: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("document has %d elements, want 1", len(raw))
	}
	if raw[0]["id"] != "3F2B8C1E-5D4A-4E8F-9B7C-1A2D3E4F5A6B" {
		t.Errorf("id = %v", raw[0]["id"])
	}
	if raw[0]["date"] != "2025-11-03T16:00:00Z" {
		t.Errorf("date = %v, want 2025-11-03T16:00:00Z", raw[0]["date"])
	}
	if tags, ok := raw[0]["tags"].([]any); !ok || len(tags) != 0 {
		t.Errorf("tags = %#v, want empty array", raw[0]["tags"])
	}
}

func TestLoadAcceptsForeignDocument(t *testing.T) {
	s := newStore(t)
	doc := `[
  {
    "tags" : ["#therapy"],
    "date" : "2025-11-03T16:00:00Z",
    "content" : "Good session today.",
    "id" : "3f2b8c1e-5d4a-4e8f-9b7c-1a2d3e4f5a6b"
  },
  {
    "id" : "5E0A3B7F-2C1D-4B6A-8E9F-0A1B2C3D4E5F",
    "content" : "Why am I like this?",
    "date" : "2025-11-02T09:30:00.250-05:00"
  }
]`
	if err := os.WriteFile(s.Path(), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Load entries = %d, want 2", len(entries))
	}
	if entries[0].ID != uuid.MustParse("3F2B8C1E-5D4A-4E8F-9B7C-1A2D3E4F5A6B") {
		t.Errorf("id = %s", entries[0].ID)
	}
	if entries[1].Tags == nil {
		t.Error("missing tags should load as an empty slice")
	}
	if !entries[1].Date.Equal(time.Date(2025, 11, 2, 14, 30, 0, 250e6, time.UTC)) {
		t.Errorf("date = %v", entries[1].Date)
	}
}

func TestLoadCorrupt(t *testing.T) {
	s := newStore(t)
	if err := os.WriteFile(s.Path(), []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Load()
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("Load err = %v, want ErrCorrupt", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("Load entries = %v, want empty", entries)
	}
	var cerr *storage.CorruptError
	if !errors.As(err, &cerr) || cerr.Backup == "" {
		t.Fatalf("expected a CorruptError with a backup path, got %v", err)
	}

	backup, err := os.ReadFile(s.Path() + ".corrupt")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(backup) != "{bad json" {
		t.Errorf("backup content = %q", backup)
	}

	// The corrupt document is out of the way, so the next load is a first run.
	if _, err := s.Load(); err != nil {
		t.Errorf("Load after backup: %v", err)
	}
}

func TestLoadBadFieldIsCorrupt(t *testing.T) {
	s := newStore(t)
	doc := `[{"id":"not-a-uuid","content":"x","date":"2025-11-03T16:00:00Z","tags":[]}]`
	if err := os.WriteFile(s.Path(), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("Load err = %v, want ErrCorrupt", err)
	}
}

func TestLoadRejectsEntriesSaveWouldRefuse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"blank content", `[{"id":"3F2B8C1E-5D4A-4E8F-9B7C-1A2D3E4F5A6B","content":"  ","date":"2025-11-03T16:00:00Z","tags":[]}]`},
		{"duplicate ids", `[
  {"id":"3F2B8C1E-5D4A-4E8F-9B7C-1A2D3E4F5A6B","content":"one","date":"2025-11-03T16:00:00Z","tags":[]},
  {"id":"3f2b8c1e-5d4a-4e8f-9b7c-1a2d3e4f5a6b","content":"two","date":"2025-11-04T16:00:00Z","tags":[]}
]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if err := os.WriteFile(s.Path(), []byte(tt.doc), 0o600); err != nil {
				t.Fatal(err)
			}
			entries, err := s.Load()
			if !errors.Is(err, storage.ErrCorrupt) || !errors.Is(err, model.ErrInvalidEntry) {
				t.Fatalf("Load err = %v, want ErrCorrupt wrapping ErrInvalidEntry", err)
			}
			if len(entries) != 0 {
				t.Errorf("Load entries = %d, want 0", len(entries))
			}
			backup, err := os.ReadFile(s.Path() + ".corrupt")
			if err != nil || string(backup) != tt.doc {
				t.Errorf("backup = %q, %v", backup, err)
			}
		})
	}
}

func TestSecondCorruptionKeepsFirstBackup(t *testing.T) {
	dir := t.TempDir()
	s := storage.New(storage.DefaultPath(dir))

	for _, doc := range []string{"{first", "{second"} {
		if err := os.WriteFile(s.Path(), []byte(doc), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Load(); !errors.Is(err, storage.ErrCorrupt) {
			t.Fatalf("Load err = %v, want ErrCorrupt", err)
		}
	}

	first, err := os.ReadFile(s.Path() + ".corrupt")
	if err != nil || string(first) != "{first" {
		t.Fatalf("first backup = %q, %v", first, err)
	}
	matches, err := filepath.Glob(s.Path() + ".corrupt-*")
	if err != nil || len(matches) != 1 {
		t.Fatalf("second backups = %v, %v", matches, err)
	}
	second, _ := os.ReadFile(matches[0])
	if string(second) != "{second" {
		t.Errorf("second backup = %q", second)
	}
}

func TestSaveRejectsUnreadableValues(t *testing.T) {
	tests := []struct {
		name  string
		entry model.Entry
	}{
		{"year after 9999", model.NewEntry("future", nil, time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))},
		{"invalid utf-8 content", model.NewEntry("caf\xe9", nil, time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC))},
		{"invalid utf-8 tag", model.NewEntry("cafe", []string{"#caf\xe9"}, time.Date(2025, 11, 6, 9, 0, 0, 0, time.UTC))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if err := s.Save(sampleEntries()); err != nil {
				t.Fatal(err)
			}
			before, _ := os.ReadFile(s.Path())

			err := s.Save(append(sampleEntries(), tt.entry))
			if !errors.Is(err, model.ErrInvalidEntry) {
				t.Fatalf("Save err = %v, want ErrInvalidEntry", err)
			}
			after, _ := os.ReadFile(s.Path())
			if string(before) != string(after) {
				t.Error("rejected save modified the document")
			}
			if entries, err := s.Load(); err != nil || len(entries) != 3 {
				t.Errorf("Load after rejected save = %d entries, %v", len(entries), err)
			}
		})
	}
}

func TestSaveRejectsInvalidAndKeepsOldDocument(t *testing.T) {
	s := newStore(t)
	good := sampleEntries()
	if err := s.Save(good); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(s.Path())

	bad := append(sampleEntries(), model.Entry{ID: uuid.New(), Content: "   ", Date: time.Now()})
	err := s.Save(bad)
	if !errors.Is(err, model.ErrInvalidEntry) {
		t.Fatalf("Save err = %v, want ErrInvalidEntry", err)
	}

	after, _ := os.ReadFile(s.Path())
	if string(before) != string(after) {
		t.Error("rejected save modified the document")
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := storage.New(filepath.Join(blocker, storage.FileName))

	if err := s.Save(sampleEntries()); err == nil {
		t.Fatal("expected an error saving beneath a regular file")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := storage.New(storage.DefaultPath(dir))
	for i := 0; i < 3; i++ {
		if err := s.Save(sampleEntries()); err != nil {
			t.Fatal(err)
		}
	}
	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name() != storage.FileName {
		var names []string
		for _, f := range files {
			names = append(names, f.Name())
		}
		t.Errorf("data dir contains %v, want only %s", names, storage.FileName)
	}
}

func TestClear(t *testing.T) {
	s := newStore(t)
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
	if err := s.Save(sampleEntries()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Errorf("document still exists after Clear: %v", err)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := storage.NewMetrics(reg)
	s := storage.New(storage.DefaultPath(t.TempDir()), storage.WithMetrics(m))

	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(sampleEntries()); err != nil {
		t.Fatal(err)
	}
	_ = s.Save([]model.Entry{{ID: uuid.New(), Date: time.Now()}})
	if _, err := s.Load(); err != nil {
		t.Fatal(err)
	}

	if got := testutil.ToFloat64(m.Loads.WithLabelValues("missing")); got != 1 {
		t.Errorf("missing loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Loads.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Saves.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok saves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Saves.WithLabelValues("invalid")); got != 1 {
		t.Errorf("invalid saves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Entries); got != 3 {
		t.Errorf("entries gauge = %v, want 3", got)
	}
}
