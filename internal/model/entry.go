package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// ErrInvalidEntry is returned when an entry fails validation at the save boundary.
var ErrInvalidEntry = errors.New("invalid entry")

// Entry is a single journal record.
type Entry struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	Content string    `json:"content" validate:"notblank"`
	Date    time.Time `json:"date" validate:"required,storabledate"`
	Tags    []string  `json:"tags"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("storabledate", storableDate); err != nil {
		panic(err)
	}
	return v
}

// storableDate accepts times whose UTC year fits the four-digit RFC 3339 form.
func storableDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	year := t.UTC().Year()
	return year >= 0 && year <= 9999
}

// NewEntry creates an entry with a fresh random identifier.
func NewEntry(content string, tags []string, date time.Time) Entry {
	if tags == nil {
		tags = []string{}
	}
	return Entry{
		ID:      uuid.New(),
		Content: content,
		Date:    date,
		Tags:    tags,
	}
}

// Validate reports whether e may be persisted.
func (e Entry) Validate() error {
	if !utf8.ValidString(e.Content) {
		return fmt.Errorf("%w %s: content is not valid UTF-8", ErrInvalidEntry, e.ID)
	}
	for _, tag := range e.Tags {
		if !utf8.ValidString(tag) {
			return fmt.Errorf("%w %s: tag %q is not valid UTF-8", ErrInvalidEntry, e.ID, tag)
		}
	}

	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" "+describe(fe.Tag()))
	}
	return fmt.Errorf("%w %s: %s", ErrInvalidEntry, e.ID, strings.Join(fields, ", "))
}

func describe(tag string) string {
	switch tag {
	case "notblank":
		return "must not be blank"
	case "required":
		return "is required"
	case "storabledate":
		return "must fall between years 0000 and 9999"
	default:
		return "failed " + tag
	}
}

// ValidateAll validates every entry and checks that identifiers are unique.
func ValidateAll(entries []Entry) error {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidEntry, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with e.
func (e Entry) Clone() Entry {
	c := e
	c.Tags = append([]string{}, e.Tags...)
	return c
}
