package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jiashen-meow/feelingdiary/internal/model"
)

// record is the on-disk shape of one entry. Dates are RFC 3339 at second
// precision in UTC and ids are upper-case, matching what the iOS app writes.
type record struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
}

// Marshal encodes entries as the pretty-printed JSON array stored on disk.
func Marshal(entries []model.Entry) ([]byte, error) {
	records := make([]record, len(entries))
	for i, e := range entries {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		records[i] = record{
			ID:      strings.ToUpper(e.ID.String()),
			Content: e.Content,
			Date:    e.Date.UTC().Format(time.RFC3339),
			Tags:    tags,
		}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling entries: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a stored document. Key order and id case are not significant.
// A document Save would refuse to write, such as one with blank content or
// repeated ids, is rejected with model.ErrInvalidEntry.
func Unmarshal(data []byte) ([]model.Entry, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	entries := make([]model.Entry, 0, len(records))
	for i, r := range records {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: bad id %q: %w", i, r.ID, err)
		}
		date, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: bad date %q: %w", i, r.Date, err)
		}
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, model.Entry{
			ID:      id,
			Content: r.Content,
			Date:    date.UTC(),
			Tags:    tags,
		})
	}
	if err := model.ValidateAll(entries); err != nil {
		return nil, err
	}
	return entries, nil
}
