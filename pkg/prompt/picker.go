// Package prompt lets a terminal user choose which record and which fields to
// decode.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/botandrose/red-cap/pkg/form"
	"github.com/botandrose/red-cap/pkg/record"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoRecords is returned when there is nothing to pick from.
	ErrNoRecords = errors.New("prompt: no records to choose from")
)

// PickFields asks which fields to decode. Descriptive fields are offered too
// because their names still appear in decoded output. An empty selection
// means every field.
func PickFields(ctx context.Context, driver Driver, f *form.Form) ([]string, error) {
	if driver == nil || f == nil {
		return nil, errors.New("prompt: driver and form are required")
	}
	list := f.Fields()
	options := make([]string, len(list))
	for i, field := range list {
		options[i] = fmt.Sprintf("%s (%s)", field.Label(), field.Name())
	}

	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Fields to decode",
		Options:  options,
		Help:     "Leave empty to decode every field.",
		PageSize: 15,
	})
	if err != nil {
		return nil, err
	}

	var names []string
	for _, idx := range picked {
		if idx >= 0 && idx < len(list) {
			names = append(names, list[idx].Name())
		}
	}
	return names, nil
}

// PickRecord asks which record to decode, labelling each by idField. A
// single record is announced and returned without prompting.
func PickRecord(ctx context.Context, driver Driver, records []record.Record, idField string) (int, error) {
	if driver == nil {
		return -1, errors.New("prompt: driver is required")
	}
	if len(records) == 0 {
		return -1, ErrNoRecords
	}

	options := make([]string, len(records))
	for i, r := range records {
		options[i] = recordLabel(r, idField, i)
	}
	if len(records) == 1 {
		if err := driver.Info(ctx, "Decoding "+options[0]); err != nil {
			return -1, err
		}
		return 0, nil
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message: "Record to decode",
		Options: options,
	})
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(records) {
		return -1, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return idx, nil
}

func recordLabel(r record.Record, idField string, pos int) string {
	id, ok := r.Get(idField)
	if !ok || id == "" {
		id = fmt.Sprintf("#%d", pos+1)
	}
	return fmt.Sprintf("%s %s", idField, id)
}
