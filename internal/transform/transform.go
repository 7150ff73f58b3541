// Package transform turns decoded repositories into ordered export rows.
package transform

import (
	"fmt"
	"slices"
	"time"

	"github.com/kurihiro0119/ghstats/internal/domain"
	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
)

// Project keeps, for every record, the fields named in keep that the record
// actually has. Absent fields are omitted, never defaulted. Output fields
// follow the order of keep. The input is not modified.
func Project(records []domain.RawRecord, keep []string) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, src := range records {
		rec := make(domain.Record, 0, len(keep))
		for _, name := range keep {
			if v, ok := src[name]; ok {
				rec = append(rec, domain.Field{Name: name, Value: v})
			}
		}
		out[i] = rec
	}
	return out
}

// CreatedAt parses the record's created_at field.
func CreatedAt(r domain.Record) (time.Time, error) {
	v, ok := r.Get(domain.FieldCreatedAt)
	if !ok {
		return time.Time{}, apperrors.NewDataShapeError("record has no "+domain.FieldCreatedAt, nil)
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, apperrors.NewDataShapeError(fmt.Sprintf("%s is not a string: %v", domain.FieldCreatedAt, v), nil)
	}
	t, err := time.Parse(domain.TimestampLayout, s)
	if err == nil && t.Format(domain.TimestampLayout) != s {
		// time.Parse accepts fractional seconds the layout does not name.
		err = fmt.Errorf("does not match %s", domain.TimestampLayout)
	}
	if err != nil {
		return time.Time{}, apperrors.NewDataShapeError(fmt.Sprintf("cannot parse %s %q", domain.FieldCreatedAt, s), err)
	}
	return t, nil
}

// SortByCreatedDesc returns the records ordered newest first by created_at.
// Records with equal timestamps keep their input order. Any record without
// a parseable created_at fails the whole sort.
func SortByCreatedDesc(records []domain.Record) ([]domain.Record, error) {
	type keyed struct {
		at  time.Time
		rec domain.Record
	}

	items := make([]keyed, len(records))
	for i, r := range records {
		at, err := CreatedAt(r)
		if err != nil {
			name, _ := r.String(domain.FieldFullName)
			return nil, fmt.Errorf("record %d %s: %w", i, name, err)
		}
		items[i] = keyed{at: at, rec: r}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return b.at.Compare(a.at)
	})

	out := make([]domain.Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out, nil
}

// Columns returns the union of field names across records, ordered by
// order. Names in records but not in order are appended in first-seen
// order.
func Columns(records []domain.Record, order []string) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		for _, f := range r {
			seen[f.Name] = true
		}
	}

	cols := make([]string, 0, len(seen))
	for _, name := range order {
		if seen[name] {
			cols = append(cols, name)
			delete(seen, name)
		}
	}
	for _, r := range records {
		for _, f := range r {
			if seen[f.Name] {
				cols = append(cols, f.Name)
				delete(seen, f.Name)
			}
		}
	}
	return cols
}
