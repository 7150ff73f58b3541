package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
)

// Repository fields kept by the export, in column order.
const (
	FieldID         = "id"
	FieldName       = "name"
	FieldFullName   = "full_name"
	FieldFork       = "fork"
	FieldVisibility = "visibility"
	FieldPrivate    = "private"
	FieldCreatedAt  = "created_at"
	FieldUpdatedAt  = "updated_at"
	FieldPushedAt   = "pushed_at"
	FieldLanguage   = "language"
	FieldGitURL     = "git_url"
	FieldArchived   = "archived"
)

// RepositoryFields is the allow-list applied to every fetched repository.
var RepositoryFields = []string{
	FieldID,
	FieldName,
	FieldFullName,
	FieldFork,
	FieldVisibility,
	FieldPrivate,
	FieldCreatedAt,
	FieldUpdatedAt,
	FieldPushedAt,
	FieldLanguage,
	FieldGitURL,
	FieldArchived,
}

// TimestampLayout is the format of GitHub's *_at fields.
const TimestampLayout = "2006-01-02T15:04:05Z"

// RawRecord is one repository object exactly as decoded from the API.
// Values are string, bool, json.Number, nil or nested JSON.
type RawRecord map[string]any

// Field is a single named value of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is a projected repository with its fields in allow-list order.
type Record []Field

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Name
	}
	return keys
}

// String returns the field value when it is a JSON string.
func (r Record) String(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the field value when it is a JSON boolean.
func (r Record) Bool(name string) bool {
	v, _ := r.Get(name)
	b, _ := v.(bool)
	return b
}

// DecodeRecords parses a repository listing body. Numbers are kept as
// json.Number so ids survive unchanged.
func DecodeRecords(body []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var records []RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, apperrors.NewDataShapeError("response is not a JSON array of objects", err)
	}
	if records == nil {
		return nil, apperrors.NewDataShapeError("response is null, not a JSON array", nil)
	}
	for i, r := range records {
		if r == nil {
			return nil, apperrors.NewDataShapeError(fmt.Sprintf("response element %d is not an object", i), nil)
		}
	}
	return records, nil
}
