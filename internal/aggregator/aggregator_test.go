package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/ghstats/internal/domain"
)

func repo(lang any, created string, fork, archived, private bool) domain.Record {
	r := domain.Record{
		{Name: domain.FieldFork, Value: fork},
		{Name: domain.FieldPrivate, Value: private},
		{Name: domain.FieldLanguage, Value: lang},
		{Name: domain.FieldArchived, Value: archived},
	}
	if created != "" {
		r = append(r, domain.Field{Name: domain.FieldCreatedAt, Value: created})
	}
	return r
}

func TestSummarize(t *testing.T) {
	records := []domain.Record{
		repo("Go", "2024-06-01T00:00:00Z", false, false, true),
		repo("Python", "2023-01-01T00:00:00Z", true, false, false),
		repo("Go", "2023-05-01T00:00:00Z", false, true, false),
		repo(nil, "2021-02-03T04:05:06Z", true, true, true),
		repo("Shell", "", false, false, false),
	}

	s := Summarize(records)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Forks)
	assert.Equal(t, 2, s.Archived)
	assert.Equal(t, 2, s.Private)
	assert.Equal(t, []LanguageCount{
		{Language: "Go", Count: 2},
		{Language: "", Count: 1},
		{Language: "Python", Count: 1},
		{Language: "Shell", Count: 1},
	}, s.Languages)
	assert.Equal(t, []YearCount{
		{Year: 2024, Count: 1},
		{Year: 2023, Count: 2},
		{Year: 2021, Count: 1},
	}, s.CreatedByYear)

	require.NotNil(t, s.Newest)
	require.NotNil(t, s.Oldest)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *s.Newest)
	assert.Equal(t, time.Date(2021, 2, 3, 4, 5, 6, 0, time.UTC), *s.Oldest)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.Languages)
	assert.Nil(t, s.Newest)
	assert.Nil(t, s.Oldest)
}
