package aggregator

import (
	"sort"
	"time"

	"github.com/kurihiro0119/ghstats/internal/domain"
	"github.com/kurihiro0119/ghstats/internal/transform"
)

// LanguageCount is the number of repositories using one primary language
type LanguageCount struct {
	Language string
	Count    int
}

// YearCount is the number of repositories created in one year
type YearCount struct {
	Year  int
	Count int
}

// Summary holds the roll-up of one export
type Summary struct {
	Total    int
	Forks    int
	Archived int
	Private  int

	// Languages is ordered by count desc, then name. Repositories without a
	// language are counted under "".
	Languages []LanguageCount

	// CreatedByYear is ordered newest year first.
	CreatedByYear []YearCount

	Newest *time.Time
	Oldest *time.Time
}

// Summarize aggregates the exported records. Records lacking a parseable
// created_at are left out of the year and newest/oldest figures.
func Summarize(records []domain.Record) *Summary {
	s := &Summary{Total: len(records)}

	languages := make(map[string]int)
	years := make(map[int]int)

	for _, r := range records {
		if r.Bool(domain.FieldFork) {
			s.Forks++
		}
		if r.Bool(domain.FieldArchived) {
			s.Archived++
		}
		if r.Bool(domain.FieldPrivate) {
			s.Private++
		}

		lang, _ := r.String(domain.FieldLanguage)
		languages[lang]++

		created, err := transform.CreatedAt(r)
		if err != nil {
			continue
		}
		years[truncateToYear(created).Year()]++
		if s.Newest == nil || created.After(*s.Newest) {
			t := created
			s.Newest = &t
		}
		if s.Oldest == nil || created.Before(*s.Oldest) {
			t := created
			s.Oldest = &t
		}
	}

	for lang, n := range languages {
		s.Languages = append(s.Languages, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(s.Languages, func(i, j int) bool {
		if s.Languages[i].Count != s.Languages[j].Count {
			return s.Languages[i].Count > s.Languages[j].Count
		}
		return s.Languages[i].Language < s.Languages[j].Language
	})

	for year, n := range years {
		s.CreatedByYear = append(s.CreatedByYear, YearCount{Year: year, Count: n})
	}
	sort.Slice(s.CreatedByYear, func(i, j int) bool {
		return s.CreatedByYear[i].Year > s.CreatedByYear[j].Year
	})

	return s
}

// truncateToYear truncates a time to the start of its year
func truncateToYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
