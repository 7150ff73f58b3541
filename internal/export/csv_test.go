package export

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/ghstats/internal/domain"
)

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"embedded quotes", `He said "hi"`, `"He said ""hi"""`},
		{"plain string", "repo-a", `"repo-a"`},
		{"empty string", "", `""`},
		{"comma and newline", "a,b\nc", "\"a,b\nc\""},
		{"true", true, "true"},
		{"false", false, "false"},
		{"null", nil, "null"},
		{"number", json.Number("123456789012"), "123456789012"},
		{"int", 42, "42"},
		{"nested", map[string]any{"login": "me"}, `{"login":"me"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeValue(tt.in))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	alphabet := []rune(`ab"", \n"é`)

	for i := 0; i < 500; i++ {
		n := rng.Intn(20)
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		original := sb.String()

		got, ok := UnescapeValue(EscapeValue(original))
		require.True(t, ok)
		assert.Equal(t, original, got)
	}
}

func TestUnescapeValueRejectsBareCells(t *testing.T) {
	_, ok := UnescapeValue("true")
	assert.False(t, ok)
	_, ok = UnescapeValue(`"`)
	assert.False(t, ok)
}

func TestSerialize(t *testing.T) {
	records := []domain.Record{
		{
			{Name: "id", Value: json.Number("2")},
			{Name: "name", Value: `quote"d`},
			{Name: "fork", Value: false},
			{Name: "language", Value: nil},
		},
		{
			{Name: "id", Value: json.Number("1")},
			{Name: "name", Value: "repo-a"},
		},
	}

	got := Serialize(records, []string{"id", "name", "fork", "language"})

	want := "id,name,fork,language\n" +
		`2,"quote""d",false,null` + "\n" +
		`1,"repo-a",,` + "\n"
	assert.Equal(t, want, got)
}

func TestSerializeHeaderOnly(t *testing.T) {
	got := Serialize(nil, domain.RepositoryFields)

	assert.Equal(t, strings.Join(domain.RepositoryFields, ",")+"\n", got)
}
