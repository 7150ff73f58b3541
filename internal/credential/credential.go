// Package credential reads the API token from a local file.
package credential

import (
	"os"
	"strings"

	apperrors "github.com/kurihiro0119/ghstats/internal/errors"
)

// LoadToken returns the contents of path with surrounding whitespace
// removed. The token itself is not validated.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.NewCredentialError(path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
