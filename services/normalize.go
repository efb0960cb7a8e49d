package services

import (
	"strconv"
	"strings"

	"github.com/estuardoo/api-transacciones-full/models"
)

// NormalizeIdentifier coerces a loosely-typed identifier into the canonical
// key used against the store. Ingestion sources disagree on whether ids are
// numbers or strings, so the value is trimmed of whitespace and quotes,
// parsed as a float and truncated to a whole number when that succeeds, and
// kept as the trimmed string otherwise.
func NormalizeIdentifier(raw string) (models.Identifier, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Identifier{}, models.ErrInvalidInput
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Identifier{Number: int64(f), Numeric: true}, nil
	}
	return models.Identifier{Text: s}, nil
}
