package persistence

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// diacriticsRemover strips combining marks after NFD decomposition, so
// "Müller" folds to "Muller".
var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// germanReplacer rewrites the German special characters to their usual
// ASCII transcription before diacritics folding.
var germanReplacer = strings.NewReplacer(
	"ä", "ae", "Ä", "Ae",
	"ö", "oe", "Ö", "Oe",
	"ü", "ue", "Ü", "Ue",
	"ß", "ss",
)

// FoldSearch returns the ASCII-folded variant of a search term. Customer
// and article names carry umlauts; searches should hit them regardless
// of whether the caller types "Müller", "Mueller" or "Muller".
func FoldSearch(term string) string {
	folded, _, err := transform.String(diacriticsRemover, germanReplacer.Replace(term))
	if err != nil {
		return term
	}
	return folded
}

// searchPatterns returns the LIKE patterns for a search term: the term
// itself and, when different, its folded variant.
func searchPatterns(term string) []string {
	patterns := []string{"%" + term + "%"}
	if folded := FoldSearch(term); folded != term {
		patterns = append(patterns, "%"+folded+"%")
	}
	return patterns
}

// applySearch adds a case-insensitive search condition over the given
// columns, matching the raw term and its umlaut-folded variant.
func applySearch(query *gorm.DB, term string, columns ...string) *gorm.DB {
	if term == "" || len(columns) == 0 {
		return query
	}
	patterns := searchPatterns(term)
	conds := make([]string, 0, len(columns)*len(patterns))
	args := make([]interface{}, 0, len(columns)*len(patterns))
	for _, col := range columns {
		for _, pattern := range patterns {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, pattern)
		}
	}
	return query.Where(strings.Join(conds, " OR "), args...)
}
