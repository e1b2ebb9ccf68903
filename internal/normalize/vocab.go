package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Vocabulary is a closed set of canonical values for an enumerated field.
type Vocabulary struct {
	canonical map[string]string
	values    []string
}

// NewVocabulary builds a vocabulary. Aliases map extra spellings onto a
// canonical value.
func NewVocabulary(values []string, aliases map[string]string) *Vocabulary {
	v := &Vocabulary{canonical: make(map[string]string), values: values}
	for _, val := range values {
		v.canonical[fold(val)] = val
	}
	for alias, val := range aliases {
		v.canonical[fold(alias)] = val
	}
	return v
}

// Map returns the canonical spelling of s, matched without regard to case,
// accents or surrounding space. Unrecognized values are returned trimmed.
func (v *Vocabulary) Map(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if c, ok := v.canonical[fold(s)]; ok {
		return c
	}
	return s
}

// Values returns the canonical values in declaration order.
func (v *Vocabulary) Values() []string {
	return append([]string(nil), v.values...)
}

// Enumerated field vocabularies.
var (
	Types = NewVocabulary(
		[]string{"Tangible", "Fungible"},
		nil,
	)

	SubsidyPrograms = NewVocabulary(
		[]string{"SEP", "PIE", "FAEP", "Mantenimiento", "Pro-Retención", "General"},
		map[string]string{
			"pro retencion":  "Pro-Retención",
			"proretencion":   "Pro-Retención",
			"subvencion sep": "SEP",
			"mantencion":     "Mantenimiento",
			"subvencion pie": "PIE",
			"fondo de apoyo": "FAEP",
		},
	)

	EducationLevels = NewVocabulary(
		[]string{"Parvularia", "Básica", "Media", "Técnico-Profesional", "Adultos"},
		map[string]string{
			"tecnico profesional": "Técnico-Profesional",
			"tp":                  "Técnico-Profesional",
			"educacion basica":    "Básica",
			"educacion media":     "Media",
			"prebasica":           "Parvularia",
		},
	)
)

// fold lowercases s, strips diacritics and collapses inner whitespace.
// A transform.Chain holds buffers, so each call builds its own.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
