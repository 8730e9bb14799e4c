// Package text rewrites transcriptions into plain ASCII.
package text

import (
	"strings"
	"unicode"

	"github.com/fwojciec/tunescrape"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// Ensure Transliterator implements tunescrape.Transliterator at compile time.
var _ tunescrape.Transliterator = (*Transliterator)(nil)

// notation keeps characters that carry meaning in ABC ahead of the
// generic transliteration tables.
var notation = strings.NewReplacer(
	"\u266d", "b", "\u266f", "#", "\u266e", "=",
	"\u00bd", "1/2", "\u00bc", "1/4", "\u00be", "3/4",
)

// Transliterator approximates non-ASCII characters with ASCII.
// Accented letters lose their marks and other scripts are romanized.
type Transliterator struct{}

// NewTransliterator creates a new Transliterator.
func NewTransliterator() *Transliterator {
	return &Transliterator{}
}

// Transliterate returns an ASCII-only approximation of s.
func (t *Transliterator) Transliterate(s string) string {
	if isASCII(s) {
		return s
	}
	// Composed form so combining marks map with their base letter.
	s = notation.Replace(norm.NFC.String(s))
	return unidecode.Unidecode(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
