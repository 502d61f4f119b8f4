package zone

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a street name for matching: NFC composition,
// whitespace collapsed to single spaces, and full Unicode case folding.
func Normalize(name string) string {
	composed := norm.NFC.String(name)
	collapsed := strings.Join(strings.Fields(composed), " ")
	return cases.Fold().String(collapsed)
}
