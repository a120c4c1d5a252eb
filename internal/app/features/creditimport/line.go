package creditimport

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/credithub/internal/domain/models"
)

// minExplanationLen is the shortest accepted manual explanation, in characters.
const minExplanationLen = 4

// importLine is one parsed "email,credit_num,credit_type,manual_explanation" line.
type importLine struct {
	Email       string
	CreditNum   string
	CreditType  string
	Explanation string
}

// parseLine splits line on commas and trims each field. ok is false when the
// line has fewer than four fields. Fields past the fourth are ignored.
func parseLine(line string) (importLine, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 4 {
		return importLine{}, false
	}
	return importLine{
		Email:       strings.TrimSpace(parts[0]),
		CreditNum:   strings.TrimSpace(parts[1]),
		CreditType:  strings.TrimSpace(parts[2]),
		Explanation: strings.TrimSpace(parts[3]),
	}, true
}

// parseCredits parses a credit amount the way a browser Number() conversion
// would, minus infinities. Decimal and exponent forms are accepted, as are
// unsigned 0x, 0o and 0b integers. Empty, non-numeric, NaN and infinite fail.
func parseCredits(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if base := radixPrefix(s); base != 0 {
		n, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	// ParseFloat also takes hex floats ("0x1p4", "-0x10p0"); Number() does not.
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// radixPrefix returns the base named by a leading 0x, 0o or 0b, or 0.
func radixPrefix(s string) int {
	if len(s) < 3 || s[0] != '0' {
		return 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// IsLineValid reports whether line has a numeric credit amount, a known
// credit type, and a manual explanation longer than three characters.
// Email format is not checked here; unknown emails fail at resolution.
func IsLineValid(line string) bool {
	l, ok := parseLine(line)
	if !ok {
		return false
	}
	if _, ok := parseCredits(l.CreditNum); !ok {
		return false
	}
	if !models.IsCreditType(l.CreditType) {
		return false
	}
	return validExplanation(l.Explanation)
}

func validExplanation(s string) bool {
	return utf8.RuneCountInString(s) >= minExplanationLen
}

// splitLines trims the blob, splits it on newlines and trims every line.
func splitLines(blob string) []string {
	lines := strings.Split(strings.TrimSpace(blob), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
