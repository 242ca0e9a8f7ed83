// Package textutil holds the locale-tolerant text helpers shared by the
// extraction engine and the formula builder: dimension and count extraction
// from free text, numeric formula classification and cell normalisation.
package textutil

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// Separators: latin x/X, cyrillic х/Х and plus.
	dimensionPairRe = regexp.MustCompile(`(\d{2,5})\s*[xXхХ+]\s*(\d{2,5})`)
	digitRunRe      = regexp.MustCompile(`\d+`)
	wordIntRe       = regexp.MustCompile(`\b\d+\b`)
	numericFormula  = regexp.MustCompile(`^\d+(?:-\d+){0,4}$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// NormalizeCell prepares a raw spreadsheet cell for matching: NFC form,
// non-breaking spaces turned into plain spaces, surrounding space trimmed.
func NormalizeCell(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(norm.NFC.String(s))
}

// Fold returns the normalised, lower-cased form used for all marker and
// header comparisons.
func Fold(s string) string {
	return cases.Lower(language.Russian).String(NormalizeCell(s))
}

// ContainsFold reports whether marker occurs in s, ignoring case.
func ContainsFold(s, marker string) bool {
	return strings.Contains(Fold(s), Fold(marker))
}

// EqualFold reports whether a and b are equal after trimming, ignoring case.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// HasDigit reports whether s contains an ASCII digit.
func HasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// ExtractDimensionPair finds a "<w>x<h>" pair in text. Without an explicit
// separator the first two digit runs are used. Returns (0, 0) when fewer than
// two numbers are present.
func ExtractDimensionPair(text string) (width, height int) {
	if m := dimensionPairRe.FindStringSubmatch(text); m != nil {
		width, _ = strconv.Atoi(m[1])
		height, _ = strconv.Atoi(m[2])
		return width, height
	}
	numbers := DigitRuns(text)
	if len(numbers) >= 2 {
		return numbers[0], numbers[1]
	}
	return 0, 0
}

// HasDimensionPair reports whether text holds an explicit "<w>x<h>" pair.
func HasDimensionPair(text string) bool {
	return dimensionPairRe.MatchString(text)
}

// DigitRuns returns every run of digits in text, in order of appearance.
func DigitRuns(text string) []int {
	runs := digitRunRe.FindAllString(text, -1)
	numbers := make([]int, 0, len(runs))
	for _, r := range runs {
		n, err := strconv.Atoi(r)
		if err != nil {
			// Longer than int; not a count or a size.
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

// ExtractCount is ExtractCountIn with the same text as hint and context.
func ExtractCount(text string) int {
	return ExtractCountIn(text, text)
}

// ExtractCountIn prefers the first standalone integer in hint and falls back
// to the last digit run of context. Never returns less than 1.
func ExtractCountIn(hint, context string) int {
	if m := wordIntRe.FindString(hint); m != "" {
		return atLeastOne(m)
	}
	if runs := digitRunRe.FindAllString(context, -1); len(runs) > 0 {
		return atLeastOne(runs[len(runs)-1])
	}
	return 1
}

func atLeastOne(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NormalizeFormula removes all whitespace from a formula code.
func NormalizeFormula(formula string) string {
	return whitespaceRe.ReplaceAllString(formula, "")
}

// IsNumericFormula reports whether formula is a composable code: dash
// separated integers with exactly 1, 3 or 5 segments.
func IsNumericFormula(formula string) bool {
	normalized := NormalizeFormula(formula)
	if !numericFormula.MatchString(normalized) {
		return false
	}
	switch len(strings.Split(normalized, "-")) {
	case 1, 3, 5:
		return true
	default:
		return false
	}
}

// DecomposeThicknesses splits a formula code into its integer segments.
func DecomposeThicknesses(formula string) []int {
	normalized := NormalizeFormula(formula)
	var thicknesses []int
	for _, part := range strings.Split(normalized, "-") {
		if part == "" || strings.Trim(part, "0123456789") != "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		thicknesses = append(thicknesses, n)
	}
	return thicknesses
}

// maxCellInt bounds the values ParseCellInt accepts; larger magnitudes are
// treated as non-numeric.
const maxCellInt = math.MaxInt32

// ParseCellInt reads an integer from a numeric cell. It accepts spreadsheet
// renderings such as "1200.0", "1 200" and "1200,0".
func ParseCellInt(s string) (int, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\u202f' {
			return -1
		}
		return r
	}, NormalizeCell(s))
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxCellInt {
		return 0, false
	}
	return int(math.Round(f)), true
}
