// Package name splits filenames into a stem, extension, and trailing
// integer, and rebuilds them after the integer has been shifted.
package name

import (
	"strconv"
	"strings"
)

// Parts is the structured decomposition of a file basename.
type Parts struct {
	// Stem is the basename without extension and without the trailing
	// digit run. For "shot042.png" it is "shot".
	Stem string
	// Ext includes the leading dot ("" when the basename has none).
	Ext string
	// Number is the parsed trailing integer, 0 when HasNumber is false.
	Number int64
	// Digits is the raw matched run, leading zeros included.
	Digits string
	// HasNumber reports whether a trailing digit run was found.
	HasNumber bool
}

// Split decomposes a basename. The extension starts at the last dot; a
// basename with no dot has an empty extension. The trailing integer is
// the maximal run of ASCII digits at the end of the stem. A hyphen in
// front of the run belongs to the stem, so "item-5.log" splits into
// stem "item-" and number 5; negative numbers only appear as output of
// a shift, never as extracted input.
func Split(base string) Parts {
	stem, ext := splitExt(base)

	i := len(stem)
	for i > 0 && isDigit(stem[i-1]) {
		i--
	}
	digits := stem[i:]
	if digits == "" {
		return Parts{Stem: stem, Ext: ext}
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Digit run too long for int64. Treat it as plain text so the
		// entry surfaces as a no-number rename rather than corrupting
		// the stem.
		return Parts{Stem: stem, Ext: ext}
	}

	return Parts{
		Stem:      stem[:i],
		Ext:       ext,
		Number:    n,
		Digits:    digits,
		HasNumber: true,
	}
}

// Join rebuilds a basename from a stem, a shifted integer, and an
// extension. The integer is written in plain decimal, sign included
// when negative, with no zero padding.
func Join(stem string, n int64, ext string) string {
	return stem + strconv.FormatInt(n, 10) + ext
}

func splitExt(base string) (stem, ext string) {
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		return base[:idx], base[idx:]
	}
	return base, ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
