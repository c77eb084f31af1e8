// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package isbn validates International Standard Book Numbers.

It supports both the legacy 10-digit form (mod-11 checksum, trailing 'X'
allowed as the value 10) and the modern 13-digit EAN form (alternating
1/3 weights). Separator characters (spaces and hyphens) are ignored, so
"0-13-235088-2" and "0132350882" are equivalent.

# Totality

Valid never panics and never returns an error. A malformed ISBN is an
expected input, not an exceptional one, so the answer is always a plain
boolean.
*/
package isbn

import "strings"

// Valid reports whether raw is a well-formed ISBN-10 or ISBN-13.
//
// Whitespace and hyphens are stripped before checking. Any other length
// than 10 or 13 after stripping is invalid, as is empty or blank input.
func Valid(raw string) bool {
	cleaned := strings.Map(dropSeparator, raw)
	if cleaned == "" {
		return false
	}

	switch len(cleaned) {
	case 10:
		return validISBN10(cleaned)
	case 13:
		return validISBN13(cleaned)
	}
	return false
}

// dropSeparator removes spaces, tabs, and hyphens; all other runes pass through.
func dropSeparator(r rune) rune {
	switch r {
	case ' ', '\t', '\n', '\r', '-':
		return -1
	}
	return r
}

// validISBN10 checks the mod-11 checksum of a 10-character candidate.
//
// Position i (0-indexed) is weighted by (10 - i). The final character may
// be a digit or 'X', which counts as 10. The number is valid iff the
// weighted sum is divisible by 11.
func validISBN10(candidate string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		ch := candidate[i]
		if ch < '0' || ch > '9' {
			return false
		}
		sum += int(ch-'0') * (10 - i)
	}

	switch last := candidate[9]; {
	case last == 'X':
		sum += 10
	case last >= '0' && last <= '9':
		sum += int(last - '0')
	default:
		return false
	}

	return sum%11 == 0
}

// validISBN13 checks the EAN-13 checksum of a 13-character candidate.
//
// The first 12 digits are weighted 1 at even positions and 3 at odd
// positions (0-indexed). The 13th digit must equal (10 - sum%10) % 10.
func validISBN13(candidate string) bool {
	sum := 0
	for i := 0; i < 12; i++ {
		ch := candidate[i]
		if ch < '0' || ch > '9' {
			return false
		}
		digit := int(ch - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}

	last := candidate[12]
	if last < '0' || last > '9' {
		return false
	}

	return int(last-'0') == (10-sum%10)%10
}
