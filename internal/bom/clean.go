package bom

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Trailing column codes that leak into description cells when the
	// source table's columns overlap. Stripped repeatedly so stacked
	// codes ("... EA WTY") disappear as well.
	trailingCodeRE = regexp.MustCompile(`(?i)\s+(WTY|ARC|CIIC|UI|SCMC|EA|AY|9K|9G)\s*$`)

	whitespaceRE  = regexp.MustCompile(`\s+`)
	stockNumberRE = regexp.MustCompile(`\b(\d{9})\b`)
	digitRunRE    = regexp.MustCompile(`\d+`)
)

// CleanDescription reduces a raw description cell to the item nomenclature.
// It composes the individual cleaning rules in a fixed order: pick the
// nomenclature line, drop parenthetical annotations, strip trailing column
// codes, normalize whitespace, and cap the length. The result may be empty;
// callers discard rows whose cleaned description is shorter than 3 runes.
func CleanDescription(cell string) string {
	s := nomenclatureLine(cell)
	s = trimParenthetical(s)
	s = stripTrailingCodes(s)
	s = collapseWhitespace(s)
	return clip(s, MaxDescriptionLen)
}

// nomenclatureLine selects the nomenclature from a possibly multi-line cell.
// Table cells in these BOMs stack a part/material code, the nomenclature,
// and a trailing code on separate visual lines; the second line is the
// nomenclature when two or more lines are present.
func nomenclatureLine(cell string) string {
	lines := strings.Split(strings.TrimSpace(cell), "\n")
	if len(lines) >= 2 {
		return strings.TrimSpace(lines[1])
	}
	return strings.TrimSpace(lines[0])
}

// trimParenthetical cuts the text at the first '(' and drops the rest.
func trimParenthetical(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// stripTrailingCodes removes trailing denylisted column codes until none
// remain.
func stripTrailingCodes(s string) string {
	for {
		next := trailingCodeRE.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// clip caps s at max runes, never cutting inside a multi-byte encoding.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// stockNumber returns the first 9-consecutive-digit run in the cell, or ""
// when the cell holds no NSN.
func stockNumber(cell string) string {
	return stockNumberRE.FindString(cell)
}

// quantity parses the first digit run in the cell. Absence or parse failure
// yields the default quantity of 1.
func quantity(cell string) int {
	m := digitRunRE.FindString(cell)
	if m == "" {
		return 1
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}
