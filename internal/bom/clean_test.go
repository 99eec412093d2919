package bom

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{
			name: "single line passes through",
			cell: "CABLE ASSEMBLY",
			want: "CABLE ASSEMBLY",
		},
		{
			name: "second line is the nomenclature",
			cell: "Cable Assembly\nCONNECTOR, ELECTRICAL (WP)\nWTY",
			want: "CONNECTOR, ELECTRICAL",
		},
		{
			name: "parenthetical annotation dropped",
			cell: "ANTENNA (OE-254/GRC)",
			want: "ANTENNA",
		},
		{
			name: "trailing column code stripped",
			cell: "RADIO SET EA",
			want: "RADIO SET",
		},
		{
			name: "stacked trailing codes stripped",
			cell: "RADIO SET EA WTY",
			want: "RADIO SET",
		},
		{
			name: "code stripping is case insensitive",
			cell: "HANDSET ea",
			want: "HANDSET",
		},
		{
			name: "code inside a word survives",
			cell: "GREASE GUN",
			want: "GREASE GUN",
		},
		{
			name: "whitespace collapsed",
			cell: "POWER   SUPPLY\t UNIT",
			want: "POWER SUPPLY UNIT",
		},
		{
			name: "empty cell",
			cell: "",
			want: "",
		},
		{
			name: "only codes leaves nothing",
			cell: "EA WTY",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDescription(tt.cell); got != tt.want {
				t.Errorf("CleanDescription(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestCleanDescriptionClipsLength(t *testing.T) {
	long := strings.Repeat("X", MaxDescriptionLen+40)
	got := CleanDescription(long)
	if len(got) != MaxDescriptionLen {
		t.Errorf("CleanDescription() length = %d, want %d", len(got), MaxDescriptionLen)
	}
}

func TestCleanDescriptionClipsOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("Ä", MaxDescriptionLen+5)
	got := CleanDescription(long)
	if !utf8.ValidString(got) {
		t.Fatalf("CleanDescription() produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != MaxDescriptionLen {
		t.Errorf("CleanDescription() rune count = %d, want %d", n, MaxDescriptionLen)
	}
}

func TestStockNumber(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{name: "plain nine digits", cell: "011800996", want: "011800996"},
		{name: "embedded in text", cell: "NSN 011800996 REV A", want: "011800996"},
		{name: "first of several wins", cell: "011800996 022334455", want: "011800996"},
		{name: "too short", cell: "12345678", want: ""},
		{name: "ten digits is not an NSN", cell: "0118009961", want: ""},
		{name: "empty", cell: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stockNumber(tt.cell); got != tt.want {
				t.Errorf("stockNumber(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want int
	}{
		{name: "plain number", cell: "4", want: 4},
		{name: "number with noise", cell: "12 EA", want: 12},
		{name: "empty defaults to one", cell: "", want: 1},
		{name: "no digits defaults to one", cell: "N/A", want: 1},
		{name: "zero defaults to one", cell: "0", want: 1},
		{name: "stacked cell uses first run", cell: "3\n5", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantity(tt.cell); got != tt.want {
				t.Errorf("quantity(%q) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}
