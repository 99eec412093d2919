// Package bom extracts bill-of-materials line items from procurement PDFs.
//
// Extraction is heuristic: it reconstructs tables from positioned
// text, identifies column roles from header keywords, and falls back to raw
// line pattern matching when no recognizable table is present on a page.
package bom

// MaxDescriptionLen caps item descriptions for layout safety on the form.
const MaxDescriptionLen = 100

// Item is one physical inventory line extracted from a BOM document.
// Items are append-only: once emitted by the extractor they are never
// mutated, and LineNo values run 1..N in discovery order across the
// whole document.
type Item struct {
	// LineNo is the 1-based position in extraction order. It doubles as
	// the printed box number on the packing list.
	LineNo int

	// Description is the cleaned item nomenclature. Never empty for a
	// retained item, at most MaxDescriptionLen characters.
	Description string

	// StockNumber is the 9-digit NSN when one was found, else "".
	StockNumber string

	// Quantity is the extracted count, defaulting to 1 when the source
	// data yields nothing parseable.
	Quantity int
}
