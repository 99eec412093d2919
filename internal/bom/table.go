package bom

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Geometry tolerances, in points. Text fragments within lineTolerance of
// each other vertically belong to the same visual line; a horizontal gap
// wider than cellGap starts a new cell; fragments closer than wordGap are
// glued without a space (per-glyph output from some producers). A visual
// line attaches to a table row only within anchorAttach of the row's level
// marker.
const (
	lineTolerance = 2.0
	cellGap       = 8.0
	wordGap       = 1.5
	anchorAttach  = 12.0
)

// Table is a reconstructed BOM table: one header row plus zero or more data
// rows. Cells preserve the visual stacking of fragments as newline-separated
// lines, matching what the cleaning rules expect.
type Table struct {
	Header []string
	Rows   [][]string
}

type fragment struct {
	x, w float64
	text string
}

type textLine struct {
	y     float64
	frags []fragment
}

type cell struct {
	x    float64
	text string
}

// colBound is the half-open horizontal band [left, right) claimed by one
// table column.
type colBound struct {
	left, right float64
}

// groupIntoLines clusters positioned text into visual lines by Y proximity
// and orders them top to bottom, fragments left to right.
func groupIntoLines(texts []pdf.Text) []textLine {
	var lines []textLine
	for _, t := range texts {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}
		placed := false
		for i := range lines {
			if math.Abs(lines[i].y-t.Y) < lineTolerance {
				lines[i].frags = append(lines[i].frags, fragment{x: t.X, w: t.W, text: s})
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, textLine{y: t.Y, frags: []fragment{{x: t.X, w: t.W, text: s}}})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })
	for i := range lines {
		frags := lines[i].frags
		sort.Slice(frags, func(a, b int) bool { return frags[a].x < frags[b].x })
	}
	return lines
}

// mergeCells joins a line's fragments into cells. Fragments separated by
// less than cellGap stay in one cell; within a cell a visible gap becomes a
// single space.
func mergeCells(l textLine) []cell {
	var cells []cell
	var b strings.Builder
	var start, end float64
	flush := func() {
		if b.Len() > 0 {
			cells = append(cells, cell{x: start, text: b.String()})
			b.Reset()
		}
	}
	for _, f := range l.frags {
		switch {
		case b.Len() == 0:
			start = f.x
		case f.x-end > cellGap:
			flush()
			start = f.x
		case f.x-end > wordGap:
			b.WriteByte(' ')
		}
		b.WriteString(f.text)
		if e := f.x + f.w; e > end {
			end = e
		}
	}
	flush()
	return cells
}

// detectTables scans a page's visual lines for header rows and assembles a
// table from each header and the data lines beneath it, stopping at the next
// header or the end of the page.
func detectTables(lines []textLine) []Table {
	var tables []Table
	i := 0
	for i < len(lines) {
		cells := mergeCells(lines[i])
		header := cellTexts(cells)
		if !isHeaderRow(header) {
			i++
			continue
		}
		cols := columnBounds(cells)
		j := i + 1
		var data []textLine
		for j < len(lines) && !isHeaderRow(cellTexts(mergeCells(lines[j]))) {
			data = append(data, lines[j])
			j++
		}
		roles := detectColumns(header)
		rows := buildRows(data, cols, roles.level)
		tables = append(tables, Table{Header: header, Rows: rows})
		i = j
	}
	return tables
}

func cellTexts(cells []cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.text
	}
	return out
}

// isHeaderRow reports whether a line looks like a BOM table header: it must
// name at least two column roles, one of which is the level or description
// column.
func isHeaderRow(cells []string) bool {
	roles := detectColumns(cells)
	matched := 0
	for _, idx := range []int{roles.level, roles.description, roles.material, roles.onHandQty, roles.authorizedQty} {
		if idx >= 0 {
			matched++
		}
	}
	return matched >= 2 && (roles.level >= 0 || roles.description >= 0)
}

// columnBounds derives the horizontal band of each column from the header
// cell positions. Each column starts slightly left of its header text and
// runs to the start of the next column; the last column runs off the page.
func columnBounds(cells []cell) []colBound {
	bounds := make([]colBound, len(cells))
	for i, c := range cells {
		bounds[i].left = c.x - 2
		if i > 0 {
			bounds[i-1].right = c.x - 2
		}
	}
	if len(bounds) > 0 {
		bounds[len(bounds)-1].right = math.MaxFloat64
	}
	return bounds
}

// buildRows groups data lines into logical table rows. Each row is anchored
// by a level marker (a short token in the level column); surrounding lines
// within anchorAttach of the anchor stack into the same row, which is how
// multi-line description cells are reassembled. Without a level column there
// is nothing to anchor on and no rows are produced; such tables are skipped
// by the caller anyway.
func buildRows(data []textLine, cols []colBound, levelCol int) [][]string {
	if levelCol < 0 || levelCol >= len(cols) {
		return nil
	}
	var anchors []int
	for i, l := range data {
		if isLevelMarker(l, cols[levelCol]) {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) == 0 {
		return nil
	}

	assigned := make([]int, len(data)) // index into anchors, -1 when detached
	for i, l := range data {
		best, bestDist := -1, math.MaxFloat64
		for a, ai := range anchors {
			d := math.Abs(l.y - data[ai].y)
			if d < bestDist {
				best, bestDist = a, d
			}
		}
		if bestDist > anchorAttach {
			best = -1
		}
		assigned[i] = best
	}

	rows := make([][]string, len(anchors))
	for a := range anchors {
		row := make([]string, len(cols))
		for i, l := range data {
			if assigned[i] != a {
				continue
			}
			for c, bound := range cols {
				if part := lineCellText(l, bound); part != "" {
					if row[c] != "" {
						row[c] += "\n"
					}
					row[c] += part
				}
			}
		}
		rows[a] = row
	}
	return rows
}

// isLevelMarker reports whether the line carries a short token in the level
// column, e.g. the "B" flagging a packable line item.
func isLevelMarker(l textLine, bound colBound) bool {
	s := lineCellText(l, bound)
	return s != "" && len(s) <= 2
}

// lineCellText assembles the text a single visual line contributes to one
// column band.
func lineCellText(l textLine, bound colBound) string {
	var b strings.Builder
	var end float64
	for _, f := range l.frags {
		if f.x < bound.left || f.x >= bound.right {
			continue
		}
		if b.Len() > 0 && f.x-end > wordGap {
			b.WriteByte(' ')
		}
		b.WriteString(f.text)
		if e := f.x + f.w; e > end {
			end = e
		}
	}
	return strings.TrimSpace(b.String())
}
