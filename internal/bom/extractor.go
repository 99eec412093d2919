package bom

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// fallbackLineRE matches raw text lines of the form
// "011800996 B CABLE ASSEMBLY ... 2": a 9-digit stock number, the packable
// level marker, descriptive text, and an optional trailing quantity.
var fallbackLineRE = regexp.MustCompile(`^(\d{9})\s*B\s+(.+)$`)

var trailingQtyRE = regexp.MustCompile(`\s(\d+)\s*$`)

// Config tunes extraction behavior.
type Config struct {
	// QuantityPreference decides between on-hand and authorized quantity
	// columns when a table has both.
	QuantityPreference QuantityPreference
}

// DefaultConfig returns the canonical extraction configuration.
func DefaultConfig() Config {
	return Config{QuantityPreference: PreferOnHand}
}

// Extractor pulls ordered BOM line items out of a PDF.
type Extractor struct {
	cfg Config
	log *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(cfg Config, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.QuantityPreference == "" {
		cfg.QuantityPreference = PreferOnHand
	}
	return &Extractor{cfg: cfg, log: logger}
}

// ExtractFile extracts line items from the BOM PDF at path, skipping the
// first startPage pages (0-based). It never fails: the caller must always be
// able to produce some output document, so any open or parse error degrades
// to an empty result and is reported through the log only.
func (e *Extractor) ExtractFile(path string, startPage int) []Item {
	f, r, err := pdf.Open(path)
	if err != nil {
		e.log.Warn("cannot open BOM PDF, extracting nothing",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	if startPage < 0 {
		startPage = 0
	}

	var items []Item
	for pageNum := startPage + 1; pageNum <= r.NumPage(); pageNum++ {
		lines := e.pageLines(r, pageNum)
		if lines == nil {
			continue
		}

		found := false
		for _, table := range detectTables(lines) {
			added := e.appendTableItems(&items, table)
			found = found || added
		}
		if !found {
			e.appendFallbackItems(&items, lines)
		}
	}

	e.log.Info("BOM extraction finished",
		zap.String("path", path), zap.Int("items", len(items)))
	return items
}

// pageLines reads a page's positioned text grouped into visual lines.
// ledongthuc/pdf panics on some malformed content streams, so page parsing
// is fenced with a recover.
func (e *Extractor) pageLines(r *pdf.Reader, pageNum int) (lines []textLine) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Warn("page text extraction panicked, skipping page",
				zap.Int("page", pageNum), zap.Any("cause", rec))
			lines = nil
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return nil
	}
	return groupIntoLines(page.Content().Text)
}

// appendTableItems converts a reconstructed table's level-"B" rows to items,
// appending them to items with running line numbers. It reports whether the
// table contributed at least one item.
func (e *Extractor) appendTableItems(items *[]Item, table Table) bool {
	if len(table.Rows) == 0 {
		return false
	}
	roles := detectColumns(table.Header)
	if !roles.relevant() {
		e.log.Debug("skipping table without level and description columns",
			zap.Strings("header", table.Header))
		return false
	}
	qtyCol := roles.quantityColumn(e.cfg.QuantityPreference)

	added := false
	for _, row := range table.Rows {
		if allEmpty(row) {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(rowCell(row, roles.level))) != "B" {
			continue
		}

		desc := CleanDescription(rowCell(row, roles.description))
		if len(desc) < 3 {
			e.log.Debug("discarding row with unusable description",
				zap.String("cell", rowCell(row, roles.description)))
			continue
		}

		item := Item{
			LineNo:      len(*items) + 1,
			Description: desc,
			StockNumber: stockNumber(rowCell(row, roles.material)),
			Quantity:    quantity(rowCell(row, qtyCol)),
		}
		*items = append(*items, item)
		added = true
		e.log.Debug("extracted item",
			zap.Int("line_no", item.LineNo),
			zap.String("description", item.Description),
			zap.String("stock_number", item.StockNumber),
			zap.Int("quantity", item.Quantity))
	}
	return added
}

// appendFallbackItems pattern-matches a page's raw text lines when table
// reconstruction yielded nothing on that page.
func (e *Extractor) appendFallbackItems(items *[]Item, lines []textLine) {
	for _, l := range lines {
		raw := joinLine(l)
		m := fallbackLineRE.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		rest := m[2]
		qty := 1
		if qm := trailingQtyRE.FindStringSubmatch(rest); qm != nil {
			if n, err := strconv.Atoi(qm[1]); err == nil && n > 0 {
				qty = n
				rest = strings.TrimSpace(rest[:len(rest)-len(qm[0])])
			}
		}

		desc := CleanDescription(rest)
		if len(desc) < 3 {
			continue
		}

		*items = append(*items, Item{
			LineNo:      len(*items) + 1,
			Description: desc,
			StockNumber: m[1],
			Quantity:    qty,
		})
	}
}

func joinLine(l textLine) string {
	var b strings.Builder
	for i, f := range l.frags {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.text)
	}
	return strings.TrimSpace(b.String())
}

func allEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
