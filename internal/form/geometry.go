// Package form renders extracted BOM items onto a blank DD Form 1750
// template, producing the filled multi-page packing list.
package form

// The form geometry is fixed: a US Letter page with six column bands and an
// 18-row item table whose bounds were measured off the blank template. All
// values are PDF points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0

	RowsPerPage = 18

	tableTopY    = 616.0
	tableBottomY = 89.5

	padX = 3.0

	boxLeft      = 44.0
	boxRight     = 88.0
	contentLeft  = 88.0
	contentRight = 365.0
	uoiLeft      = 365.0
	uoiRight     = 408.5
	initLeft     = 408.5
	initRight    = 453.5
	sparesLeft   = 453.5
	sparesRight  = 514.5
	totalLeft    = 514.5
	totalRight   = 566.0

	// Baseline offsets within a row.
	rowTopInset     = 5.0
	descDrop        = 7.0
	stockNumberDrop = 12.2
)

// rowHeight is the vertical pitch of one item row.
const rowHeight = (tableTopY - tableBottomY) / RowsPerPage

// rowBaseline returns the top reference Y of row i (0-based) on a page.
// The description baseline sits descDrop below it, the stock-number line
// stockNumberDrop below it.
func rowBaseline(i int) float64 {
	return tableTopY - rowTopInset - float64(i)*rowHeight
}

// PageCount returns the number of output pages needed for n items:
// ceil(n / RowsPerPage), with a minimum of one page so an empty extraction
// still yields a document.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + RowsPerPage - 1) / RowsPerPage
}
