package form

import (
	"bytes"
	"fmt"
	"os"
)

// TextStyle carries everything a single draw call needs. Styling is passed
// per call rather than held as canvas state, so the order of draw calls on a
// row never changes the output.
type TextStyle struct {
	// Size is the Helvetica font size in points.
	Size float64
}

type drawOp struct {
	x, y, size float64
	text       string
}

// Overlay is a transparent single-page canvas at the form's page geometry.
// Text is drawn at absolute page coordinates (origin bottom-left, points);
// Bytes assembles the accumulated draws into a standalone one-page PDF that
// is stamped over a template page.
type Overlay struct {
	width, height float64
	ops           []drawOp
}

// NewOverlay creates an empty canvas matching the form's page size.
func NewOverlay() *Overlay {
	return &Overlay{width: PageWidth, height: PageHeight}
}

// DrawString draws s left-aligned with its baseline at (x, y).
func (o *Overlay) DrawString(x, y float64, s string, style TextStyle) {
	if s == "" {
		return
	}
	o.ops = append(o.ops, drawOp{x: x, y: y, size: style.Size, text: s})
}

// DrawCentered draws s centered between the left and right x-bounds with its
// baseline at y.
func (o *Overlay) DrawCentered(left, right, y float64, s string, style TextStyle) {
	x := (left+right)/2.0 - stringWidth(s, style.Size)/2.0
	o.DrawString(x, y, s, style)
}

// Bytes assembles the canvas into a complete one-page PDF document.
func (o *Overlay) Bytes() []byte {
	var content bytes.Buffer
	for _, op := range o.ops {
		fmt.Fprintf(&content, "BT /F1 %.2f Tf %.2f %.2f Td (%s) Tj ET\n",
			op.size, op.x, op.y, escapeText(op.text))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %.2f %.2f] "+
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>", o.width, o.height),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding " +
			"/FirstChar 32 /LastChar 126 /Widths " + widthsArray() + " >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	return out.Bytes()
}

// WriteFile writes the assembled overlay PDF to path.
func (o *Overlay) WriteFile(path string) error {
	if err := os.WriteFile(path, o.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}
	return nil
}

// escapeText encodes s for a PDF literal string: backslash and parentheses
// are escaped, and anything outside single-byte range is replaced, since the
// overlay font uses WinAnsi encoding.
func escapeText(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteByte(byte(r))
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r > 0xff:
			b.WriteByte('?')
		default:
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
