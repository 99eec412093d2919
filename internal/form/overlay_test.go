package form

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
)

func TestOverlayBytesStructure(t *testing.T) {
	o := NewOverlay()
	o.DrawString(100, 200, "RADIO SET", TextStyle{Size: 7})
	data := o.Bytes()

	if !bytes.HasPrefix(data, []byte("%PDF-1.4\n")) {
		t.Error("overlay must start with a PDF 1.4 header")
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Error("overlay must end with an EOF marker")
	}
	for _, want := range []string{
		"/Type /Catalog",
		"/Type /Pages",
		fmt.Sprintf("/MediaBox [0 0 %.2f %.2f]", PageWidth, PageHeight),
		"/BaseFont /Helvetica",
		"/FirstChar 32 /LastChar 126",
		"/Widths [278 278 355",
		"BT /F1 7.00 Tf 100.00 200.00 Td (RADIO SET) Tj ET",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("overlay missing %q", want)
		}
	}
}

// The xref table must point each entry at its object's actual byte offset,
// or strict readers reject the stamp source.
func TestOverlayXrefOffsets(t *testing.T) {
	o := NewOverlay()
	o.DrawString(50, 50, "X1", TextStyle{Size: 8})
	data := o.Bytes()

	entryRE := regexp.MustCompile(`(?m)^(\d{10}) 00000 n `)
	matches := entryRE.FindAllStringSubmatch(string(data), -1)
	if len(matches) != 5 {
		t.Fatalf("xref has %d in-use entries, want 5", len(matches))
	}
	for i, m := range matches {
		off, err := strconv.Atoi(m[1])
		if err != nil {
			t.Fatalf("bad xref offset %q: %v", m[1], err)
		}
		want := fmt.Sprintf("%d 0 obj", i+1)
		if !bytes.HasPrefix(data[off:], []byte(want)) {
			t.Errorf("xref entry %d points at %q, want %q", i+1, data[off:off+9], want)
		}
	}
}

func TestDrawStringSkipsEmpty(t *testing.T) {
	o := NewOverlay()
	o.DrawString(10, 10, "", TextStyle{Size: 8})
	if len(o.ops) != 0 {
		t.Errorf("empty draw recorded %d ops, want 0", len(o.ops))
	}
}

func TestDrawCentered(t *testing.T) {
	o := NewOverlay()
	o.DrawCentered(44, 88, 600, "7", TextStyle{Size: 8})

	if len(o.ops) != 1 {
		t.Fatalf("DrawCentered recorded %d ops, want 1", len(o.ops))
	}
	op := o.ops[0]
	center := op.x + stringWidth("7", 8)/2
	if math.Abs(center-66) > 1e-9 {
		t.Errorf("text centered at %v, want 66", center)
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "RADIO SET", want: "RADIO SET"},
		{name: "parentheses", in: "ANTENNA (OE-254)", want: `ANTENNA \(OE-254\)`},
		{name: "backslash", in: `A\B`, want: `A\\B`},
		{name: "newline becomes space", in: "A\nB", want: "A B"},
		{name: "wide rune replaced", in: "CAFÉ中", want: "CAF\xc9?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeText(tt.in); got != tt.want {
				t.Errorf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOverlayWriteFile(t *testing.T) {
	o := NewOverlay()
	o.DrawString(100, 100, "X", TextStyle{Size: 8})

	path := filepath.Join(t.TempDir(), "overlay.pdf")
	if err := o.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written overlay: %v", err)
	}
	if !bytes.Equal(data, o.Bytes()) {
		t.Error("written file differs from assembled bytes")
	}
}
