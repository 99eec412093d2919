package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Validator performs best-effort input checks on the two source PDFs before
// the pipeline runs.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the given size limit.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// ValidateFile checks that path names a PDF the pipeline can work with: a
// regular, non-empty .pdf file under the size limit that opens as a PDF.
func (v *Validator) ValidateFile(path string) error {
	if path == "" {
		return errors.New("no input path given")
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%s does not have a .pdf extension", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat input: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	switch size := info.Size(); {
	case size == 0:
		return fmt.Errorf("%s is empty", path)
	case size > v.maxFileSize:
		return fmt.Errorf("%s exceeds the %d byte size limit (%d bytes)",
			path, v.maxFileSize, size)
	}

	f, _, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("%s is not a readable PDF: %w", path, err)
	}
	f.Close()

	return nil
}

// IsValidPDF reports whether path would pass validation.
func (v *Validator) IsValidPDF(path string) bool {
	return v.ValidateFile(path) == nil
}
