package form

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"github.com/formpack/dd1750/internal/bom"
)

// overlayStamp places a same-sized overlay page exactly on top of the
// template page's content.
const overlayStamp = "pos:c, scale:1 abs, rot:0"

// Result reports what Render produced. A Degraded result means the full
// overlay could not be rendered and the output is a plain copy of the
// template's first page; FailureReason records why.
type Result struct {
	OutputPath    string
	ItemCount     int
	Pages         int
	Degraded      bool
	FailureReason string
}

// Config tunes rendering behavior.
type Config struct {
	// AdminEveryPage repeats the admin header fields on every output page
	// instead of the first page only.
	AdminEveryPage bool
}

// Renderer paginates items onto copies of a blank DD Form 1750 template.
type Renderer struct {
	cfg  Config
	conf *model.Configuration
	log  *zap.Logger
}

// NewRenderer creates a renderer. A nil logger disables logging.
func NewRenderer(cfg Config, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Renderer{cfg: cfg, conf: conf, log: logger}
}

// Render writes the filled form to outputPath and always attempts to leave
// a usable PDF there: with no items it writes a single unmodified copy of
// the template's first page, and when overlay rendering fails it falls back
// to the same copy, reporting a degraded Result. Only when even the
// fallback cannot be written does Render return an error.
func (r *Renderer) Render(items []bom.Item, admin AdminData, templatePath, outputPath string) (*Result, error) {
	templatePages, err := api.PageCountFile(templatePath)
	if err != nil {
		return r.fallback(templatePath, outputPath, len(items),
			fmt.Errorf("cannot read template: %w", err))
	}

	if len(items) == 0 {
		if err := api.TrimFile(templatePath, outputPath, []string{"1"}, r.conf); err != nil {
			return nil, fmt.Errorf("failed to write blank form: %w", err)
		}
		r.log.Info("no items extracted, wrote blank form", zap.String("output", outputPath))
		return &Result{OutputPath: outputPath, Pages: 1}, nil
	}

	res, err := r.renderPages(items, admin, templatePath, outputPath, templatePages)
	if err != nil {
		r.log.Warn("overlay rendering failed, falling back to blank form", zap.Error(err))
		return r.fallback(templatePath, outputPath, len(items), err)
	}
	return res, nil
}

func (r *Renderer) renderPages(items []bom.Item, admin AdminData,
	templatePath, outputPath string, templatePages int,
) (*Result, error) {
	tmpDir, err := os.MkdirTemp("", "dd1750-")
	if err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	total := PageCount(len(items))
	stamped := make([]string, 0, total)

	for page := 0; page < total; page++ {
		chunk := items[page*RowsPerPage : min((page+1)*RowsPerPage, len(items))]

		pageAdmin := admin
		if page > 0 && !r.cfg.AdminEveryPage {
			pageAdmin = nil
		}

		overlayPath := filepath.Join(tmpDir, fmt.Sprintf("overlay_%d.pdf", page+1))
		if err := buildPageOverlay(chunk, pageAdmin).WriteFile(overlayPath); err != nil {
			return nil, err
		}

		// Template page k is the stencil for output page k when the
		// template is long enough; shorter templates reuse page 1.
		stencil := page + 1
		if stencil > templatePages {
			stencil = 1
		}
		pagePath := filepath.Join(tmpDir, fmt.Sprintf("page_%d.pdf", page+1))
		if err := api.TrimFile(templatePath, pagePath, []string{strconv.Itoa(stencil)}, r.conf); err != nil {
			return nil, fmt.Errorf("failed to copy template page %d: %w", stencil, err)
		}

		wm, err := api.PDFWatermark(overlayPath, overlayStamp, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare overlay stamp: %w", err)
		}
		stampedPath := filepath.Join(tmpDir, fmt.Sprintf("stamped_%d.pdf", page+1))
		if err := api.AddWatermarksFile(pagePath, stampedPath, nil, wm, r.conf); err != nil {
			return nil, fmt.Errorf("failed to stamp overlay onto page %d: %w", page+1, err)
		}
		stamped = append(stamped, stampedPath)

		r.log.Debug("rendered page",
			zap.Int("page", page+1), zap.Int("items", len(chunk)), zap.Int("stencil", stencil))
	}

	if err := api.MergeCreateFile(stamped, outputPath, false, r.conf); err != nil {
		return nil, fmt.Errorf("failed to assemble output document: %w", err)
	}

	r.log.Info("rendered form",
		zap.String("output", outputPath), zap.Int("items", len(items)), zap.Int("pages", total))
	return &Result{OutputPath: outputPath, ItemCount: len(items), Pages: total}, nil
}

// fallback writes the simplified last-resort document: a single unmodified
// copy of the template's first page. If even that fails the original cause
// propagates to the caller, who then has no file to serve.
func (r *Renderer) fallback(templatePath, outputPath string, count int, cause error) (*Result, error) {
	if err := api.TrimFile(templatePath, outputPath, []string{"1"}, r.conf); err != nil {
		return nil, fmt.Errorf("rendering failed (%v), fallback copy also failed: %w", cause, err)
	}
	return &Result{
		OutputPath:    outputPath,
		ItemCount:     count,
		Pages:         1,
		Degraded:      true,
		FailureReason: cause.Error(),
	}, nil
}

// buildPageOverlay draws one page's worth of items onto a fresh canvas.
func buildPageOverlay(chunk []bom.Item, admin AdminData) *Overlay {
	const (
		fieldStyle = 8.0
		descStyle  = 7.0
		nsnStyle   = 6.0
	)
	maxContentWidth := (contentRight - contentLeft) - 2*padX

	o := NewOverlay()
	for i, item := range chunk {
		top := rowBaseline(i)
		y := top - descDrop
		qty := strconv.Itoa(item.Quantity)

		o.DrawCentered(boxLeft, boxRight, y, strconv.Itoa(item.LineNo), TextStyle{Size: fieldStyle})
		o.DrawString(contentLeft+padX, y,
			fitString(item.Description, descStyle, maxContentWidth), TextStyle{Size: descStyle})

		if item.StockNumber != "" {
			nsn := "NSN: " + item.StockNumber
			if stringWidth(nsn, nsnStyle) <= maxContentWidth {
				o.DrawString(contentLeft+padX, top-stockNumberDrop, nsn, TextStyle{Size: nsnStyle})
			}
		}

		o.DrawCentered(uoiLeft, uoiRight, y, "EA", TextStyle{Size: fieldStyle})
		o.DrawCentered(initLeft, initRight, y, qty, TextStyle{Size: fieldStyle})
		// Spare-parts allocation is not tracked; the spares column is
		// always zero and the total equals the initial quantity.
		o.DrawCentered(sparesLeft, sparesRight, y, "0", TextStyle{Size: fieldStyle})
		o.DrawCentered(totalLeft, totalRight, y, qty, TextStyle{Size: fieldStyle})
	}
	if admin != nil {
		drawAdmin(o, admin)
	}
	return o
}
