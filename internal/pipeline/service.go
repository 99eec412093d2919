// Package pipeline composes BOM extraction and form rendering into the one
// operation the surrounding host invokes: two input PDFs in, one filled
// packing list out.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/formpack/dd1750/internal/bom"
	"github.com/formpack/dd1750/internal/form"
)

// GenerateRequest names the inputs of one generation run. Paths must be
// isolated per request; the pipeline holds no state across calls.
type GenerateRequest struct {
	BOMPath      string
	TemplatePath string
	OutputPath   string

	// StartPage skips leading BOM pages (cover sheets) before scanning,
	// 0-based.
	StartPage int

	// Admin optionally carries the header fields overlaid on the form.
	Admin form.AdminData
}

// GenerateResult reports one finished run. Degraded mirrors
// form.Result.Degraded: an output file exists but carries no item overlay.
type GenerateResult struct {
	OutputPath    string
	ItemCount     int
	Pages         int
	Degraded      bool
	FailureReason string
}

// Config configures the pipeline service.
type Config struct {
	MaxFileSize        int64
	QuantityPreference bom.QuantityPreference
	AdminEveryPage     bool
}

// Service wires the extractor and renderer behind a single entry point.
type Service struct {
	validator *Validator
	extractor *bom.Extractor
	renderer  *form.Renderer
	log       *zap.Logger
}

// NewService creates the pipeline with all components. A nil logger
// disables logging.
func NewService(cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		validator: NewValidator(cfg.MaxFileSize),
		extractor: bom.NewExtractor(bom.Config{QuantityPreference: cfg.QuantityPreference}, logger),
		renderer:  form.NewRenderer(form.Config{AdminEveryPage: cfg.AdminEveryPage}, logger),
		log:       logger,
	}
}

// Generate runs extract then render. A BOM that cannot be read or parsed
// degrades to zero items rather than failing, since a document must always
// come out; template problems surface as errors only when not even a blank
// first-page copy could be written.
func (s *Service) Generate(req GenerateRequest) (*GenerateResult, error) {
	if err := s.validator.ValidateFile(req.TemplatePath); err != nil {
		return nil, fmt.Errorf("template validation failed: %w", err)
	}

	var items []bom.Item
	if err := s.validator.ValidateFile(req.BOMPath); err != nil {
		s.log.Warn("BOM validation failed, producing blank form", zap.Error(err))
	} else {
		items = s.extractor.ExtractFile(req.BOMPath, req.StartPage)
	}

	res, err := s.renderer.Render(items, req.Admin, req.TemplatePath, req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("rendering failed: %w", err)
	}

	return &GenerateResult{
		OutputPath:    res.OutputPath,
		ItemCount:     res.ItemCount,
		Pages:         res.Pages,
		Degraded:      res.Degraded,
		FailureReason: res.FailureReason,
	}, nil
}
