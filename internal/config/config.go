package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/formpack/dd1750/internal/bom"
	"github.com/formpack/dd1750/internal/form"
)

const (
	// Default values
	DefaultOutputPath  = "DD1750.pdf"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 200 * 1024 * 1024 // 200MB
)

// Config holds all configuration for the DD1750 generator.
type Config struct {
	// Input/output paths
	BOMPath      string `validate:"required"`
	TemplatePath string `validate:"required"`
	OutputPath   string `validate:"required"`

	// Extraction configuration
	StartPage      int    `validate:"min=0"`
	QuantityColumn string `validate:"oneof=onhand authorized"`

	// Rendering configuration
	AdminEveryPage bool

	// Admin header fields; empty fields are not drawn
	Unit          string
	Date          string
	RequisitionNo string
	OrderNo       string
	NumBoxes      string
	PackedBy      string

	// Application configuration
	Version     string
	LogLevel    string `validate:"oneof=debug info warn error"`
	MaxFileSize int64  `validate:"min=1"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputPath:     DefaultOutputPath,
		StartPage:      0,
		QuantityColumn: string(bom.PreferOnHand),
		Version:        "1.0.0",
		LogLevel:       DefaultLogLevel,
		MaxFileSize:    DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("DD1750")
	viper.AutomaticEnv()

	viper.SetDefault("bom", cfg.BOMPath)
	viper.SetDefault("template", cfg.TemplatePath)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("startpage", cfg.StartPage)
	viper.SetDefault("qtycolumn", cfg.QuantityColumn)
	viper.SetDefault("admineverypage", cfg.AdminEveryPage)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("bom", cfg.BOMPath, "Path to the BOM source PDF")
	pflag.String("template", cfg.TemplatePath, "Path to the blank DD Form 1750 template PDF")
	pflag.String("out", cfg.OutputPath, "Path of the output PDF")
	pflag.Int("startpage", cfg.StartPage, "Leading BOM pages to skip before scanning (0-based)")
	pflag.String("qtycolumn", cfg.QuantityColumn, "Quantity column preference: 'onhand' or 'authorized'")
	pflag.Bool("admineverypage", cfg.AdminEveryPage, "Repeat admin header fields on every page")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input PDF file size in bytes")

	pflag.String("unit", "", "Unit designation drawn in the form header")
	pflag.String("date", "", "Date drawn in the form header")
	pflag.String("requisition", "", "Requisition number drawn in the form header")
	pflag.String("order", "", "Order number drawn in the form header")
	pflag.String("boxes", "", "Number of boxes drawn in the form header")
	pflag.String("packedby", "", "Packed-by signatory drawn in the form header")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	for _, name := range []string{
		"bom", "template", "out", "startpage", "qtycolumn", "admineverypage",
		"loglevel", "maxfilesize", "unit", "date", "requisition", "order",
		"boxes", "packedby",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nDD1750 Generator - fills a DD Form 1750 packing list from a BOM PDF\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --bom=bom.pdf --template=dd1750_blank.pdf --out=DD1750.pdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --bom=bom.pdf --template=blank.pdf --startpage=2 --unit=\"B CO 1-502 IN\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  DD1750_BOM          BOM source PDF\n")
		fmt.Fprintf(os.Stderr, "  DD1750_TEMPLATE     Blank template PDF\n")
		fmt.Fprintf(os.Stderr, "  DD1750_OUT          Output PDF\n")
		fmt.Fprintf(os.Stderr, "  DD1750_STARTPAGE    Leading BOM pages to skip\n")
		fmt.Fprintf(os.Stderr, "  DD1750_QTYCOLUMN    Quantity column preference\n")
		fmt.Fprintf(os.Stderr, "  DD1750_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  DD1750_MAXFILESIZE  Maximum input file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.BOMPath = viper.GetString("bom")
	cfg.TemplatePath = viper.GetString("template")
	cfg.OutputPath = viper.GetString("out")
	cfg.StartPage = viper.GetInt("startpage")
	cfg.QuantityColumn = viper.GetString("qtycolumn")
	cfg.AdminEveryPage = viper.GetBool("admineverypage")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Unit = viper.GetString("unit")
	cfg.Date = viper.GetString("date")
	cfg.RequisitionNo = viper.GetString("requisition")
	cfg.OrderNo = viper.GetString("order")
	cfg.NumBoxes = viper.GetString("boxes")
	cfg.PackedBy = viper.GetString("packedby")
}

// expandPaths makes the configured paths absolute where possible.
func expandPaths(cfg *Config) {
	for _, p := range []*string{&cfg.BOMPath, &cfg.TemplatePath, &cfg.OutputPath} {
		if *p == "" {
			continue
		}
		if abs, err := filepath.Abs(*p); err == nil {
			*p = abs
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	// Input files must exist up front; the output path is created later.
	for name, path := range map[string]string{"bom": c.BOMPath, "template": c.TemplatePath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot access %s file %s: %w", name, path, err)
		}
	}

	return nil
}

// Admin assembles the admin-field overlay data from the configured header
// fields, omitting empty ones.
func (c *Config) Admin() form.AdminData {
	fields := map[string]string{
		form.AdminUnit:          c.Unit,
		form.AdminDate:          c.Date,
		form.AdminRequisitionNo: c.RequisitionNo,
		form.AdminOrderNo:       c.OrderNo,
		form.AdminNumBoxes:      c.NumBoxes,
		form.AdminPackedBy:      c.PackedBy,
	}

	data := form.AdminData{}
	for key, value := range fields {
		if value != "" {
			data[key] = value
		}
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

// QuantityPreference returns the configured quantity column preference.
func (c *Config) QuantityPreference() bom.QuantityPreference {
	return bom.QuantityPreference(c.QuantityColumn)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{BOM: %s, Template: %s, Out: %s, StartPage: %d, QtyColumn: %s, LogLevel: %s, MaxFileSize: %d}",
		c.BOMPath, c.TemplatePath, c.OutputPath, c.StartPage, c.QuantityColumn, c.LogLevel, c.MaxFileSize)
}
