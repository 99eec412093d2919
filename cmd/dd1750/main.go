package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/formpack/dd1750/internal/config"
	"github.com/formpack/dd1750/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging builds the structured logger for the configured level.
func setupLogging(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := setupLogging(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		logger.Debug("starting", zap.String("config", cfg.String()))
	}

	svc := pipeline.NewService(pipeline.Config{
		MaxFileSize:        cfg.MaxFileSize,
		QuantityPreference: cfg.QuantityPreference(),
		AdminEveryPage:     cfg.AdminEveryPage,
	}, logger)

	result, err := svc.Generate(pipeline.GenerateRequest{
		BOMPath:      cfg.BOMPath,
		TemplatePath: cfg.TemplatePath,
		OutputPath:   cfg.OutputPath,
		StartPage:    cfg.StartPage,
		Admin:        cfg.Admin(),
	})
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}

	if result.Degraded {
		logger.Warn("produced a degraded output",
			zap.String("reason", result.FailureReason),
			zap.String("output", result.OutputPath))
	}
	if result.ItemCount == 0 {
		logger.Warn("no packing-list items found in the BOM",
			zap.String("bom", cfg.BOMPath))
	}

	logger.Info("packing list written",
		zap.String("output", result.OutputPath),
		zap.Int("items", result.ItemCount),
		zap.Int("pages", result.Pages))
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("DD1750 Generator\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
