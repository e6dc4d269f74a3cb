package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/finance-guide/internal/config"
	"github.com/iwvelando/finance-guide/internal/logging"
	"github.com/iwvelando/finance-guide/internal/plan"
	"github.com/iwvelando/finance-guide/internal/report"
	"github.com/iwvelando/finance-guide/pkg/constants"
	"github.com/iwvelando/finance-guide/pkg/output"
	"github.com/iwvelando/finance-guide/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: markdown, json, yaml")
	outputFileFlag := flag.String("output-file", "", "write the result to this file instead of stdout")
	languageFlag := flag.String("language", "", "report language override: it, en, de")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *languageFlag != "" {
		conf.Language = *languageFlag
	}

	outputFile := conf.Output.File
	if *outputFileFlag != "" {
		outputFile = *outputFileFlag
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	result := plan.Build(logger, conf.ToInput())

	renderer, err := report.NewRenderer()
	if err != nil {
		logger.Fatal("failed to load report templates",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	lang := report.ParseLanguage(conf.Language)
	rendered, err := renderer.Render(result, lang.String())
	if err != nil {
		logger.Fatal("failed to render report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			logger.Fatal("failed to create output file",
				zap.String("op", "main"),
				zap.String("file", outputFile),
				zap.Error(err),
			)
		}
		defer func() {
			if err := file.Close(); err != nil {
				logger.Error("failed to close output file",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
		}()
		w = file
	}

	if err := output.Write(w, outputFormat, rendered, result.Rounded()); err != nil {
		logger.Error("failed to write output",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
		return
	}

	logger.Info("plan written",
		zap.String("op", "main"),
		zap.String("language", lang.String()),
		zap.String("format", outputFormat),
		zap.Bool("blocked", result.Blocked),
		zap.Int("warnings", len(result.Warnings)),
	)
}
