package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/pyhub-apps/diamondprice-golang/pkg/config"
)

var (
	app        = kingpin.New("rapaport", "Extract RAPAPORT diamond price tables from PDF price lists.")
	configPath = app.Flag("config", "YAML configuration file.").Short('c').ExistingFile()
	logLevel   = app.Flag("log-level", "Log level.").Default("info").Enum("debug", "info", "warn", "error")
	password   = app.Flag("password", "Password for encrypted documents.").Envar("RAPAPORT_PDF_PASSWORD").String()

	extractCmd   = app.Command("extract", "Print the price tables found in each file.")
	extractFiles = extractCmd.Arg("file", "PDF price lists.").Required().ExistingFiles()
	format       = extractCmd.Flag("format", "Output format (text or json).").Short('f').Enum("text", "json")
	precision    = extractCmd.Flag("precision", "Decimals shown in text output.").Default("-1").Int()
	colored      = extractCmd.Flag("color", "Bold table titles and headers.").Bool()
	resetGrades  = extractCmd.Flag("reset-grades", "Forget colour grades at every new table title.").Bool()
	workers      = extractCmd.Flag("workers", "Files extracted concurrently.").Default("4").Int()

	textCmd      = app.Command("text", "Print the text lines the table scanner sees.")
	textFile     = textCmd.Arg("file", "PDF price list.").Required().ExistingFile()
	textNumbered = textCmd.Flag("numbered", "Prefix every line with its number.").Short('n').Bool()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		logger.Sync()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case extractCmd.FullCommand():
		err = runExtract(ctx, logger, cfg, *extractFiles, *workers)
	case textCmd.FullCommand():
		err = runText(ctx, logger, cfg, *textFile, *textNumbered)
	}

	if err != nil {
		logger.Error(err.Error())
		logger.Sync()
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies command-line overrides
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *password != "" {
		cfg.Extraction.Password = *password
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *precision >= 0 {
		cfg.Output.Precision = *precision
	}
	if *colored {
		cfg.Output.Color = true
	}
	if *resetGrades {
		cfg.Rules.ResetGradesOnTitle = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds a development logger on stderr, or a JSON production
// logger when ENV=production
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	if os.Getenv("ENV") == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
