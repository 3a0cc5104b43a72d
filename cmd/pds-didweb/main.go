package main

import (
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/stahnma/pds-didweb/internal/commands"
	"github.com/stahnma/pds-didweb/internal/config"
	lambdapkg "github.com/stahnma/pds-didweb/internal/lambda"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	GitSHA   string
	GitDirty string
)

func newLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnvironment()

	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	app, err := commands.NewApp(cfg, logger, GitSHA, GitDirty)
	if err != nil {
		commands.PrintError(os.Stderr, err)
		return 1
	}
	defer app.Close()

	if os.Getenv("LAMBDA_TASK_ROOT") != "" {
		awslambda.Start(lambdapkg.NewHandler(app, nil))
		return 0
	}

	rootCmd := app.NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		return 1
	}
	if err := app.SaveCache(); err != nil {
		logger.Warn("Error saving cache", zap.Error(err))
	}
	return 0
}
