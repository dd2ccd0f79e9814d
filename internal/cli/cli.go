package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vk/uebridge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envDefaults are the settings that can come from the environment. Flags
// override them.
type envDefaults struct {
	Host           string        `env:"UEBRIDGE_HOST" envDefault:"127.0.0.1"`
	Port           int           `env:"UEBRIDGE_PORT" envDefault:"8765"`
	QueueSize      int           `env:"UEBRIDGE_QUEUE_SIZE" envDefault:"100"`
	TickInterval   time.Duration `env:"UEBRIDGE_TICK_INTERVAL" envDefault:"100ms"`
	RequestTimeout time.Duration `env:"UEBRIDGE_REQUEST_TIMEOUT" envDefault:"30s"`
	LogFormat      string        `env:"UEBRIDGE_LOG_FORMAT" envDefault:"text"`
	LogLevel       string        `env:"UEBRIDGE_LOG_LEVEL" envDefault:"info"`
	ManifestsPath  string        `env:"UEBRIDGE_MANIFESTS" envDefault:"modules"`
}

// Parse processes command-line arguments. It returns a populated AppConfig,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.AppConfig, bool, error) {
	slog.Debug("CLI parser started.")

	defaults, err := env.ParseAs[envDefaults]()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid environment: " + err.Error()}
	}

	flagSet := flag.NewFlagSet("uebridge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
uebridge - Editor automation bridge: JSON command listener over loopback HTTP.

Usage:
  uebridge [options] [MANIFESTS_PATH]

Arguments:
  MANIFESTS_PATH
    Path to a .hcl command manifest or a directory tree containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestsFlag := flagSet.String("manifests", "", "Path to the command manifest file or directory.")
	hostFlag := flagSet.String("host", defaults.Host, "Interface to bind the listener on.")
	portFlag := flagSet.Int("port", defaults.Port, "Port for the command listener.")
	queueFlag := flagSet.Int("queue-size", defaults.QueueSize, "Maximum number of queued commands.")
	tickFlag := flagSet.Duration("tick-interval", defaults.TickInterval, "Interval between command queue drains.")
	timeoutFlag := flagSet.Duration("request-timeout", defaults.RequestTimeout, "Per-request wait before answering 504.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	manifests := defaults.ManifestsPath
	if *manifestsFlag != "" {
		manifests = *manifestsFlag
	} else if flagSet.NArg() > 0 {
		manifests = flagSet.Arg(0)
	}
	slog.Debug("Manifest path determined.", "path", manifests)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *portFlag <= 0 || *portFlag > 65535 {
		return nil, false, &ExitError{Code: 2, Message: "invalid port: must be between 1 and 65535"}
	}
	slog.Debug("CLI parameter validation complete.")

	return &app.AppConfig{
		ManifestPaths:  []string{manifests},
		Host:           *hostFlag,
		Port:           *portFlag,
		QueueSize:      *queueFlag,
		TickInterval:   *tickFlag,
		RequestTimeout: *timeoutFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	}, false, nil
}
