package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/helixcrm/flowkit/internal/logging"
)

const usage = `flowkit - workflow automation engine

Usage:
  flowkit run -workflow <wf.json> -context <ctx.json> [-db <path>]
  flowkit validate -workflow <wf.json>

Environment:
  FLOWKIT_DB_PATH        database path (default ~/.flowkit/flowkit.db)
  FLOWKIT_LOG_LEVEL      debug | info | warn | error
  FLOWKIT_AGENT_COMMAND  command launching the MCP agent server
  FLOWKIT_PERSIST_RUNS   persist run history (default true)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := loadConfig()
	logger := newLogger(cfg.LogLevel)

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(cfg, logger, os.Args[2:])
	case "validate":
		err = validateCmd(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return slog.New(logging.NewCorrelationHandler(handler))
}
