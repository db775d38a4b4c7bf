// Command rondo scores a competitor roster, screens it for suspicious
// profiles, and partitions it into balanced fixed-size teams.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/okian/rondo/internal/config"
	"github.com/okian/rondo/pkg/logger"
	"github.com/okian/rondo/pkg/metrics"
)

var (
	name    = "rondo"
	version = "v0.1.0-default"
	commit  = ""

	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file (optional, also read from RONDO_CONFIG)",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	quietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "Only log warnings and errors",
	}

	metricsAddrFlag = &cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "Serve Prometheus metrics on this address for the lifetime of the run (optional)",
	}
)

func main() {
	logger.Init(os.Stderr)

	app := &cli.App{
		Name:     name,
		Version:  version + commitSuffix(),
		Compiled: time.Now(),
		Usage:    "Score competitor rosters and build balanced teams",
		Flags: []cli.Flag{
			configFlag,
			debugFlag,
			quietFlag,
			metricsAddrFlag,
		},
		Commands: []*cli.Command{
			balanceCmd,
			replaceCmd,
			analyzeCmd,
			rosterCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Get().Error(context.Background(), "command failed", logger.Error(err))
		os.Exit(1)
	}
}

func commitSuffix() string {
	if commit == "" {
		return ""
	}
	return " (commit: " + commit + ")"
}

// loadConfig builds the runtime configuration for one command invocation and
// applies the log level requested on the command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var opts []config.LoadOption
	if path := c.String(configFlag.Name); path != "" {
		opts = append(opts, config.WithFile(path))
	}

	cfg, err := config.Load(c.Context, opts...)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	switch {
	case c.Bool(debugFlag.Name):
		level = "debug"
	case c.Bool(quietFlag.Name):
		level = "warn"
	}
	if err := logger.SetLevelString(level); err != nil {
		return nil, err
	}

	return cfg, nil
}

// serveMetrics exposes the Prometheus endpoint in the background when the
// operator asked for one. Batch runs are short; the listener dies with the
// process.
func serveMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Warn(ctx, "metrics listener stopped", logger.Error(err))
		}
	}()
}
