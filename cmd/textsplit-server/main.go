// Command textsplit-server provides an HTTP REST API for splitting text.
//
// Usage:
//
//	textsplit-server -p 8080
//	textsplit-server -p 8080 --config /etc/textsplit.toml --access-log /var/log/textsplit.log
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/urfave/cli/v2"

	"github.com/Alfex4936/textsplit/internal/log"
	"github.com/Alfex4936/textsplit/textsplit"
)

var portFlag = &cli.StringFlag{
	Name:    "port",
	Aliases: []string{"p"},
	Usage:   "port to listen on",
	Value:   "8080",
	EnvVars: []string{"PORT"},
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "growth policy file (.toml, .yaml or .yml)",
	EnvVars: []string{"TEXTSPLIT_CONFIG"},
}

var accessLogFlag = &cli.StringFlag{
	Name:  "access-log",
	Usage: "file to log http accesses to (default stdout)",
}

var maxBodyFlag = &cli.IntFlag{
	Name:    "max-body",
	Usage:   "largest text, in bytes, a single request may split",
	Value:   textsplit.DefaultMaxBody,
	EnvVars: []string{"TEXTSPLIT_MAX_BODY"},
}

var jsonLogFlag = &cli.BoolFlag{
	Name:  "log-json",
	Usage: "write structured logs as JSON",
}

const accessLogPerm = 0o644

func main() {
	app := &cli.App{
		Name:   "textsplit-server",
		Usage:  "HTTP API for splitting text on an exact separator",
		Flags:  []cli.Flag{portFlag, configFlag, accessLogFlag, maxBodyFlag, jsonLogFlag},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		log.DefaultLogger().Fatalw("", "binary", "textsplit-server", "err", err)
	}
}

func serve(c *cli.Context) error {
	logger := log.New(nil, log.DefaultLevel, c.Bool(jsonLogFlag.Name)).Named("textsplit-server")
	defer logger.Sync() //nolint:errcheck

	cfg := textsplit.DefaultConfig()
	if c.IsSet(configFlag.Name) {
		var err error
		if cfg, err = textsplit.LoadConfig(c.String(configFlag.Name)); err != nil {
			return err
		}
	}
	srv := textsplit.NewServer(cfg, c.Int(maxBodyFlag.Name), logger)

	var access io.Writer = os.Stdout
	if c.IsSet(accessLogFlag.Name) {
		f, err := os.OpenFile(c.String(accessLogFlag.Name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, accessLogPerm)
		if err != nil {
			return fmt.Errorf("failed to open access log: %w", err)
		}
		defer f.Close()
		access = f
	}

	port := c.String(portFlag.Name)
	logger.Infow("textsplit server listening",
		"url", "http://localhost:"+port,
		"split", "POST /v1/split",
		"docs", "GET /",
		"bytes_policy", cfg.Bytes,
		"views_policy", cfg.Views,
	)
	return http.ListenAndServe(":"+port, handlers.CombinedLoggingHandler(access, srv.Handler()))
}
