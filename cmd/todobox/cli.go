package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"todobox/internal/config"
	"todobox/internal/logging"
	"todobox/internal/mcp"
	"todobox/internal/todo"
	"todobox/internal/ui"
	"todobox/internal/web"
)

// newCLIApp creates the CLI application with all commands. Without a
// command it starts the terminal UI.
func newCLIApp() *cli.App {
	app := &cli.App{
		Name:    "todobox",
		Usage:   "A todo list for the terminal, the browser and MCP clients",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config.toml", EnvVars: []string{config.EnvConfigPath}},
			&cli.StringFlag{Name: "log-level", Usage: "Override log_level: debug|info|warn|error"},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			tuiCmd(),
			serveCmd(),
			mcpCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func tuiCmd() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Run the terminal UI (default)",
		Action: runTUI,
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the todo list over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "Listen address (defaults to [web] addr)"},
		},
		Action: func(c *cli.Context) error {
			cfg, path, err := loadSettings(c.String("config"), c.String("log-level"))
			if err != nil {
				return err
			}
			if addr := strings.TrimSpace(c.String("addr")); addr != "" {
				cfg.Web.Addr = addr
			}

			logger := logging.New(os.Stderr, cfg.LogLevel)
			logger.Debug("config loaded", "path", path)

			store := todo.NewStore(cfg.StoreOptions()...)
			srv := web.NewServer(store, logger, Version, cfg.Web.Addr)
			return web.Run(c.Context, srv, logger)
		},
	}
}

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the todo tools over MCP (stdio)",
		Action: func(c *cli.Context) error {
			cfg, path, err := loadSettings(c.String("config"), c.String("log-level"))
			if err != nil {
				return err
			}

			// stdout carries the protocol.
			logger := logging.New(os.Stderr, cfg.LogLevel)
			logger.Debug("config loaded", "path", path)

			store := todo.NewStore(cfg.StoreOptions()...)
			return mcp.Run(c.Context, store, logger, Version)
		},
	}
}

func runTUI(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q, run 'todobox --help' for usage", c.Args().First())
	}

	cfg, path, err := loadSettings(c.String("config"), c.String("log-level"))
	if err != nil {
		return err
	}

	logger, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Close()
	logger.Info("starting terminal UI", "config", path)

	store := todo.NewStore(cfg.StoreOptions()...)
	if err := ui.Run(store, cfg, logger.Logger); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// loadSettings resolves and loads the config file, creating it on first
// launch, then applies flag overrides.
func loadSettings(configPath, logLevel string) (config.Config, string, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, path, fmt.Errorf("failed to load config: %w", err)
	}
	if lvl := strings.TrimSpace(logLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, path, nil
}
