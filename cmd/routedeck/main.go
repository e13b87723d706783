// Copyright 2026 The Routedeck Authors
// SPDX-License-Identifier: Apache-2.0

// routedeck is a terminal console for a travel-planning backend:
// paginated location and transportation management plus an interactive
// route search with multi-leg itineraries.
//
// Configuration comes from a YAML file named by the ROUTEDECK_CONFIG
// environment variable or the --config flag; --base-url and
// --token-file override the file for one-off runs.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/routedeck/routedeck/lib/api"
	"github.com/routedeck/routedeck/lib/config"
	"github.com/routedeck/routedeck/lib/consoleui"
	"github.com/routedeck/routedeck/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var baseURL string
	var tokenFile string
	var logOutput string

	flagSet := pflag.NewFlagSet("routedeck", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to routedeck.yaml (default: $ROUTEDECK_CONFIG)")
	flagSet.StringVar(&baseURL, "base-url", "", "backend base URL, overrides the config file")
	flagSet.StringVar(&tokenFile, "token-file", "", "path to a bearer token file, overrides the config file")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works without a
	// config file present.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("routedeck")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath, baseURL, tokenFile)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("routedeck requires an interactive terminal")
	}

	// The alt-screen display owns stderr and stdout, so background log
	// records go to a file or nowhere.
	logger, cleanup, err := buildLogger(logOutput)
	if err != nil {
		return err
	}
	defer cleanup()

	var credential api.CredentialProvider
	if cfg.API.TokenFile != "" {
		credential = api.FileToken(cfg.API.TokenFile)
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		Credential: credential,
		HTTPClient: &http.Client{Timeout: cfg.API.RequestTimeout},
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	model := consoleui.NewModel(client, consoleui.Options{
		PageSize:         cfg.UI.PageSize,
		DebounceInterval: cfg.UI.DebounceInterval,
		Logger:           logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// loadConfig resolves the config file and applies flag overrides. A
// missing config file is acceptable when --base-url supplies the only
// required setting.
func loadConfig(configPath, baseURL, tokenFile string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case configPath != "":
		cfg, err = config.LoadFile(configPath)
	case os.Getenv("ROUTEDECK_CONFIG") != "":
		cfg, err = config.Load()
	case baseURL != "":
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("no configuration: set ROUTEDECK_CONFIG, pass --config, or pass --base-url")
	}
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if tokenFile != "" {
		cfg.API.TokenFile = tokenFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLogger returns the background logger: a JSON handler appending
// to path, or a discard logger when no path is given.
func buildLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output %s: %w", path, err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Routedeck — terminal console for a travel-planning backend.

Manage locations and transportations in paginated lists, and search
for multi-leg routes between two locations.

Usage:
  routedeck [flags]

Examples:
  # Run with a config file
  ROUTEDECK_CONFIG=routedeck.yaml routedeck

  # Point at a local backend without a config file
  routedeck --base-url http://localhost:8080/api/v1

  # Authenticated, with background logs captured
  routedeck --config routedeck.yaml --token-file ~/.routedeck-token --log-output /tmp/routedeck.log

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
