// rfq-console - A terminal front end for the quotation and knowledge-base services.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rfq-console/internal/api"
	"github.com/jeranaias/rfq-console/internal/config"
	"github.com/jeranaias/rfq-console/internal/export"
	"github.com/jeranaias/rfq-console/internal/ui"
	"github.com/jeranaias/rfq-console/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a config file (toml or json)")
		apiURL      = flag.String("api-url", "", "override the services base URL")
		timeoutSecs = flag.Int("timeout", 0, "override the request timeout in seconds")
		downloadDir = flag.String("download-dir", "", "override the download directory")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("rfq-console %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rfq-console: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *timeoutSecs > 0 {
		cfg.API.TimeoutSecs = *timeoutSecs
	}
	if *downloadDir != "" {
		cfg.Export.DownloadDir = *downloadDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "rfq-console: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	// The alternate screen belongs to the TUI; request logs go to a file.
	closeLog := redirectLog()
	defer closeLog()

	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)

	dir := cfg.Export.DownloadDir
	if dir == "" {
		dir = export.DefaultDir()
	}

	app := ui.NewApp(styles.NewTheme(), client, dir)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "rfq-console: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads from an explicit path or the default locations.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// redirectLog sends the standard logger to ~/.rfq-console/console.log so
// API request lines never corrupt the alternate screen. Logging is
// dropped entirely when the directory cannot be created.
func redirectLog() func() {
	dir, err := config.ConfigDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "console.log"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { _ = f.Close() }
}
