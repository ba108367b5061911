package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studyscout/internal/backend"
	"github.com/csheth/studyscout/internal/config"
	"github.com/csheth/studyscout/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default $HOME/.config/studyscout/config.yml)")
	envFile := flag.String("env-file", "", "path to a .env file (default ./.env)")
	baseURL := flag.String("base-url", "", "study assistant backend URL (eg. http://localhost:5000)")
	logFile := flag.String("log-file", "", "file that receives debug logs")
	requestTimeout := flag.Duration("request-timeout", 0, "timeout for each backend request")
	reloadDelay := flag.Duration("reload-delay", 0, "delay before the session restarts after an API key update")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	cfg, err := config.Load(config.Options{ConfigPath: *configPath, EnvFile: *envFile})
	if err != nil {
		fmt.Println("failed to load configuration:", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base-url":
			cfg.BaseURL = *baseURL
		case "log-file":
			cfg.LogFile = *logFile
		case "request-timeout":
			cfg.RequestTimeout = *requestTimeout
		case "reload-delay":
			cfg.ReloadDelay = *reloadDelay
		case "no-alt-screen":
			cfg.NoAltScreen = *noAltScreen
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Println("invalid configuration:", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		fmt.Println("failed to create log directory:", err)
		os.Exit(1)
	}
	logOut, err := tea.LogToFile(cfg.LogFile, "studyscout")
	if err != nil {
		fmt.Println("failed to open log file:", err)
		os.Exit(1)
	}
	defer logOut.Close()
	log.Printf("[main] starting against %s (request-timeout=%s)", cfg.BaseURL, cfg.RequestTimeout)

	client := backend.New(backend.Config{BaseURL: cfg.BaseURL, Timeout: cfg.RequestTimeout})

	opts := []tea.ProgramOption{}
	if !cfg.NoAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Client:         client,
			BaseURL:        cfg.BaseURL,
			RequestTimeout: cfg.RequestTimeout,
			ReloadDelay:    cfg.ReloadDelay,
			ToastDuration:  cfg.ToastDuration,
			Now:            time.Now,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
