package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/SscSPs/cherry_dining/internal/client/api"
	"github.com/SscSPs/cherry_dining/internal/client/session"
	"github.com/SscSPs/cherry_dining/internal/platform/menu"
	"github.com/SscSPs/cherry_dining/internal/terminal"
	"github.com/google/subcommands"
	"github.com/spf13/viper"
)

func main() {
	viper.SetDefault("CHERRY_API_URL", "http://localhost:8080")
	viper.SetDefault("CHERRY_SESSION_DIR", defaultSessionDir())
	viper.SetDefault("CHERRY_HTTP_TIMEOUT", "15s")
	viper.SetDefault("CHERRY_DEBUG", false)
	viper.AutomaticEnv()

	level := slog.LevelInfo
	if viper.GetBool("CHERRY_DEBUG") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	navMenu, err := menu.Load()
	if err != nil {
		logger.Error("Failed to load navigation menu", slog.String("error", err.Error()))
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(viper.GetString("CHERRY_HTTP_TIMEOUT"))
	if err != nil {
		logger.Warn("Invalid CHERRY_HTTP_TIMEOUT, using 15s", slog.String("value", viper.GetString("CHERRY_HTTP_TIMEOUT")))
		timeout = 15 * time.Second
	}

	client := api.NewClient(viper.GetString("CHERRY_API_URL"), nil)
	client.HTTPClient().Timeout = timeout
	storage := session.NewFileStorage(viper.GetString("CHERRY_SESSION_DIR"))
	app := terminal.NewApp(client, storage, navMenu, os.Stdin, os.Stdout, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	commander := subcommands.NewCommander(flag.CommandLine, filepath.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, cmd := range terminal.Commands(app) {
		commander.Register(cmd, "")
	}

	flag.Parse()
	app.Restore(ctx)
	os.Exit(int(commander.Execute(ctx)))
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cherry_dining")
	}
	return ".cherry_dining"
}
