package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/haikuforge/internal/config"
	"github.com/timmy/haikuforge/internal/logger"
	"github.com/timmy/haikuforge/internal/repository"
	"github.com/timmy/haikuforge/internal/service"
)

func main() {
	// Logs go to stderr so stdout carries only poems
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		Output:      os.Stderr,
		ServiceName: "haikuforge-cli",
	})
	logger.SetDefaultLogger(appLogger)

	topic := flag.String("topic", "", "Topic to write a haiku about")
	listOnly := flag.Bool("list", false, "Only print the archive")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *topic == "" && !*listOnly {
		fmt.Fprintln(os.Stderr, "usage: forge -topic <topic> | forge -list [-config path]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = logger.SetComponent(ctx, "cli")

	generator, err := service.NewGenerator(&service.GenerationConfig{
		Provider:    cfg.Generation.Provider,
		Model:       cfg.Generation.Model,
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		Timeout:     cfg.Generation.Timeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize generator")
	}

	archive, err := repository.NewArchiveStore(ctx, &cfg.Archive)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize archive")
	}

	forge := service.NewForgeService(generator, archive)

	out := forge.Submit(ctx, service.Submission{Topic: *topic, Pressed: !*listOnly})
	printOutcome(os.Stdout, out)

	if out.GenerationErr != nil || out.SaveErr != nil || out.Gallery.Err != nil {
		os.Exit(1)
	}
}

func printOutcome(w io.Writer, out *service.Outcome) {
	if out.Poem != nil {
		fmt.Fprintf(w, "~ %s ~\n%s\n\n", out.Poem.Topic, out.Poem.Body)
	}
	for _, msg := range out.Messages() {
		fmt.Fprintf(w, "[%s] %s\n", msg.Level, msg.Text)
	}

	fmt.Fprintln(w, "\nHaiku Archives")
	if out.Gallery.Empty() {
		fmt.Fprintln(w, "No haiku echoes yet... Be the first poet")
		return
	}
	for _, item := range out.Gallery.Items {
		fmt.Fprintf(w, "\n%d. %s\n", item.Index+1, item.Topic)
		for _, line := range item.Lines() {
			fmt.Fprintf(w, "   %s\n", line)
		}
	}
}
