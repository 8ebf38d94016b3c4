package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"web-groq/internal/assistant"
	"web-groq/internal/chat"
	"web-groq/internal/config"
	"web-groq/internal/crawler"
	"web-groq/internal/history"
	"web-groq/internal/log"
	"web-groq/internal/search"
	"web-groq/internal/terminal"
	"web-groq/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:           "web-groq",
		Short:         "Chat with a Groq-hosted model, grounded in live web search",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindEnv(v); err != nil {
				return err
			}
			cfg := config.Load(v)
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	defaults := config.NewConfig()
	flags := cmd.Flags()
	flags.String("model", defaults.ModelName, "Chat model name (env GROQ_MODEL)")
	flags.String("chat-url", defaults.ChatURL, "Chat completions endpoint")
	flags.String("search-url", defaults.SearchURL, "Search endpoint")
	flags.Int("max-results", defaults.MaxResults, "Maximum search results to read")
	flags.Duration("crawl-timeout", defaults.CrawlTimeout, "Timeout for each page fetch")
	flags.Int("max-chars", defaults.MaxContentSize, "Characters kept from each page")
	flags.String("extract-mode", defaults.ExtractMode, "Page extraction mode: text or readability")
	flags.Int("history-window", defaults.HistoryWindow, "Recent messages sent with each request")
	flags.Float32("temperature", defaults.Temperature, "Sampling temperature")
	flags.String("language", defaults.Language, "Language the assistant answers in")
	flags.Bool("render", false, "Re-render each answer as markdown")
	flags.BoolP("verbose", "v", false, "Log operational details to stderr")
	flags.Bool("debug", false, "Log debugging details to stderr")

	if err := bindFlags(v, flags, flagBindings); err != nil {
		panic(err)
	}

	return cmd
}

// flagBindings maps configuration keys to the flags that set them.
var flagBindings = map[string]string{
	config.KeyModel:          "model",
	config.KeyChatURL:        "chat-url",
	config.KeySearchURL:      "search-url",
	config.KeyMaxResults:     "max-results",
	config.KeyCrawlTimeout:   "crawl-timeout",
	config.KeyMaxContent:     "max-chars",
	config.KeyExtractMode:    "extract-mode",
	config.KeyHistoryWindow:  "history-window",
	config.KeyTemperature:    "temperature",
	config.KeyLanguage:       "language",
	config.KeyRenderMarkdown: "render",
	config.KeyVerbose:        "verbose",
	config.KeyDebug:          "debug",
}

// bindFlags binds each named flag to its configuration key.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("failed to bind flag %s: no such flag", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	logger := log.NewText(os.Stderr, log.LevelFor(cfg.Verbose, cfg.Debug))
	log.SetDefault(logger)

	display := ui.NewDisplay(os.Stdout, ui.WithMarkdown(cfg.RenderMarkdown))

	searchClient := search.NewClient(cfg.SearchURL, cfg.SearchAPIKey, cfg.MaxResults,
		search.WithLogger(logger))
	webCrawler := crawler.NewCrawler(cfg.CrawlTimeout, cfg.MaxContentSize, cfg.UserAgent,
		crawler.WithMode(cfg.ExtractMode), crawler.WithLogger(logger))
	chatClient := chat.NewClient(cfg.ChatURL, cfg.ChatAPIKey, cfg.ModelName, cfg.Temperature,
		chat.WithLogger(logger))

	bot := assistant.New(searchClient, webCrawler, chatClient, history.NewManager(), display,
		assistant.WithHistoryWindow(cfg.HistoryWindow),
		assistant.WithLanguage(cfg.Language),
		assistant.WithLogger(logger))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		display.PrintGoodbye()
		cancel()
		os.Exit(0)
	}()

	logger.Info("starting session", "model", cfg.ModelName, "extract_mode", cfg.ExtractMode)
	return bot.Run(ctx, terminal.NewReader(os.Stdin), display, chatClient.Model())
}
