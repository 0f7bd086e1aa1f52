// Package main is the entry point for folioctl, a command line client for
// the portfolio backend.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/foliohq/folioclient/internal/api"
	"github.com/foliohq/folioclient/internal/config"
	"github.com/foliohq/folioclient/internal/metrics"
	"github.com/foliohq/folioclient/internal/notify"
	"github.com/foliohq/folioclient/internal/observability"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// cliFlags holds command line flags.
type cliFlags struct {
	configPath  string
	serverURL   string
	logLevel    string
	logFormat   string
	showVersion bool
}

func main() {
	flags, args := parseFlags()

	if flags.showVersion {
		printVersion()
		return
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	logger := initLogger(flags)
	defer func() { _ = logger.Sync() }()

	cfg := loadAndValidateConfig(flags, logger)

	m := metrics.New("folioclient")
	client, err := api.NewClient(cfg, logger, m)
	if err != nil {
		logger.Error("failed to create client", observability.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startMetricsServerIfEnabled(cfg, m, logger)
	watcher := startConfigWatcher(flags.configPath, client, logger)
	if watcher != nil {
		defer func() { _ = watcher.Stop() }()
	}

	if err := runCommand(ctx, client, cfg, logger, args); err != nil {
		logger.Error("command failed",
			observability.String("command", args[0]),
			observability.Error(err),
		)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns the remaining arguments.
func parseFlags() (cliFlags, []string) {
	configPath := flag.String("config", getEnvOrDefault("FOLIOCTL_CONFIG_PATH", "configs/folioclient.yaml"),
		"Path to configuration file")
	serverURL := flag.String("server", getEnvOrDefault("FOLIOCTL_SERVER_URL", ""),
		"Backend URL (overrides configuration)")
	logLevel := flag.String("log-level", getEnvOrDefault("FOLIOCTL_LOG_LEVEL", "info"),
		"Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", getEnvOrDefault("FOLIOCTL_LOG_FORMAT", "console"),
		"Log format (json, console)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Usage = printUsage
	flag.Parse()

	return cliFlags{
		configPath:  *configPath,
		serverURL:   *serverURL,
		logLevel:    *logLevel,
		logFormat:   *logFormat,
		showVersion: *showVersion,
	}, flag.Args()
}

// printVersion prints version information and exits.
func printVersion() {
	fmt.Printf("folioctl version %s\n", version)
	fmt.Printf("  Build time: %s\n", buildTime)
	fmt.Printf("  Git commit: %s\n", gitCommit)
}

// printUsage prints command usage.
func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: folioctl [flags] <command> [args]

Commands:
  ping                         Check that the backend is up
  info                         Show backend version and data directory
  login <user> <password>      Log in (pass sync approval as third argument)
  logout <user>                Log out
  settings                     Show user settings
  accounts <chain>             List tracked accounts for a chain
  balances                     Fetch the balance snapshot (async, polled)
  exchanges                    List configured exchanges
  tags                         List account tags
  netvalue                     Show the net worth time series
  watch                        Stream backend notifications until interrupted

Flags:
`)
	flag.PrintDefaults()
}

// initLogger initializes the logger.
func initLogger(flags cliFlags) observability.Logger {
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  flags.logLevel,
		Format: flags.logFormat,
		Output: "stderr",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	observability.SetGlobalLogger(logger)
	return logger
}

// loadAndValidateConfig loads and validates the configuration. A missing
// config file falls back to defaults so folioctl works out of the box
// against a local backend.
func loadAndValidateConfig(flags cliFlags, logger observability.Logger) *config.ClientConfig {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Error("failed to load configuration", observability.Error(err))
			os.Exit(1)
		}
		cfg = config.DefaultConfig()
	}

	if flags.serverURL != "" {
		cfg.Server.URL = flags.serverURL
	}

	if err := config.ValidateConfig(cfg); err != nil {
		logger.Error("invalid configuration", observability.Error(err))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		observability.String("server_url", cfg.Server.URL),
		observability.Duration("timeout", cfg.Server.Timeout.Duration()),
	)
	return cfg
}

// startMetricsServerIfEnabled starts the metrics server if enabled.
func startMetricsServerIfEnabled(cfg *config.ClientConfig, m *metrics.Metrics, logger observability.Logger) {
	if !cfg.Metrics.Enabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              cfg.Metrics.Listen,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	logger.Info("starting metrics server",
		observability.String("address", cfg.Metrics.Listen),
	)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", observability.Error(err))
		}
	}()
}

// startConfigWatcher starts the configuration watcher. Server URL changes
// swap the client session live.
func startConfigWatcher(configPath string, client *api.Client, logger observability.Logger) *config.Watcher {
	watcher, err := config.NewWatcher(configPath, func(newCfg *config.ClientConfig) {
		if newCfg.Server.URL == client.ServerURL() {
			return
		}
		logger.Info("configuration changed, switching backend",
			observability.String("server_url", newCfg.Server.URL),
		)
		if switchErr := client.SetServerURL(newCfg.Server.URL); switchErr != nil {
			logger.Error("failed to switch backend", observability.Error(switchErr))
		}
	}, config.WithLogger(logger))

	if err != nil {
		logger.Warn("failed to create config watcher", observability.Error(err))
		return nil
	}

	if err := watcher.Start(context.Background()); err != nil {
		logger.Warn("failed to start config watcher", observability.Error(err))
		return nil
	}

	return watcher
}

// runCommand dispatches one subcommand.
func runCommand(ctx context.Context, client *api.Client, cfg *config.ClientConfig, logger observability.Logger, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "ping":
		if err := client.Ping(ctx); err != nil {
			return err
		}
		fmt.Println("backend is up")
		return nil

	case "info":
		info, err := client.Info(ctx)
		if err != nil {
			return err
		}
		return printJSON(info)

	case "login":
		if len(rest) < 2 {
			return fmt.Errorf("usage: login <user> <password> [sync-approval]")
		}
		return runLogin(ctx, client, rest)

	case "logout":
		if len(rest) < 1 {
			return fmt.Errorf("usage: logout <user>")
		}
		ok, err := client.Logout(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("logged out: %v\n", ok)
		return nil

	case "settings":
		settings, err := client.Settings(ctx)
		if err != nil {
			return err
		}
		return printJSON(settings)

	case "accounts":
		if len(rest) < 1 {
			return fmt.Errorf("usage: accounts <chain>")
		}
		accounts, err := client.BlockchainAccounts(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(accounts)

	case "balances":
		return runBalances(ctx, client)

	case "exchanges":
		exchanges, err := client.Exchanges(ctx)
		if err != nil {
			return err
		}
		return printJSON(exchanges)

	case "tags":
		tags, err := client.Tags(ctx)
		if err != nil {
			return err
		}
		return printJSON(tags)

	case "netvalue":
		netValue, err := client.NetValue(ctx)
		if err != nil {
			return err
		}
		return printJSON(netValue)

	case "watch":
		return runWatch(ctx, client, cfg, logger)

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// runLogin performs a login, reporting sync conflicts instead of failing.
func runLogin(ctx context.Context, client *api.Client, args []string) error {
	opts := api.LoginOptions{}
	if len(args) > 2 {
		opts.SyncApproval = args[2]
	}

	result, err := client.Login(ctx, args[0], args[1], opts)
	if err != nil {
		return err
	}

	if result.Conflict != nil {
		fmt.Println("database sync conflict; re-run login with sync approval (yes/no):")
		return printJSON(result.Conflict)
	}
	fmt.Printf("logged in as %s\n", args[0])
	return printJSON(result.Account.Settings)
}

// runBalances submits the balance query asynchronously and polls it.
func runBalances(ctx context.Context, client *api.Client) error {
	pending, err := client.BalancesAsync(ctx, false)
	if err != nil {
		return err
	}

	snapshot, err := client.AwaitBalances(ctx, pending)
	if err != nil {
		return err
	}
	return printJSON(snapshot)
}

// runWatch streams notifications until the context is cancelled.
func runWatch(ctx context.Context, client *api.Client, cfg *config.ClientConfig, logger observability.Logger) error {
	sub, err := notify.NewSubscriber(client.ServerURL(), notify.Options{
		ReconnectInitial: cfg.Notifications.ReconnectInitial.Duration(),
		ReconnectMax:     cfg.Notifications.ReconnectMax.Duration(),
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	go sub.Run(ctx)

	for msg := range sub.Messages() {
		printNotification(msg)
	}
	return nil
}

// printNotification renders one notification for the terminal.
func printNotification(msg notify.Message) {
	switch msg.Type {
	case notify.TypeBalanceSnapshotError:
		var payload notify.BalanceSnapshotError
		if err := json.Unmarshal(msg.Data, &payload); err == nil {
			fmt.Printf("[%s] %s: %s\n", msg.Type, payload.Location, payload.Error)
			return
		}
	case notify.TypePremiumStatusUpdate:
		var payload notify.PremiumStatusUpdate
		if err := json.Unmarshal(msg.Data, &payload); err == nil {
			fmt.Printf("[%s] active=%v\n", msg.Type, payload.IsPremiumActive)
			return
		}
	case notify.TypeDatabaseUploadResult:
		var payload notify.DatabaseUploadResult
		if err := json.Unmarshal(msg.Data, &payload); err == nil {
			fmt.Printf("[%s] uploaded=%v %s\n", msg.Type, payload.Uploaded, payload.Message)
			return
		}
	}
	fmt.Printf("[%s] %s\n", msg.Type, strings.TrimSpace(string(msg.Data)))
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
