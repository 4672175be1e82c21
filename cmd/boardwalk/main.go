package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/boardwalk-app/boardwalk/internal/config"
	"github.com/boardwalk-app/boardwalk/internal/database"
	"github.com/boardwalk-app/boardwalk/internal/logging"
	"github.com/boardwalk-app/boardwalk/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	port        int
	bind        string
	allowSubnet string
	dbPath      string
	logFile     string
	maxPageSize int
	verbosity   int

	// Timeout flags (advanced)
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boardwalk",
		Short: "Boardwalk - Discussion board API server",
		Long:  `Boardwalk is a JSON API server for posts, comments, and user accounts backed by a relational store.`,
		RunE:  run,
	}

	// Flags
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (required, or set PORT env var)")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	rootCmd.Flags().StringVarP(&allowSubnet, "allow-subnet", "a", "", "CIDR subnet allowed to connect (e.g., 192.168.1.0/24)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "./boardwalk.db", "SQLite database path (or set DB_PATH env var)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Rotating log file path (console only when empty)")
	rootCmd.Flags().IntVar(&maxPageSize, "max-page-size", 0, "Maximum accepted pageSize for list endpoints (0 = unlimited)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	// Advanced timeout flags
	rootCmd.Flags().DurationVar(&requestTimeout, "request-timeout", 30*time.Second, "Deadline for a single API request, including its store calls")
	rootCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "How long in-flight requests get to finish on shutdown")

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("boardwalk %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Check for PORT env var if flag not set
	if port == 0 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			if _, err := fmt.Sscanf(envPort, "%d", &port); err != nil {
				return fmt.Errorf("invalid PORT environment variable %q: %w", envPort, err)
			}
		}
	}

	// Check for DB_PATH env var if using default
	if dbPath == "./boardwalk.db" {
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			dbPath = envDB
		}
	}

	// Validate port
	if port == 0 {
		return fmt.Errorf("--port flag or PORT environment variable is required")
	}

	// Validate bind address if provided
	if bind != "" {
		if ip := net.ParseIP(bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", bind)
		}
	}

	// Validate and parse allow-subnet if provided
	var allowedNet *net.IPNet
	if allowSubnet != "" {
		_, parsedNet, err := net.ParseCIDR(allowSubnet)
		if err != nil {
			return fmt.Errorf("invalid allow-subnet CIDR: %s", allowSubnet)
		}
		allowedNet = parsedNet
	}

	// Setup logging
	logging.Apply(verbosity, logFile)

	// Configure global timeouts
	config.SetGlobalTimeouts(&config.TimeoutConfig{
		Request:  requestTimeout,
		Shutdown: shutdownTimeout,
	})

	// Warn if binding to all interfaces without an allow list
	if (bind == "" || bind == "0.0.0.0" || bind == "::") && allowSubnet == "" {
		log.Warn().Msg("Server is accessible from all interfaces without subnet restrictions. Consider using --bind or --allow-subnet for security.")
	}

	log.Info().
		Str("version", version).
		Int("port", port).
		Str("bind", bind).
		Str("allow_subnet", allowSubnet).
		Str("database", dbPath).
		Msg("Starting Boardwalk")

	// Initialize database
	db, err := database.New(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Create web server with bind address and allowed subnet
	server := web.NewServer(db, port, bind, allowedNet, maxPageSize)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Start server
	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Boardwalk stopped")
	return nil
}
