package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"exerciseTracker/internal/config"
	"exerciseTracker/internal/db"
	grpcserver "exerciseTracker/internal/grpc"
	"exerciseTracker/internal/httpapi"
	"exerciseTracker/internal/logging"
	"exerciseTracker/internal/tracker"
	"exerciseTracker/repository"
)

var (
	version = "dev"
	commit  = "none"
)

// CLI flags; when set they override the environment.
var (
	envFile   string
	dbDriver  string
	dbPath    string
	port      string
	grpcAddr  string
	logFile   string
	verbosity int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "exercise-tracker",
		Short:        "Exercise tracker REST API",
		Long:         `Exercise tracker stores users and their logged exercises and serves them over a JSON API.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")
	rootCmd.Flags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite3 or pgx (or set DB_DRIVER)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite path or Postgres DSN (or set DB_PATH)")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "HTTP listen port or address (or set PORT / HTTP_ADDRESS)")
	rootCmd.Flags().StringVar(&grpcAddr, "grpc", "", "gRPC health listen address, empty disables (or set GRPC_ADDRESS)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also write logs to this rotating file (or set LOG_FILE)")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("exercise-tracker %s (commit: %s)\n", version, commit)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	closer := logging.Apply(logging.LevelFromVerbosity(verbosity, cfg.Log.Level), cfg.Log.File)
	defer closer.Close()

	log.Info().Str("version", version).Stringer("config", cfg).Msg("Starting exercise tracker")

	store, err := db.OpenConfig(cfg.Database)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	svc := tracker.New(repository.NewUserRepository(store), repository.NewExerciseRepository(store))

	httpAddr, stopHTTP, err := httpapi.Start(cfg, svc)
	if err != nil {
		return fmt.Errorf("start http: %w", err)
	}
	log.Info().Str("address", httpAddr).Msg("Your app is listening")

	healthAddr, stopGRPC, err := grpcserver.StartGRPC(cfg, grpcserver.NewHealth(store, cfg.GRPC.ProbeInterval))
	if err != nil {
		_ = stopHTTP(context.Background())
		return fmt.Errorf("start grpc: %w", err)
	}
	if healthAddr != "" {
		log.Info().Str("address", healthAddr).Msg("gRPC health service listening")
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stopHTTP(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown error")
	}
	if err := stopGRPC(ctx); err != nil {
		log.Error().Err(err).Msg("gRPC shutdown error")
	}
	return nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("db-driver") {
		cfg.Database.Driver = dbDriver
	}
	if flags.Changed("db") {
		cfg.Database.Path = dbPath
	}
	if flags.Changed("port") {
		cfg.HTTP.Address = listenAddress(port)
	}
	if flags.Changed("grpc") {
		cfg.GRPC.Address = grpcAddr
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
}

// listenAddress accepts either a bare port ("3000") or a full address.
func listenAddress(p string) string {
	for _, c := range p {
		if c < '0' || c > '9' {
			return p
		}
	}
	return ":" + p
}
