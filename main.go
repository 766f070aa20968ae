package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apiprobe/backend"
	"apiprobe/config"
	"apiprobe/handler"
	"apiprobe/logging"
	"apiprobe/probe"
	"apiprobe/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "apiprobe",
	Short: "Smoke-test the user and structure API",
	Long: `apiprobe registers a user, logs in, reads the profile back, saves a
molecule structure and lists the user's structures, printing every reply.

The sequence stops at the first failure. Unexpected status codes are printed,
not treated as failures.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if config.CliArgs.Debug {
			logging.InitLogger(logrus.DebugLevel)
		} else {
			logging.InitLogger(logrus.InfoLevel)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.CliArgs.Version {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		}
		cfg, err := config.LoadConfig(config.CliArgs.ConfigFile)
		if err != nil {
			return err
		}
		runProbe(cmd.Context(), cfg, cmd.OutOrStdout())
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local implementation of the probed API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(config.CliArgs.ConfigFile)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(serveCmd)
}

// runProbe always completes; failures are part of the printed report.
func runProbe(ctx context.Context, cfg *config.Config, out io.Writer) probe.Result {
	log := logging.GetLogger()
	log.Debugf("Probing %s", cfg.BaseURL)

	nodes, bonds := probe.WaterMolecule()
	fixture := probe.Fixture{
		FullName:      cfg.Fixture.FullName,
		Email:         cfg.Fixture.Email,
		Password:      cfg.Fixture.Password,
		StructureName: cfg.Fixture.StructureName,
		Nodes:         nodes,
		Bonds:         bonds,
	}
	client := backend.NewBackendClient(cfg.BaseURL, cfg.Timeout)
	return probe.NewRunner(client, out).Run(ctx, probe.Plan(fixture))
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.GetLogger()
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.OpenAndMigrate(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Define the server
	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler.NewHTTPHandler(storage.NewSQLiteRepository(db)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", cfg.ListenAddress)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Infoln("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.GetLogger().Errorf("%v", err)
		os.Exit(1)
	}
}
