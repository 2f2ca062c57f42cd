package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/pactify-backend/internal/app"
)

var rootCmd = &cobra.Command{
	Use:           "pactify",
	Short:         "Pactify contract management backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE:  runMigrate,
}

var seedTemplatesCmd = &cobra.Command{
	Use:   "seed-templates",
	Short: "Upsert the contract template catalog and exit",
	RunE:  runSeedTemplates,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedTemplatesCmd)
	// Running the binary bare keeps the container entrypoint unchanged.
	rootCmd.RunE = runServe
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	log, err := app.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, log)
	if err != nil {
		log.Error("Failed to initialize app", "error", err)
		return err
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Error("Server exited", "error", err)
		return err
	}
	log.Info("Server stopped")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log, err := app.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, err := app.OpenDB(log, app.LoadConfig(log))
	if err != nil {
		return err
	}
	defer svc.Close()
	log.Info("Schema migrated")
	return nil
}

func runSeedTemplates(cmd *cobra.Command, args []string) error {
	log, err := app.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, err := app.OpenDB(log, app.LoadConfig(log))
	if err != nil {
		return err
	}
	defer svc.Close()

	n, err := app.SeedTemplates(contextOf(cmd), log, svc.DB())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d contract templates\n", n)
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
