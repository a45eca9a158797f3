// Package cli implements catalogctl, the maintenance tool for the remote exercise catalog.
package cli

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"alcyxob/fitness-catalog/internal/config"
	"alcyxob/fitness-catalog/internal/repository"
	"alcyxob/fitness-catalog/internal/repository/mongo"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool

	// OpenRows connects to the row store. Tests replace it with an in-memory store.
	OpenRows func(ctx context.Context, cfg config.Config) (repository.ExerciseRowRepository, func(), error)
}

// NewRootCommand creates the catalogctl root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{OpenRows: openMongoRows})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Maintain the remote exercise catalog",
		Long:  "Seed, deduplicate and export the exercise catalog kept in the remote store.",
		// main prints the error once
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", ".", "directory containing config.yaml")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newDedupCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	return cmd
}

// gateway loads config, opens the store and returns a gateway over it with its closer.
func (o *RootOptions) gateway(ctx context.Context, stderr io.Writer) (*catalog.Gateway, func(), error) {
	cfg, err := config.LoadConfig(o.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	logger := config.NewLogger(cfg.Log, stderr)

	rows, closeRows, err := o.OpenRows(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewGateway(rows, catalog.GatewayConfig{PageSize: cfg.Catalog.PageSize, Logger: logger}), closeRows, nil
}

func openMongoRows(ctx context.Context, cfg config.Config) (repository.ExerciseRowRepository, func(), error) {
	client, err := mongo.ConnectDB(cfg.Database.URI, cfg.Catalog.LoadTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("connect MongoDB: %w", err)
	}
	closeFn := func() { _ = mongo.DisconnectDB(client) }
	if err := mongo.Ping(client); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("MongoDB not reachable: %w", err)
	}
	db := client.Database(cfg.Database.Name)
	mongo.EnsureIndexes(ctx, db)
	return mongo.NewMongoExerciseRowRepository(db), closeFn, nil
}
