package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alignedempire/aligned/internal/config"
	"github.com/alignedempire/aligned/internal/content"
	"github.com/alignedempire/aligned/internal/service"
)

// loadCatalog loads the catalog from the source cfg selects.
func loadCatalog(ctx context.Context, c *config.Config, log *zap.Logger) (*content.Catalog, service.Source, error) {
	return service.NewCatalogService(c, log).Load(ctx)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Publish or inspect the site catalog",
}

var seedOut string

// catalogSeedCmd writes the active catalog into a SQLite file
var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the catalog to a SQLite database",
	Long: `Write the active catalog (from --catalog, --remote or the embedded
default) into the SQLite database given by --out. Existing rows are
replaced.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The seed target is not a source
		src := *cfg
		src.Content.DBPath = ""

		cat, source, err := loadCatalog(cmd.Context(), &src, logger)
		if err != nil {
			return err
		}

		n, err := service.Publish(cmd.Context(), seedOut, cat)
		if err != nil {
			return err
		}
		logger.Info("catalog seeded", zap.String("source", source.String()), zap.String("db", seedOut), zap.Int("posts", n))
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s from %s (%d posts)\n", seedOut, source, n)
		return nil
	},
}

// catalogDumpCmd prints the active catalog as YAML
var catalogDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the catalog as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := loadCatalog(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		data, err := cat.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	catalogSeedCmd.Flags().StringVar(&seedOut, "out", "", "SQLite database to write")
	_ = catalogSeedCmd.MarkFlagRequired("out")

	catalogCmd.AddCommand(catalogSeedCmd)
	catalogCmd.AddCommand(catalogDumpCmd)
}
