package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carbex/internal/domain"
	"carbex/internal/port"
	"carbex/internal/repository/postgres"
	"carbex/internal/taxonomy"
)

func newSeedCmd() *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	var file string
	categories := &cobra.Command{
		Use:   "categories",
		Short: "Upsert the emission category catalog",
		Long: `Upsert the emission category catalog keyed by code.

Without --file the built-in catalog is used. Existing categories keep their
IDs; name, scope and GHG category are refreshed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := loadCategories(file)
			if err != nil {
				return err
			}
			cfg, lg, err := loadEnv()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			db, err := postgres.NewDB(&cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := seedCategories(cmd.Context(), postgres.NewCategoryRepo(db), cats)
			if err != nil {
				return err
			}
			lg.Info("categories seeded", zap.Int("count", n))
			return printSeeded(cmd.OutOrStdout(), n)
		},
	}
	categories.Flags().StringVarP(&file, "file", "f", "", "YAML catalog to load instead of the built-in one")

	seed.AddCommand(categories)
	return seed
}

func loadCategories(file string) ([]domain.Category, error) {
	if file == "" {
		return taxonomy.DefaultCategories()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return taxonomy.ParseCategories(data)
}

func seedCategories(ctx context.Context, repo port.CategoryRepository, cats []domain.Category) (int, error) {
	for i := range cats {
		if err := repo.Upsert(ctx, &cats[i]); err != nil {
			return i, fmt.Errorf("seed: category %s: %w", cats[i].Code, err)
		}
	}
	return len(cats), nil
}

func printSeeded(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%d categories upserted\n", n)
	return err
}
