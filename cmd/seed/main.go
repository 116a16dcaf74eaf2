package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"riskcompass/internal/app"
	"riskcompass/internal/config"
	"riskcompass/internal/risk"
	"riskcompass/internal/service"
)

var (
	flagCount  int
	flagSeed   uint64
	flagUserID string
)

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Insert synthetic questionnaires so the model can be trained",
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().IntVarP(&flagCount, "count", "n", 50, "number of questionnaires to insert")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 1, "random seed")
	rootCmd.Flags().StringVar(&flagUserID, "user", "seed", "owner user id of the inserted questionnaires")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	if flagCount < 1 {
		return fmt.Errorf("count must be positive, got %d", flagCount)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.SetupLogger(cfg.Logging)
	ctx := cmd.Context()

	a, err := app.Open(ctx, cfg, app.Options{}, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if err := a.EnsureIndexes(ctx); err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(flagSeed, flagSeed+1))
	for _, q := range service.SyntheticQuestionnaires(risk.DefaultSchema(), flagUserID, flagCount, rng) {
		if _, err := a.Questionnaires.Create(ctx, q); err != nil {
			return fmt.Errorf("insert questionnaire: %w", err)
		}
	}

	logger.Info("seeded questionnaires", "count", flagCount, "user_id", flagUserID, "collection", cfg.Mongo.Collection)
	return nil
}
