package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"riskcompass/internal/app"
	"riskcompass/internal/config"
	"riskcompass/internal/predictor"
	"riskcompass/internal/risk"
	"riskcompass/internal/service"
)

var (
	flagOutput       string
	flagEpochs       int
	flagLearningRate float64
	flagSeed         uint64
	flagLogEvery     int
)

var rootCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the risk model from stored questionnaires",
	Long: `Reads every stored questionnaire, labels it with the rule-based estimator,
trains the risk network and atomically replaces the model file.

A failed run never touches the existing model file.

Examples:
  train                       # train with configured settings
  train --epochs 50           # shorter run
  train --output /tmp/m.json  # write somewhere else
  train inspect               # show the current model file`,
	SilenceUsage: true,
	RunE:         runTrain,
}

var inspectCmd = &cobra.Command{
	Use:          "inspect",
	Short:        "Validate the model file and print its metadata",
	SilenceUsage: true,
	RunE:         runInspect,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "model file path (defaults to MODEL_DIR/MODEL_FILE)")
	rootCmd.Flags().IntVar(&flagEpochs, "epochs", 0, "override training epochs")
	rootCmd.Flags().Float64Var(&flagLearningRate, "learning-rate", 0, "override Adam learning rate")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "override shuffle and init seed")
	rootCmd.Flags().IntVar(&flagLogEvery, "log-every", 10, "log the loss every N epochs (0 disables)")

	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func statePath(cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Model.StatePath()
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.SetupLogger(cfg.Logging)

	trainCfg := predictor.TrainConfig{
		Epochs:       cfg.Training.Epochs,
		LearningRate: cfg.Training.LearningRate,
		HiddenSizes:  cfg.Training.HiddenSizes,
		Seed:         cfg.Training.Seed,
	}
	if cmd.Flags().Changed("epochs") {
		trainCfg.Epochs = flagEpochs
	}
	if cmd.Flags().Changed("learning-rate") {
		trainCfg.LearningRate = flagLearningRate
	}
	if cmd.Flags().Changed("seed") {
		trainCfg.Seed = flagSeed
	}
	if flagLogEvery > 0 {
		trainCfg.Progress = func(epoch int, loss float64) {
			if epoch%flagLogEvery == 0 || epoch == trainCfg.Epochs {
				logger.Info("epoch", "epoch", epoch, "loss", loss)
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx, cfg, app.Options{}, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	svc := service.NewTrainingService(risk.DefaultSchema(), a.Questionnaires, statePath(cfg), trainCfg, logger)
	res, err := svc.Run(ctx)
	if err != nil {
		logger.Error("training failed", "error", err)
		return err
	}

	return printJSON(cmd, res)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	p := predictor.New(risk.DefaultSchema())
	path := statePath(cfg)
	if err := p.LoadFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return printJSON(cmd, p.Status())
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
