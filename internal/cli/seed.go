package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/domain"
	"timed-quiz-service/internal/infra/postgres"
)

// NewSeedCmd loads a JSON question bank into Postgres, replacing the stored one.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored question bank with a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "question bank JSON (defaults to quiz.bank_file)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if file == "" {
		file = cfg.Quiz.BankFile
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	bank, err := domain.ParseBank(data)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	db := postgres.OpenBun(cfg.Postgres.URL)
	defer db.Close()

	if err := postgres.ReplaceBank(ctx, db, bank); err != nil {
		return err
	}
	if err := clearBankCache(ctx, cfg); err != nil {
		log.Printf("clear cached question bank: %v", err)
	}
	log.Printf("seeded %d questions from %s", len(bank), file)
	return nil
}
