package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/config"
	"timed-quiz-service/internal/infra/remote"
	"timed-quiz-service/internal/tui"
)

// NewTakeCmd runs one quiz in the terminal against a running server.
func NewTakeCmd(configPath *string) *cobra.Command {
	var (
		server  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "take",
		Short: "Take the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTake(cmd.Context(), *configPath, server, noColor)
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "quiz server base URL")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}

func runTake(ctx context.Context, configPath, server string, noColor bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	base := strings.TrimRight(server, "/")
	client := &http.Client{Timeout: 10 * time.Second}

	ctrl := tui.NewController()
	session := app.NewSession(
		uuid.NewString(),
		sessionConfig(cfg),
		remote.NewBankLoader(client, base+"/static/questions.json"),
		ctrl,
		remote.NewReporter(client, base+"/save_score"),
	)

	runErr := tui.Run(ctx, session, ctrl, tui.Options{NoColor: noColor})
	session.Close()
	if session.State() != app.SessionSubmitted {
		return runErr
	}

	select {
	case err := <-session.Reported():
		if err != nil {
			return fmt.Errorf("score was not saved: %w", err)
		}
		log.Printf("saved %s", session.Result())
	case <-time.After(30 * time.Second):
		log.Printf("gave up waiting for the score report")
	}
	return runErr
}
