package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gravitdam/gravitdam/internal/app"
)

// runApp wires the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.provider(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set GRAVIT_LLM_PROVIDER and a matching API key, or use --provider mock.")
		return err
	}

	return app.Run(app.Options{
		Calculator:     e.calcService(p, e.cfg.Calc.Stream),
		Questions:      e.quizGenerator(p),
		Stream:         e.cfg.Calc.Stream,
		RefetchOnEnter: e.cfg.Quiz.RefetchOnEnter,
		Logger:         e.logger,
	})
}
