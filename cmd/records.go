package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect persisted calculations",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent calculations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		full, _ := cmd.Flags().GetBool("full")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		records, err := e.store.CalculationRepo().List(ctx, limit)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		total, err := e.store.CalculationRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("count records: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No calculations recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-32s  %s\n", "ID", "Created", "Question", "Answer")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range records {
			created := r.CreatedAt
			if t := r.CreatedTime(); !t.IsZero() {
				created = t.Local().Format("2006-01-02 15:04:05")
			}
			answer := firstLine(r.Answer)
			if full {
				answer = "\n" + r.Answer + "\n"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-32s  %s\n",
				r.ID, created, truncate(r.Question, 32), truncate(answer, 80))
		}
		fmt.Fprintf(out, "\nShowing %d of %d calculations.\n", len(records), total)
		return nil
	},
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	recordsListCmd.Flags().IntP("limit", "n", 20, "Number of records to show")
	recordsListCmd.Flags().Bool("full", false, "Print the full answer of every record")

	recordsCmd.AddCommand(recordsListCmd)
}
