package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitdam/gravitdam/internal/calc"
)

// calculateFlags maps command-line flags to form fields.
var calculateFlags = []struct {
	flag  string
	field string
}{
	{"unit-weight", calc.FieldUnitWeight},
	{"dam-height", calc.FieldDamHeight},
	{"water-level", calc.FieldWaterLevel},
	{"crest-width", calc.FieldCrestWidth},
	{"upstream-slope", calc.FieldUpstreamSlope},
	{"downstream-slope", calc.FieldDownstreamSlope},
	{"question", calc.FieldQuestion},
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Run a dam stability calculation without the TUI",
	Example: `  gravitdam calculate --unit-weight 2400 --dam-height 50 --water-level 45 \
    --crest-width 5 --upstream-slope 0.5 --downstream-slope 1.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := formFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := form.Validate(); err != nil {
			return err
		}

		e, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		stream := e.cfg.Calc.Stream
		out := cmd.OutOrStdout()

		var onChunk func(string)
		if stream {
			printed := 0
			onChunk = func(text string) {
				if len(text) > printed {
					fmt.Fprint(out, text[printed:])
					printed = len(text)
				}
			}
		}

		svc := e.calcService(p, stream)
		answer, err := svc.Run(cmd.Context(), form, onChunk)
		if err != nil {
			return fmt.Errorf("calculate: %w", err)
		}

		if stream {
			fmt.Fprintln(out)
			fmt.Fprintln(out)
		}
		printSections(out, calc.ParseSections(answer))
		svc.Record(cmd.Context(), form, answer)
		return nil
	},
}

func formFromFlags(cmd *cobra.Command) (calc.Form, error) {
	var f calc.Form
	for _, cf := range calculateFlags {
		v, err := cmd.Flags().GetString(cf.flag)
		if err != nil {
			return f, err
		}
		f = f.UpdateField(cf.field, strings.TrimSpace(v))
	}
	return f, nil
}

func printSections(w io.Writer, sections []calc.Section) {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Title)
		fmt.Fprintln(w, strings.Repeat("─", len([]rune(s.Title))))
		for _, d := range s.Details {
			fmt.Fprintf(w, "  • %s\n", d)
		}
	}
}

func init() {
	f := calculateCmd.Flags()
	for _, spec := range calc.Fields {
		name := flagName(spec.Name)
		usage := spec.Label
		if spec.Unit != "" {
			usage += " (" + spec.Unit + ")"
		}
		f.String(name, "", usage)
	}
	f.String("question", "", "Additional specifications or questions")
	f.Bool("stream", false, "Stream the answer while it is generated")
	f.String("persist", "", "Persistence gateway URL (default: local database)")
}

// flagName turns a form field name such as "unitWeight" into "unit-weight".
func flagName(field string) string {
	var b strings.Builder
	for _, r := range field {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
