package calc

import (
	"fmt"
	"strings"
)

// SystemPrompt is the calculator persona sent with every calculation.
const SystemPrompt = "You are an expert dam engineering calculator. For each calculation step, provide the formula, numerical substitution, and result in a clear format. Break down complex calculations into smaller steps."

const stepsInstruction = `Provide step-by-step calculations for:
1. Dam self-weight and center of gravity
2. Hydrostatic pressure forces
3. Uplift pressure
4. Stability analysis
5. Safety factors (sliding and overturning)
6. Design recommendations based on results

For each step show:
- Formula used
- Numerical substitution
- Final result with units`

// BuildUserMessage interpolates the form into the calculation request.
func BuildUserMessage(f Form) string {
	var b strings.Builder

	b.WriteString("Calculate the stability of a gravity dam with these parameters:\n")
	for _, spec := range Fields {
		v := f.Value(spec.Name)
		if spec.Unit != "" {
			fmt.Fprintf(&b, "- %s: %s %s\n", spec.Label, v, spec.Unit)
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", spec.Label, v)
		}
	}
	if f.Question != "" {
		fmt.Fprintf(&b, "\nAdditional specifications: %s\n", f.Question)
	}

	b.WriteString("\n")
	b.WriteString(stepsInstruction)
	return b.String()
}
