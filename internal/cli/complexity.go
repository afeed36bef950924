package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aezell/docsync/internal/analysis"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var complexityCmd = &cobra.Command{
	Use:   "complexity [FILE|-]",
	Short: "Estimate the time complexity of a code snippet",
	Long: `Estimate the time complexity of a snippet from loop nesting, sorts and
linear searches inside loops, and self recursion. Reads stdin when FILE is
- or omitted.

Passes: loop_nesting, sort_in_loop, linear_search, recursion.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComplexity,
}

func init() {
	complexityCmd.Flags().StringSlice("skip", nil, "analysis passes to skip")
	complexityCmd.Flags().StringP("format", "f", "text", "output format: text, json")
}

func runComplexity(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	if path == "-" && stdinIsTerminal(cmd) {
		fmt.Fprintln(os.Stderr, "Reading snippet from stdin (end with Ctrl-D)...")
	}
	code, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	skip, _ := cmd.Flags().GetStringSlice("skip")
	est, err := analysis.Run(code, skip)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return estimateJSON(cmd.OutOrStdout(), est)
	case "text":
		return estimateText(cmd.OutOrStdout(), est)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

var ratingColors = map[analysis.Rating]*color.Color{
	analysis.RatingGood: color.New(color.FgGreen),
	analysis.RatingOK:   color.New(color.FgYellow),
	analysis.RatingBad:  color.New(color.FgRed, color.Bold),
}

func estimateText(w io.Writer, est *analysis.Estimate) error {
	fmt.Fprintf(w, "Complexity: %s (%s)\n", est.Complexity, ratingColors[est.Rating].Sprint(est.Rating))

	for _, section := range []struct {
		title string
		items []string
	}{
		{"Bottlenecks", est.Bottlenecks},
		{"Suggestions", est.Suggestions},
	} {
		fmt.Fprintf(w, "\n%s:\n", section.title)
		if len(section.items) == 0 {
			fmt.Fprintln(w, "  none")
			continue
		}
		for _, item := range section.items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}

	if len(est.Findings) > 0 {
		fmt.Fprintln(w, "\nFindings:")
		for _, f := range est.Findings {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	return nil
}

type jsonFinding struct {
	Pass    string `json:"pass"`
	Line    int    `json:"line"`
	EndLine int    `json:"end_line,omitempty"`
	Message string `json:"message"`
	Order   string `json:"order"`
}

type jsonEstimate struct {
	Complexity  string        `json:"complexity"`
	Rating      string        `json:"rating"`
	Bottlenecks []string      `json:"bottlenecks"`
	Suggestions []string      `json:"suggestions"`
	Findings    []jsonFinding `json:"findings"`
}

func estimateJSON(w io.Writer, est *analysis.Estimate) error {
	out := jsonEstimate{
		Complexity:  est.Complexity,
		Rating:      string(est.Rating),
		Bottlenecks: nonNil(est.Bottlenecks),
		Suggestions: nonNil(est.Suggestions),
		Findings:    []jsonFinding{},
	}
	for _, f := range est.Findings {
		out.Findings = append(out.Findings, jsonFinding{
			Pass:    f.Pass,
			Line:    f.Line,
			EndLine: f.EndLine,
			Message: f.Message,
			Order:   f.Order.String(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
