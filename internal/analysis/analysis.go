// Package analysis estimates the algorithmic complexity of a code snippet.
//
// The estimate is heuristic. The snippet is scanned once into a Source
// (loop nesting per line, loop nests with their line spans), then a fixed
// list of passes inspects the Source and emits Findings, each carrying the
// growth Order it implies. The overall estimate is the largest Order found.
package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aezell/docsync/internal/model"
)

// Finding is one observation about the snippet.
type Finding struct {
	Pass       string // which pass produced this
	Line       int    // first line, 1-based
	EndLine    int
	Message    string
	Suggestion string
	Order      Order
}

func (f Finding) String() string {
	loc := fmt.Sprintf("%d", f.Line)
	if f.EndLine > f.Line {
		loc = fmt.Sprintf("%d-%d", f.Line, f.EndLine)
	}
	return fmt.Sprintf("[%s] line %s: %s (%s)", f.Pass, loc, f.Message, f.Order)
}

// Bottleneck reports whether the finding alone makes the snippet rate badly.
func (f Finding) Bottleneck() bool {
	return f.Order.Rating() == RatingBad
}

// Pass inspects a parsed snippet.
type Pass func(src *Source) []Finding

// PassNames maps pass names (for --skip) to passes.
var PassNames = map[string]Pass{
	"loop_nesting":  LoopNestingPass,
	"sort_in_loop":  SortInLoopPass,
	"linear_search": LinearSearchPass,
	"recursion":     RecursionPass,
}

// passOrder keeps findings in a stable order.
var passOrder = []string{"loop_nesting", "sort_in_loop", "linear_search", "recursion"}

// Estimate is the result of a complexity analysis.
type Estimate struct {
	Order       Order
	Complexity  string // Order label, e.g. "O(n²)"
	Rating      Rating
	Bottlenecks []string
	Suggestions []string
	Findings    []Finding
}

// EstimateComplexity runs every pass over code.
func EstimateComplexity(code string) (*Estimate, error) {
	return Run(code, nil)
}

// Run runs all passes except the ones named in skip.
func Run(code string, skip []string) (*Estimate, error) {
	if strings.TrimSpace(code) == "" {
		return nil, model.NewValidationError("code", "enter a code snippet to analyze")
	}
	for _, s := range skip {
		if _, ok := PassNames[s]; !ok {
			return nil, fmt.Errorf("unknown pass %q", s)
		}
	}

	src := Parse(code)
	est := &Estimate{}
	for _, name := range passOrder {
		if slices.Contains(skip, name) {
			continue
		}
		est.Findings = append(est.Findings, PassNames[name](src)...)
	}

	for _, f := range est.Findings {
		if est.Order.Less(f.Order) {
			est.Order = f.Order
		}
		if f.Bottleneck() {
			est.Bottlenecks = append(est.Bottlenecks, f.Message)
		}
		if f.Suggestion != "" && !slices.Contains(est.Suggestions, f.Suggestion) {
			est.Suggestions = append(est.Suggestions, f.Suggestion)
		}
	}
	est.Complexity = est.Order.String()
	est.Rating = est.Order.Rating()
	return est, nil
}

// BubbleSortSample is the snippet the complexity panel starts with.
const BubbleSortSample = `function bubbleSort(arr) {
  for (let i = 0; i < arr.length; i++) {
    for (let j = 0; j < arr.length - i - 1; j++) {
      if (arr[j] > arr[j + 1]) {
        [arr[j], arr[j + 1]] = [arr[j + 1], arr[j]];
      }
    }
  }
  return arr;
}`
