package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sortCall   = regexp.MustCompile(`\.sort\(|\bsorted\(|\bsort\.\w+\(|\bslices\.Sort\w*\(`)
	searchCall = regexp.MustCompile(`\.(?:indexOf|lastIndexOf|includes|find|findIndex|index)\(|\bslices\.(?:Contains|Index)\w*\(`)

	// arr[i] > arr[j]: comparing two elements of the same kind of indexed
	// collection is what hand-written sorts do.
	elementCompare = regexp.MustCompile(`\w+\[[^\]]+\]\s*[<>]=?\s*\w+\[`)

	funcDef = []*regexp.Regexp{
		regexp.MustCompile(`\bfunction\s*\*?\s*(\w+)\s*\(`),
		regexp.MustCompile(`\bdef\s+(\w+)\s*\(`),
		regexp.MustCompile(`\bfunc\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`),
		regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|\w+\s*=>)`),
	}
	halving = regexp.MustCompile(`/\s*2\b|>>\s*1\b|\bmid\b|\bmiddle\b`)
)

var nestingWords = map[int]string{2: "quadratic", 3: "cubic"}

// LoopNestingPass reports each loop nest with its depth.
func LoopNestingPass(src *Source) []Finding {
	var findings []Finding
	for _, nest := range src.Nests {
		f := Finding{
			Pass:    "loop_nesting",
			Line:    nest.Start,
			EndLine: nest.End,
			Order:   Order{Degree: nest.Depth},
		}
		if nest.Depth < 2 {
			f.Message = fmt.Sprintf("Loop on %s runs in linear time", lineRange(nest))
			findings = append(findings, f)
			continue
		}

		word, ok := nestingWords[nest.Depth]
		if !ok {
			word = "polynomial"
		}
		f.Message = fmt.Sprintf("Nested loops on %s (depth %d) give %s performance", lineRange(nest), nest.Depth, word)
		if src.any(nest, elementCompare) {
			f.Suggestion = "Use an O(n log n) sort such as merge sort or quick sort, or the language's built-in sort"
		} else {
			f.Suggestion = "Index the inner collection in a map or set so each inner lookup is constant time"
		}
		findings = append(findings, f)
	}
	return findings
}

// SortInLoopPass flags sort calls, which cost n log n each time they run.
func SortInLoopPass(src *Source) []Finding {
	var findings []Finding
	for i, c := range src.Code {
		if !sortCall.MatchString(c) {
			continue
		}
		depth := src.Depth[i]
		f := Finding{
			Pass:  "sort_in_loop",
			Line:  i + 1,
			Order: Order{Degree: depth + 1, Log: true},
		}
		if depth == 0 {
			f.Message = fmt.Sprintf("Sort on line %d costs O(n log n)", i+1)
		} else {
			f.Message = fmt.Sprintf("Sort inside a loop on line %d re-sorts on every iteration", i+1)
			f.Suggestion = "Sort once before the loop, or keep the data in a sorted structure"
		}
		findings = append(findings, f)
	}
	return findings
}

// LinearSearchPass flags collection scans made inside loops.
func LinearSearchPass(src *Source) []Finding {
	var findings []Finding
	for i, c := range src.Code {
		depth := src.Depth[i]
		if depth == 0 || !searchCall.MatchString(c) {
			continue
		}
		findings = append(findings, Finding{
			Pass:       "linear_search",
			Line:       i + 1,
			Message:    fmt.Sprintf("Linear search inside a loop on line %d scans the collection on every iteration", i+1),
			Suggestion: "Build a Set or map before the loop for constant-time lookups",
			Order:      Order{Degree: depth + 1},
		})
	}
	return findings
}

type function struct {
	name  string
	line  int // index into Code
	end   int // exclusive
	after int // byte offset in Code[line] past the definition
}

// RecursionPass finds functions that call themselves.
func RecursionPass(src *Source) []Finding {
	var findings []Finding
	for _, fn := range functions(src) {
		call := regexp.MustCompile(`\b` + regexp.QuoteMeta(fn.name) + `\s*\(`)

		calls := len(call.FindAllStringIndex(src.Code[fn.line][fn.after:], -1))
		halves := halving.MatchString(src.Code[fn.line])
		for i := fn.line + 1; i < fn.end; i++ {
			calls += len(call.FindAllStringIndex(src.Code[i], -1))
			halves = halves || halving.MatchString(src.Code[i])
		}
		if calls == 0 {
			continue
		}

		f := Finding{Pass: "recursion", Line: fn.line + 1, EndLine: fn.end}
		switch {
		case calls >= 2 && halves:
			f.Message = fmt.Sprintf("%s splits its input and recurses on each half", fn.name)
			f.Order = Order{Degree: 1, Log: true}
		case calls >= 2:
			f.Message = fmt.Sprintf("%s calls itself %d times per invocation, so work doubles with each level", fn.name, calls)
			f.Suggestion = "Memoize results or rewrite iteratively with dynamic programming"
			f.Order = Order{Exponential: true}
		case halves:
			f.Message = fmt.Sprintf("%s recurses on half of its input", fn.name)
			f.Order = Order{Log: true}
		default:
			f.Message = fmt.Sprintf("%s recurses once per element", fn.name)
			f.Order = Order{Degree: 1}
		}
		findings = append(findings, f)
	}
	return findings
}

// functions lists definitions in order; each extends to the next one.
func functions(src *Source) []function {
	var fns []function
	for i, c := range src.Code {
		for _, re := range funcDef {
			m := re.FindStringSubmatchIndex(c)
			if m == nil {
				continue
			}
			fns = append(fns, function{name: c[m[2]:m[3]], line: i, after: m[1]})
			break
		}
	}
	for i := range fns {
		if i+1 < len(fns) {
			fns[i].end = fns[i+1].line
		} else {
			fns[i].end = len(src.Code)
		}
	}
	return fns
}

func (s *Source) any(n Nest, re *regexp.Regexp) bool {
	for i := n.Start - 1; i < n.End && i < len(s.Code); i++ {
		if re.MatchString(s.Code[i]) {
			return true
		}
	}
	return false
}

func lineRange(n Nest) string {
	if n.End > n.Start {
		return fmt.Sprintf("lines %d-%d", n.Start, n.End)
	}
	return fmt.Sprintf("line %d", n.Start)
}

// Lines renders findings one per line, for plain-text output.
func Lines(findings []Finding) string {
	var b strings.Builder
	for _, f := range findings {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return b.String()
}
