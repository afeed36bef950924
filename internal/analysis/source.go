package analysis

import (
	"regexp"
	"strings"
)

// Source is a snippet scanned for loop structure.
type Source struct {
	Lines []string // as written
	Code  []string // strings and comments removed
	Depth []int    // loops enclosing each line, counting a loop header as inside itself
	Nests []Nest
}

// Nest is an outermost loop together with everything nested in it.
type Nest struct {
	Start, End int // 1-based, inclusive
	Depth      int // deepest loop nesting reached
}

var (
	stringLiteral = regexp.MustCompile("'(?:\\\\.|[^'\\\\])*'|\"(?:\\\\.|[^\"\\\\])*\"|`(?:\\\\.|[^`\\\\])*`")
	blockComment  = regexp.MustCompile(`/\*.*?\*/`)
	lineComment   = regexp.MustCompile(`//.*$`)
	hashComment   = regexp.MustCompile(`#.*$`)

	loopHeader = regexp.MustCompile(`(?:^|[^\w.])(?:for|while)\b|\bdo\s*\{|\.(?:forEach|map|filter|reduce|some|every|flatMap)\(`)
	doWhileEnd = regexp.MustCompile(`^\s*\}\s*while\b`)
	blockStart = regexp.MustCompile(`^(?:for|while|def|if|elif|else|class|with|try|except|finally)\b.*:$`)
)

// Parse scans code. Snippets whose blocks end in ":" and that never open a
// brace at end of line are treated as indentation-scoped.
func Parse(code string) *Source {
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	src := &Source{
		Lines: lines,
		Code:  make([]string, len(lines)),
		Depth: make([]int, len(lines)),
	}

	indented := isIndentScoped(lines)
	for i, l := range lines {
		c := stringLiteral.ReplaceAllString(l, `""`)
		if indented {
			c = hashComment.ReplaceAllString(c, "")
		} else {
			c = blockComment.ReplaceAllString(c, "")
			c = lineComment.ReplaceAllString(c, "")
		}
		src.Code[i] = c
	}

	if indented {
		src.scanIndented()
	} else {
		src.scanBraced()
	}
	return src
}

func isIndentScoped(lines []string) bool {
	colon := false
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if strings.HasSuffix(t, "{") {
			return false
		}
		if blockStart.MatchString(t) {
			colon = true
		}
	}
	return colon
}

func isLoop(code string) bool {
	return loopHeader.MatchString(code) && !doWhileEnd.MatchString(code)
}

type nester struct {
	src *Source
	cur *Nest
}

func (n *nester) open(line, depth int) {
	if n.cur == nil {
		n.cur = &Nest{Start: line, End: line}
	}
	n.cur.Depth = max(n.cur.Depth, depth)
}

func (n *nester) close(line int) {
	if n.cur == nil {
		return
	}
	n.cur.End = max(line, n.cur.Start)
	n.src.Nests = append(n.src.Nests, *n.cur)
	n.cur = nil
}

func (s *Source) scanBraced() {
	var stack []bool // true for a loop body
	loops := 0
	n := &nester{src: s}

	for i, c := range s.Code {
		line := i + 1
		loop := isLoop(c)
		s.Depth[i] = loops
		if loop {
			s.Depth[i]++
		}

		opened := false
		for _, r := range c {
			switch r {
			case '{':
				body := loop && !opened
				if body {
					opened = true
					loops++
					n.open(line, loops)
				}
				stack = append(stack, body)
			case '}':
				if len(stack) == 0 {
					continue
				}
				body := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if body {
					loops--
					if loops == 0 {
						n.close(line)
					}
				}
			}
		}

		if loop && !opened {
			n.open(line, loops+1)
			if loops == 0 {
				n.close(line)
			}
		}
	}
	n.close(len(s.Code))
}

func (s *Source) scanIndented() {
	var stack []int // indent of each open loop header
	n := &nester{src: s}
	last := 0

	for i, c := range s.Code {
		if strings.TrimSpace(c) == "" {
			continue
		}
		line := i + 1
		indent := indentOf(s.Lines[i])
		for len(stack) > 0 && stack[len(stack)-1] >= indent {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				n.close(last)
			}
		}

		loop := isLoop(c)
		s.Depth[i] = len(stack)
		if loop {
			s.Depth[i]++
			n.open(line, s.Depth[i])
			if strings.HasSuffix(strings.TrimSpace(c), ":") {
				stack = append(stack, indent)
			} else if len(stack) == 0 {
				n.close(line)
			}
		}
		last = line
	}
	n.close(last)
}

func indentOf(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}
