package diff

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Class is the syntax class of a highlighted token.
type Class int

const (
	ClassPlain Class = iota
	ClassKeyword
	ClassString
	ClassComment
	ClassFunction
)

func (c Class) String() string {
	switch c {
	case ClassKeyword:
		return "keyword"
	case ClassString:
		return "string"
	case ClassComment:
		return "comment"
	case ClassFunction:
		return "function"
	default:
		return "plain"
	}
}

// CSSClass is the class attribute used in markup for c.
func (c Class) CSSClass() string {
	return "token-" + c.String()
}

// Token is a classified chunk of a source line.
type Token struct {
	Text  string
	Class Class
}

// Keywords is the closed set of words wrapped as keywords.
var Keywords = []string{
	"const", "let", "var", "if", "else", "async", "await", "return",
	"import", "from", "export", "default", "function", "for", "while",
}

type rule struct {
	class Class
	re    *regexp.Regexp
	group int // submatch that gets wrapped
}

// Rules run in order; each one only looks at text no earlier rule claimed.
// This is a lexical approximation, so a string containing a keyword loses
// its string colouring.
var rules = []rule{
	{ClassKeyword, regexp.MustCompile(`\b(?:` + strings.Join(Keywords, "|") + `)\b`), 0},
	{ClassString, regexp.MustCompile("'.*?'|\".*?\"|`.*?`"), 0},
	{ClassComment, regexp.MustCompile(`//.*`), 0},
	{ClassFunction, regexp.MustCompile(`(\w+)\(`), 1},
}

// Tokenize splits a single line of code into classified tokens.
func Tokenize(line string) []Token {
	if line == "" {
		return nil
	}
	tokens := []Token{{Text: line}}
	for _, r := range rules {
		tokens = r.apply(tokens)
	}
	return tokens
}

func (r rule) apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Class != ClassPlain {
			out = append(out, tok)
			continue
		}

		last := 0
		for _, m := range r.re.FindAllStringSubmatchIndex(tok.Text, -1) {
			start, end := m[2*r.group], m[2*r.group+1]
			if start < 0 || end <= start {
				continue
			}
			if start > last {
				out = append(out, Token{Text: tok.Text[last:start]})
			}
			out = append(out, Token{Text: tok.Text[start:end], Class: r.class})
			last = end
		}
		if last < len(tok.Text) {
			out = append(out, Token{Text: tok.Text[last:]})
		}
	}
	return out
}

var markupEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Markup renders tokens as text with span-wrapped syntax classes. Angle
// brackets are escaped; nothing else is.
func Markup(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		text := markupEscaper.Replace(tok.Text)
		if tok.Class == ClassPlain {
			b.WriteString(text)
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(tok.Class.CSSClass())
		b.WriteString(`">`)
		b.WriteString(text)
		b.WriteString(`</span>`)
	}
	return b.String()
}

// Highlight returns the markup for one line of code.
func Highlight(line string) string {
	return Markup(Tokenize(line))
}

// Plain returns the concatenated text of tokens.
func Plain(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Palette maps token classes to colours taken from a chroma style.
type Palette map[Class]string

var chromaTypes = map[Class]chroma.TokenType{
	ClassKeyword:  chroma.Keyword,
	ClassString:   chroma.LiteralString,
	ClassComment:  chroma.Comment,
	ClassFunction: chroma.NameFunction,
}

// NewPalette builds a Palette from the named chroma style, falling back to
// chroma's default style for unknown names.
func NewPalette(styleName string) Palette {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	p := make(Palette, len(chromaTypes))
	for class, tt := range chromaTypes {
		entry := style.Get(tt)
		if entry.Colour.IsSet() {
			p[class] = entry.Colour.String()
		}
	}
	return p
}

// Color returns the colour for c, or "" for the default foreground.
func (p Palette) Color(c Class) string {
	return p[c]
}
