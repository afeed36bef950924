package typewriter

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type terminalConverter struct {
	r *glamour.TermRenderer
}

// Terminal returns a Converter that renders markdown for the terminal with
// the given glamour style ("dark", "light", "notty", ...) and word wrap.
func Terminal(style string, wordWrap int) (Converter, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &terminalConverter{r: r}, nil
}

func (c *terminalConverter) Convert(md string) (string, error) {
	return c.r.Render(md)
}

type htmlConverter struct {
	md goldmark.Markdown
}

// HTML returns a Converter that renders GitHub-flavoured markdown to HTML.
func HTML() Converter {
	return &htmlConverter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (c *htmlConverter) Convert(md string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
