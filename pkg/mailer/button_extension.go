package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// kindButton identifies call-to-action nodes in the markdown AST.
var kindButton = ast.NewNodeKind("Button")

var buttonOpen = []byte("[!button|")

// button is a call-to-action link written as [!button|Label](URL).
// Label and URL must sit on one line.
type button struct {
	ast.BaseInline
	label []byte
	dest  []byte
}

func (n *button) Kind() ast.NodeKind { return kindButton }

func (n *button) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label": string(n.label),
		"Dest":  string(n.dest),
	}, nil)
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

// Parse consumes "[!button|Label](URL)". Anything else falls through to
// goldmark's own link parser.
func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, buttonOpen)
	if !ok {
		return nil
	}

	label, rest, ok := bytes.Cut(rest, []byte("]("))
	if !ok || bytes.IndexByte(label, ']') >= 0 {
		return nil
	}
	dest, _, ok := bytes.Cut(rest, []byte(")"))
	if !ok {
		return nil
	}

	block.Advance(len(buttonOpen) + len(label) + 2 + len(dest) + 1)
	return &button{label: label, dest: dest}
}

// buttonRenderer writes <a href="URL" class="btn">Label</a>. Dangerous
// destinations such as javascript: get an empty href.
type buttonRenderer struct {
	html.Config
}

func (r *buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindButton, r.render)
}

func (r *buttonRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*button)

	href := n.dest
	if !r.Unsafe && html.IsDangerousURL(href) {
		href = nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(href))
	_, _ = w.WriteString(`" class="btn">`)
	_, _ = w.Write(util.EscapeHTML(n.label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkSkipChildren, nil
}

type buttonExtension struct{}

func (buttonExtension) Extend(m goldmark.Markdown) {
	// Ahead of the built-in link parser (priority 200) so "[!button|" is claimed first.
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(buttonParser{}, 50),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&buttonRenderer{Config: html.NewConfig()}, 50),
	))
}

// NewButtonExtension returns the goldmark extension that renders
// [!button|Label](URL) as a styled call-to-action link.
func NewButtonExtension() goldmark.Extender {
	return buttonExtension{}
}
