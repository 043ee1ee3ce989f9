package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mathExtension adds inline `$...$` and block `$$...$$` support to
// goldmark. A fenced ```math``` block gets no special treatment and
// renders as an ordinary fenced code block. No maintained math extension exists
// in the pack's dependency set, so this is hand-written; it only
// recognizes the delimiters and emits a wrapper element, it does not
// understand TeX itself (rendering TeX is left to the viewer's
// client-side script, same as a fenced code block's highlighting is
// left to the theme).
type mathExtension struct{}

func (mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 100)),
		parser.WithInlineParsers(util.Prioritized(&mathInlineParser{}, 501)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(&mathHTMLRenderer{}, 500)),
	)
}

// mathBlock is a `$$...$$` display-math block.
type mathBlock struct {
	ast.BaseBlock
}

var kindMathBlock = ast.NewNodeKind("MathBlock")

func (n *mathBlock) Kind() ast.NodeKind { return kindMathBlock }
func (n *mathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, "MathBlock", source, nil, nil)
}

type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	if !bytes.HasPrefix(bytes.TrimSpace(line), []byte("$$")) {
		return nil, parser.NoChildren
	}
	reader.Advance(len(line))
	return &mathBlock{}, parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	trimmed := bytes.TrimSpace(line)
	if bytes.HasSuffix(trimmed, []byte("$$")) {
		content := bytes.TrimSuffix(trimmed, []byte("$$"))
		if len(content) > 0 {
			node.(*mathBlock).Lines().Append(segment.WithStop(segment.Start + len(content)))
		}
		reader.Advance(len(line))
		return parser.Close
	}
	node.(*mathBlock).Lines().Append(segment)
	reader.Advance(len(line))
	return parser.Continue | parser.NoChildren
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }
func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }

// mathInline is an inline `$...$` span.
type mathInline struct {
	ast.BaseInline
}

var kindMathInline = ast.NewNodeKind("MathInline")

func (n *mathInline) Kind() ast.NodeKind { return kindMathInline }
func (n *mathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, "MathInline", source, nil, nil)
}

type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte { return []byte{'$'} }

func (p *mathInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 2 || line[0] != '$' {
		return nil
	}
	// A `$$` opener seen mid-line is matched up to the next `$$`; the
	// block parser already claims `$$` at the start of a line.
	rest := line[1:]
	closer := []byte("$")
	start := 1
	if len(rest) > 0 && rest[0] == '$' {
		closer = []byte("$$")
		start = 2
	}
	idx := bytes.Index(line[start:], closer)
	if idx < 0 {
		return nil
	}
	contentStart := segment.Start + start
	contentStop := segment.Start + start + idx
	block.Advance(start + idx + len(closer))

	node := &mathInline{}
	node.AppendChild(node, ast.NewTextSegment(text.NewSegment(contentStart, contentStop)))
	return node
}

// mathHTMLRenderer writes mathBlock/mathInline nodes as plain wrapper
// elements; the math text itself is passed through verbatim so a
// client-side renderer (MathJax/KaTeX) can pick it up.
type mathHTMLRenderer struct{}

func (r *mathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindMathBlock, r.renderMathBlock)
	reg.Register(kindMathInline, r.renderMathInline)
}

func (r *mathHTMLRenderer) renderMathBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<div class="math-display">$$`)
		node := n.(*mathBlock)
		for i := 0; i < node.Lines().Len(); i++ {
			seg := node.Lines().At(i)
			_, _ = w.Write(seg.Value(source))
		}
		_, _ = w.WriteString("$$</div>\n")
	}
	return ast.WalkSkipChildren, nil
}

func (r *mathHTMLRenderer) renderMathInline(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<span class="math-inline">$`)
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if ts, ok := c.(*ast.Text); ok {
				_, _ = w.Write(ts.Segment.Value(source))
			}
		}
		_, _ = w.WriteString("$</span>")
	}
	return ast.WalkSkipChildren, nil
}
