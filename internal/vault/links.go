package vault

import (
	"bytes"
	"cmp"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Link is one reference from a note to another file.
type Link struct {
	// Target is the link destination as written, without any #heading,
	// ^block or ?query suffix.
	Target string `json:"target"`
	// Embed is true for images and ![[...]] embeds.
	Embed bool `json:"embed"`
	// Wiki is true for [[...]] style links.
	Wiki bool `json:"wiki"`
	// Line is 1-based.
	Line int `json:"line"`
}

var linkParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// [[target]], [[target|alias]], [[target#heading]], ![[target]]
var wikiLink = regexp.MustCompile(`(!?)\[\[([^\[\]|#^]+)(?:[#^][^\[\]|]*)?(?:\|[^\[\]]*)?\]\]`)

// ExtractLinks returns the links of a markdown note in source order.
// Markdown links and images come from the parsed document; wikilinks are
// matched on the source with code blocks and code spans blanked out, so
// examples inside code are ignored.
func ExtractLinks(src []byte) []Link {
	doc := linkParser.Parse(text.NewReader(src))
	masked := bytes.Clone(src)
	loc := newLocator(src)

	var links []Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			if node.Info != nil {
				blank(masked, node.Info.Segment)
			}
			blankLines(masked, node.Lines())
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			blankLines(masked, node.Lines())
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					blank(masked, t.Segment)
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			if target, ok := localTarget(node.Destination); ok {
				links = append(links, Link{Target: target, Line: lineOf(src, loc.offset(node, node.Destination))})
			}
		case *ast.Image:
			if target, ok := localTarget(node.Destination); ok {
				links = append(links, Link{Target: target, Embed: true, Line: lineOf(src, loc.offset(node, node.Destination))})
			}
		}
		return ast.WalkContinue, nil
	})

	for _, m := range wikiLink.FindAllSubmatchIndex(masked, -1) {
		target := strings.TrimSpace(string(masked[m[4]:m[5]]))
		if target == "" {
			continue
		}
		links = append(links, Link{
			Target: target,
			Embed:  m[3] > m[2],
			Wiki:   true,
			Line:   lineOf(src, m[0]),
		})
	}

	sortLinks(links)
	return links
}

func blank(buf []byte, seg text.Segment) {
	for i := seg.Start; i < seg.Stop && i < len(buf); i++ {
		if buf[i] != '\n' {
			buf[i] = ' '
		}
	}
}

func blankLines(buf []byte, lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		blank(buf, lines.At(i))
	}
}

// locator finds where inline links sit in the source. Link and image nodes
// carry no segment of their own, so the destination is searched for inside
// the enclosing block. Each (block, destination) pair keeps a cursor so a
// destination repeated in one paragraph resolves to successive occurrences.
type locator struct {
	src     []byte
	cursors map[locatorKey]int
}

type locatorKey struct {
	block ast.Node
	dest  string
}

func newLocator(src []byte) *locator {
	return &locator{src: src, cursors: make(map[locatorKey]int)}
}

func (l *locator) offset(n ast.Node, dest []byte) int {
	block := enclosingBlock(n)
	if block == nil || len(dest) == 0 {
		return nodeOffset(n)
	}
	lines := block.Lines()
	start, stop := lines.At(0).Start, lines.At(lines.Len()-1).Stop
	if stop > len(l.src) {
		stop = len(l.src)
	}
	key := locatorKey{block: block, dest: string(dest)}
	from, ok := l.cursors[key]
	if !ok {
		from = start
	}
	for _, open := range []string{"(", "(<"} {
		needle := append([]byte(open), dest...)
		if from > stop {
			break
		}
		if i := bytes.Index(l.src[from:stop], needle); i >= 0 {
			l.cursors[key] = from + i + len(needle)
			return from + i
		}
	}
	return nodeOffset(n)
}

func enclosingBlock(n ast.Node) ast.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == ast.TypeBlock && p.Lines().Len() > 0 {
			return p
		}
	}
	return nil
}

// nodeOffset finds a source offset for an inline node through its first
// text child or its enclosing block.
func nodeOffset(n ast.Node) int {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return t.Segment.Start
		}
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == ast.TypeBlock && p.Lines().Len() > 0 {
			return p.Lines().At(0).Start
		}
	}
	return 0
}

func lineOf(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.Count(src[:offset], []byte{'\n'}) + 1
}

// localTarget drops external URLs and strips fragments and queries.
func localTarget(dest []byte) (string, bool) {
	d := strings.TrimSpace(string(dest))
	if d == "" || strings.HasPrefix(d, "#") || strings.Contains(d, "://") {
		return "", false
	}
	if i := strings.IndexByte(d, ':'); i > 0 && !strings.ContainsAny(d[:i], "/.") {
		// mailto:, data:, obsidian: and similar schemes
		return "", false
	}
	if i := strings.IndexAny(d, "#?"); i >= 0 {
		d = d[:i]
	}
	if u, err := url.PathUnescape(d); err == nil {
		d = u
	}
	return d, d != ""
}

func sortLinks(links []Link) {
	slices.SortStableFunc(links, func(a, b Link) int { return cmp.Compare(a.Line, b.Line) })
}
