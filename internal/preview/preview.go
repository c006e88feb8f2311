// Package preview renders diagrams and notes to HTML for the browser
// editor: Mermaid fences become mermaid.js blocks and the live model is
// shown as highlighted YAML.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
)

// DefaultStyle is the chroma style used for the model inspector.
const DefaultStyle = "github"

// Renderer converts markdown to HTML pages.
type Renderer struct {
	// plain leaves mermaid fences untouched so they can become diagram
	// blocks; highlighted runs chroma over every other fence.
	plain       goldmark.Markdown
	highlighted goldmark.Markdown
	page        *template.Template
}

// New creates a Renderer using the given chroma style.
func New(style string) (*Renderer, error) {
	if style == "" {
		style = DefaultStyle
	}
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{
		plain: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		highlighted: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
		),
		page: page,
	}, nil
}

// Diagram renders generated Mermaid code as a mermaid.js block.
func (r *Renderer) Diagram(code string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.plain.Convert([]byte(diagrams.Fence(code)), &buf); err != nil {
		return "", fmt.Errorf("converting diagram: %w", err)
	}
	return template.HTML(postProcessMermaid(buf.String())), nil
}

// Model renders m as a highlighted YAML document.
func (r *Renderer) Model(m diagrams.Model) (template.HTML, error) {
	if m == nil {
		return "", nil
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshalling model: %w", err)
	}
	src := "```yaml\n" + string(data) + "```\n"
	var buf bytes.Buffer
	if err := r.highlighted.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting model: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Note renders a whole markdown note, turning its mermaid fences into
// diagram blocks.
func (r *Renderer) Note(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.plain.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting note: %w", err)
	}
	return template.HTML(postProcessMermaid(buf.String())), nil
}

// PageData is passed to the page template.
type PageData struct {
	Title     string
	Lang      string
	Content   template.HTML
	Inspector template.HTML
	// SessionID enables live refresh over the session websocket.
	SessionID string
}

// Page writes a full HTML page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if data.Lang == "" {
		data.Lang = "en"
	}
	return r.page.Execute(w, data)
}

// postProcessMermaid converts <pre><code class="language-mermaid">...</code></pre>
// blocks into <div class="mermaid">...</div> for Mermaid.js rendering.
func postProcessMermaid(html string) string {
	const openTag = `<pre><code class="language-mermaid">`
	const closeTag = `</code></pre>`

	var b strings.Builder
	for {
		idx := strings.Index(html, openTag)
		if idx == -1 {
			break
		}
		end := strings.Index(html[idx:], closeTag)
		if end == -1 {
			break
		}
		end += idx
		b.WriteString(html[:idx])
		b.WriteString(`<div class="mermaid">`)
		b.WriteString(html[idx+len(openTag) : end])
		b.WriteString(`</div>`)
		html = html[end+len(closeTag):]
	}
	b.WriteString(html)
	return b.String()
}
