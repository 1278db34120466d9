// Package markdown turns thread content into sanitized HTML. The stored
// markdown is never modified; rendering is a read-side concern.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: p}
}

// Render converts markdown to sanitized HTML. Raw HTML in the source
// survives goldmark (WithUnsafe) and is stripped by the sanitizer instead,
// so markdown inside mixed content still renders.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

// RenderSafe never fails: a conversion error degrades to escaped plaintext.
// Malformed content is a rendering concern, not a data-integrity one.
func (r *Renderer) RenderSafe(source string) string {
	out, err := r.Render(source)
	if err != nil {
		return "<p>" + html.EscapeString(source) + "</p>"
	}
	return out
}
