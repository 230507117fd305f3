package post

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/doodle-journal/core/internal/models"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// renderedResponse is the share view of one entry: the content converted
// from markdown to HTML, wrapped with the title.
type renderedResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

func renderEntry(p *models.PostModel) renderedResponse {
	var out bytes.Buffer
	body := p.Content
	if err := markdownEngine.Convert([]byte(body), &out); err != nil {
		// Fall back to escaped plain text rather than failing the view.
		return renderedResponse{
			ID:    p.ID,
			Title: p.Title,
			HTML:  "<p>" + template.HTMLEscapeString(body) + "</p>",
		}
	}
	return renderedResponse{ID: p.ID, Title: p.Title, HTML: out.String()}
}
