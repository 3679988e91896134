package site

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dgallion1/docsite/internal/render"
	"github.com/dgallion1/docsite/internal/toc"
)

// Chrome is the page furniture around the rendered document.
type Chrome struct {
	SiteTitle      string
	Logo           string // trusted raw HTML from configuration
	GitHubURL      string
	EditURL        string
	SearchDebounce time.Duration
}

type pageData struct {
	Title            string
	Description      string
	SiteTitle        string
	Logo             template.HTML
	GitHubURL        string
	EditURL          string
	TOC              template.HTML
	Content          template.HTML
	SearchDebounceMs int64
}

// RenderPage lays doc out in the full page: sidebar with table of contents,
// search overlay and theme toggle.
func RenderPage(doc *render.Document, chrome Chrome) ([]byte, error) {
	title := doc.Title
	if title == "" {
		title = chrome.SiteTitle
	}

	data := pageData{
		Title:            title,
		Description:      doc.Description,
		SiteTitle:        chrome.SiteTitle,
		Logo:             template.HTML(chrome.Logo),
		GitHubURL:        chrome.GitHubURL,
		EditURL:          chrome.EditURL,
		TOC:              template.HTML(toc.Render(doc.Headings)),
		Content:          template.HTML(doc.HTML),
		SearchDebounceMs: chrome.SearchDebounce.Milliseconds(),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
