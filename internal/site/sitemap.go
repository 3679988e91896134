package site

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/dgallion1/docsite/internal/doctree"
)

// Sitemap lists the page root and one fragment URL per heading.
func Sitemap(baseURL string, headings []doctree.Heading, now time.Time) []byte {
	base := strings.TrimRight(baseURL, "/")
	today := now.Format("2006-01-02")

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	writeURL(&buf, base+"/", today)
	for _, h := range headings {
		writeURL(&buf, base+"/#"+h.ID, today)
	}
	buf.WriteString(`</urlset>` + "\n")
	return buf.Bytes()
}

func writeURL(buf *bytes.Buffer, loc, lastmod string) {
	buf.WriteString("  <url>\n    <loc>")
	xml.EscapeText(buf, []byte(loc))
	buf.WriteString("</loc>\n    <lastmod>" + lastmod + "</lastmod>\n")
	buf.WriteString("    <changefreq>weekly</changefreq>\n  </url>\n")
}
