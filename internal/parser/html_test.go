package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_ConvertsContentAndDropsChrome(t *testing.T) {
	input := `<html><head><title>Guide</title><script>var x = 1;</script></head>
<body>
<nav><a href="/">Home</a></nav>
<h1>Welcome</h1>
<p>Some <strong>bold</strong> text.</p>
<h2>Install</h2>
<ul><li>one</li><li>two</li></ul>
<footer>Copyright</footer>
</body></html>`

	p := &HTMLParser{}
	src, err := p.Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Title != "Guide" {
		t.Errorf("expected title %q, got %q", "Guide", src.Title)
	}
	md := string(src.Markdown)
	for _, want := range []string{"# Welcome", "**bold**", "## Install", "- one"} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q, got:\n%s", want, md)
		}
	}
	for _, unwanted := range []string{"Home", "Copyright", "var x"} {
		if strings.Contains(md, unwanted) {
			t.Errorf("expected markdown to drop %q, got:\n%s", unwanted, md)
		}
	}
}

func TestHTMLParser_TitleFallsBackToFilename(t *testing.T) {
	p := &HTMLParser{}
	src, err := p.Parse(strings.NewReader("<p>hi</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", src.Title)
	}
}
