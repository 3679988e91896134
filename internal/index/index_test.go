package index

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/dgallion1/docsite/internal/render"
)

func mustParse(t *testing.T, s string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return root
}

func TestBuild_Sections(t *testing.T) {
	root := mustParse(t, `<main>
<h1 id="guide">Guide</h1>
<p>Welcome to the <strong>Guide</strong>.</p>
<h2 id="install"> Install </h2>
<p>Run NPM install.</p>
<pre>make build</pre>
<h3 id="deep">Deep</h3>
</main>`)

	got := Build(root)
	want := []struct {
		id, title, content string
		level              int
	}{
		{"guide", "Guide", "welcome to the guide.", 1},
		{"install", "Install", "run npm install. make build", 2},
		{"deep", "Deep", "", 3},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d sections, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		s := got[i]
		if s.ID != w.id || s.Title != w.title || s.Level != w.level {
			t.Errorf("section %d: expected {%s %s %d}, got {%s %s %d}", i, w.id, w.title, w.level, s.ID, s.Title, s.Level)
		}
		if s.Content != w.content {
			t.Errorf("section %d: expected content %q, got %q", i, w.content, s.Content)
		}
	}
}

func TestBuild_SkipsHeadingsWithoutID(t *testing.T) {
	root := mustParse(t, `<h2 id="a">A</h2><p>one</p><h2>No id</h2><p>two</p>`)
	got := Build(root)
	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	// The unindexed heading does not end the section.
	if got[0].Content != "one no id two" {
		t.Errorf("expected content %q, got %q", "one no id two", got[0].Content)
	}
}

func TestBuild_ExcludesNavigation(t *testing.T) {
	root := mustParse(t, `<div>
<h2 id="api">API</h2>
<p>Endpoints.</p>
<div class="sidebar"><a href="#x">Sidebar Link</a></div>
<nav><a href="#y">Nav Link</a></nav>
<ul class="menu nav"><li>Menu</li></ul>
<p>More text.</p>
</div>`)

	got := Build(root)
	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	if got[0].Content != "endpoints. more text." {
		t.Errorf("expected content %q, got %q", "endpoints. more text.", got[0].Content)
	}
}

func TestBuild_NestedHeadingEndsAtParent(t *testing.T) {
	root := mustParse(t, `<section><h2 id="one">One</h2><p>first</p></section>
<section><h2 id="two">Two</h2><p>second</p></section>`)
	got := Build(root)
	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got))
	}
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Errorf("unexpected contents %q, %q", got[0].Content, got[1].Content)
	}
}

func TestBuild_IgnoresCopyButtons(t *testing.T) {
	root := mustParse(t, `<h2 id="c">C</h2><div class="code-block-wrapper"><pre><code>go test</code></pre><button class="copy-button">Copy</button></div>`)
	got := Build(root)
	if got[0].Content != "go test" {
		t.Errorf("expected content %q, got %q", "go test", got[0].Content)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	root := mustParse(t, `<h1 id="a">A</h1><p>x</p><h2 id="b">B</h2><p>y</p>`)
	first := Build(root)
	second := Build(root)
	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("section %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(mustParse(t, "")); len(got) != 0 {
		t.Errorf("expected no sections, got %+v", got)
	}
}

func TestParse_RenderedDocumentIDs(t *testing.T) {
	src := []byte("# Intro\n\nHello.\n\n## Setup\n\nSteps.\n\n## Setup\n\nMore.\n")
	doc, err := render.New(render.Options{}).Render(src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	sections, err := Parse(strings.NewReader(doc.HTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != len(doc.Headings) {
		t.Fatalf("expected %d sections, got %d", len(doc.Headings), len(sections))
	}
	for i, h := range doc.Headings {
		if sections[i].ID != h.ID {
			t.Errorf("section %d: expected id %q, got %q", i, h.ID, sections[i].ID)
		}
	}
}
