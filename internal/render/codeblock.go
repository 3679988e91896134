package render

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// wrapCodeBlocks places every <pre> in a div.code-block-wrapper together
// with a copy button. It runs after sanitization since the policy does not
// allow buttons.
func wrapCodeBlocks(body []byte) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(body), context)
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	var pres []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Pre {
			pres = append(pres, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(container)

	for _, pre := range pres {
		wrapper := &html.Node{
			Type: html.ElementNode, Data: "div", DataAtom: atom.Div,
			Attr: []html.Attribute{{Key: "class", Val: "code-block-wrapper"}},
		}
		pre.Parent.InsertBefore(wrapper, pre)
		pre.Parent.RemoveChild(pre)
		wrapper.AppendChild(pre)
		wrapper.AppendChild(copyButton())
	}

	var out bytes.Buffer
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return out.String(), nil
}

func copyButton() *html.Node {
	btn := &html.Node{
		Type: html.ElementNode, Data: "button", DataAtom: atom.Button,
		Attr: []html.Attribute{
			{Key: "class", Val: "copy-button"},
			{Key: "type", Val: "button"},
			{Key: "aria-label", Val: "Copy code"},
			{Key: "data-copied", Val: "false"},
		},
	}
	btn.AppendChild(&html.Node{Type: html.TextNode, Data: "Copy"})
	return btn
}
