package site

import (
	"bytes"
	"fmt"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

var chromaRoot = regexp.MustCompile(`\.(chroma|bg)\b`)

// ChromaCSS returns the stylesheet for class-based highlighting: the light
// style applies by default and the dark style under html.dark. Unknown style
// names fall back to chroma's default.
func ChromaCSS(light, dark string) ([]byte, error) {
	f := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "/* %s */\n", light)
	if err := f.WriteCSS(&buf, styles.Get(light)); err != nil {
		return nil, fmt.Errorf("write %s css: %w", light, err)
	}

	var darkBuf bytes.Buffer
	if err := f.WriteCSS(&darkBuf, styles.Get(dark)); err != nil {
		return nil, fmt.Errorf("write %s css: %w", dark, err)
	}
	fmt.Fprintf(&buf, "\n/* %s */\n", dark)
	buf.Write(chromaRoot.ReplaceAll(darkBuf.Bytes(), []byte("html.dark .$1")))

	return buf.Bytes(), nil
}
