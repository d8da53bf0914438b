package claude

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"
)

// Preview is the result of a dry run: what Apply(true) would write.
type Preview struct {
	Path   string
	Before string
	After  string
	// Diff is a unified diff from Before to After, empty when unchanged.
	Diff string
}

// Changed reports whether applying would modify the file.
func (p *Preview) Changed() bool {
	return p.Before != p.After
}

// Preview computes the merged document without touching the filesystem.
func (w *Writer) Preview() (*Preview, error) {
	path, err := w.SettingsPath()
	if err != nil {
		return nil, err
	}

	var before string
	if data, err := afero.ReadFile(w.fs, path); err == nil {
		before = string(data)
	}

	doc, _ := w.load(path)
	doc[StatusLineKey] = w.Fragment()
	data, err := encode(doc)
	if err != nil {
		return nil, &ConfigError{Kind: KindEncode, Op: "encode", Path: path, Err: err}
	}

	p := &Preview{Path: path, Before: before, After: string(data)}
	if p.Changed() {
		p.Diff = udiff.Unified(path, path, p.Before, p.After)
	}
	return p, nil
}

// Highlighted returns Diff colored for a true-color terminal, or the plain
// diff if highlighting is unavailable.
func (p *Preview) Highlighted() string {
	if p.Diff == "" {
		return ""
	}
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Get("terminal256")
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	if formatter == nil {
		return p.Diff
	}

	it, err := lexer.Tokenise(nil, p.Diff)
	if err != nil {
		return p.Diff
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return p.Diff
	}
	return strings.TrimRight(buf.String(), "\n") + "\n"
}
