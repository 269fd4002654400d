package hook

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Builtin hook documentation, in markdown. Rendered to plain text for
// `hookline list --long`.
var hookDocs = map[string]string{
	"go-vet": `# go-vet

Runs ` + "`go vet ./...`" + ` against the repository.

- Fails when vet reports any diagnostic.
- Requires the Go toolchain on PATH.`,

	"gofmt": `# gofmt

Checks that staged Go files match gofmt output.

- Warns (does not block) by default.
- Only runs when Go files are staged.`,

	"trailing-whitespace": `# trailing-whitespace

Uses ` + "`git diff --check --cached`" + ` to reject staged changes that
introduce trailing whitespace or leftover conflict markers.`,

	"yaml-syntax": `# yaml-syntax

Parses every staged YAML file and fails on the first syntax error.

- Only runs when .yml or .yaml files are staged.`,
}

// Doc returns the rendered documentation for a builtin hook, or an empty
// string when none exists.
func Doc(name string) string {
	md, ok := hookDocs[name]
	if !ok {
		return ""
	}
	return renderDoc(md)
}

// renderDoc flattens a markdown document into indented terminal text:
// headings become uppercase section titles, list items become dashed
// lines, paragraphs are emitted verbatim.
func renderDoc(markdown string) string {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			sb.WriteString(strings.ToUpper(nodeText(node, source)))
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			sb.WriteString("  - ")
			sb.WriteString(nodeText(node, source))
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if _, inList := node.Parent().(*ast.ListItem); inList {
				return ast.WalkContinue, nil
			}
			sb.WriteString(nodeText(node, source))
			sb.WriteString("\n")
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimRight(sb.String(), "\n")
}

// nodeText extracts the plain text beneath an AST node.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	collect(n, source, &buf)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func collect(n ast.Node, source []byte, buf *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			buf.WriteByte(' ')
		case *ast.CodeSpan:
			collect(t, source, buf)
		default:
			collect(c, source, buf)
		}
	}
}
