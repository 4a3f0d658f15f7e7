package config

import (
	"errors"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/boxtable/pkg/table"
)

// ErrNoMarkdownTable is returned when a Markdown document holds no table.
var ErrNoMarkdownTable = errors.New("no table found in markdown input")

// ReadMarkdown turns the first pipe table of a Markdown document into a
// Document. Column alignment follows the delimiter row (:--, --:, :-:) and
// columns are as wide as their longest cell.
func ReadMarkdown(data []byte) (*Document, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	root := markdown.Parse(trimBOM(data), p)

	var tbl *ast.Table
	ast.WalkFunc(root, func(n ast.Node, entering bool) ast.WalkStatus {
		if t, ok := n.(*ast.Table); ok && entering {
			tbl = t
			return ast.Terminate
		}
		return ast.GoToNext
	})
	if tbl == nil {
		return nil, ErrNoMarkdownTable
	}

	var (
		header []string
		rows   [][]string
		aligns []ast.CellAlignFlags
	)
	ast.WalkFunc(tbl, func(n ast.Node, entering bool) ast.WalkStatus {
		r, ok := n.(*ast.TableRow)
		if !ok || !entering {
			return ast.GoToNext
		}
		var cells []string
		isHeader := false
		for _, c := range r.GetChildren() {
			cell, ok := c.(*ast.TableCell)
			if !ok {
				continue
			}
			isHeader = isHeader || cell.IsHeader
			cells = append(cells, cellText(cell))
			if len(aligns) < len(cells) {
				aligns = append(aligns, cell.Align)
			}
		}
		if isHeader && header == nil {
			header = cells
		} else {
			rows = append(rows, cells)
		}
		return ast.SkipChildren
	})

	doc := FromRecords(header, rows)
	for i := range doc.Columns {
		if i < len(aligns) {
			doc.Columns[i].Align = alignName(aligns[i])
		}
		w := 1
		for _, r := range append([][]string{header}, rows...) {
			if i < len(r) {
				w = max(w, len([]rune(r[i])))
			}
		}
		doc.Columns[i].Width = &w
	}
	return doc, nil
}

// cellText concatenates the literal text under a cell, dropping markup.
func cellText(cell *ast.TableCell) string {
	var b strings.Builder
	ast.WalkFunc(cell, func(n ast.Node, entering bool) ast.WalkStatus {
		if leaf := n.AsLeaf(); leaf != nil && entering {
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(b.String())
}

func alignName(flags ast.CellAlignFlags) string {
	switch flags {
	case ast.TableAlignmentCenter:
		return table.AlignCenter.String()
	case ast.TableAlignmentRight:
		return table.AlignRight.String()
	default:
		return table.AlignLeft.String()
	}
}
