package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"reflectc/internal/ast"
	"reflectc/internal/source"
)

type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Text     string           `json:"text,omitempty"`
	Span     *source.Span     `json:"span,omitempty"`
	Payload  string           `json:"payload,omitempty"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

func nodeLabel(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Node(id)
	if n == nil {
		return fmt.Sprintf("<nil #%d>", id)
	}
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	if n.Sym != ast.NoSymbol {
		fmt.Fprintf(&sb, " %q", tree.Text(id))
	}
	if n.Payload != nil {
		if s := n.Payload.String(); s != "" {
			fmt.Fprintf(&sb, " [%s]", s)
		}
	}
	return sb.String()
}

// FormatTreePretty prints the syntax tree with box-drawing indentation.
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	root := tree.Root()
	if _, err := fmt.Fprintln(w, nodeLabel(tree, root)); err != nil {
		return err
	}
	return formatChildrenPretty(w, tree, root, fs, "")
}

func formatChildrenPretty(w io.Writer, tree *ast.Tree, id ast.NodeID, fs *source.FileSet, prefix string) error {
	children := tree.Children(id)
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		label := nodeLabel(tree, child)
		if n := tree.Node(child); n != nil && n.Sym != ast.NoSymbol && fs != nil {
			label += " (" + formatSpan(tree.Symbol(child).Span, fs) + ")"
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, label); err != nil {
			return err
		}
		if err := formatChildrenPretty(w, tree, child, fs, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// FormatTreeJSON writes the syntax tree as nested JSON objects.
func FormatTreeJSON(w io.Writer, tree *ast.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildTreeOutput(tree, tree.Root()))
}

func buildTreeOutput(tree *ast.Tree, id ast.NodeID) TreeNodeOutput {
	n := tree.Node(id)
	out := TreeNodeOutput{Kind: n.Kind.String()}
	if n.Sym != ast.NoSymbol {
		sym := tree.Symbol(id)
		out.Text = sym.Text
		out.Span = &sym.Span
	}
	if n.Payload != nil {
		out.Payload = n.Payload.String()
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, buildTreeOutput(tree, c))
	}
	return out
}

// FormatTreeDiagram draws the tree top-down with / | \ connectors.
// Only practical for small inputs.
func FormatTreeDiagram(w io.Writer, tree *ast.Tree) error {
	block := renderTree(buildTreeNode(tree, tree.Root()))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

func buildTreeNode(tree *ast.Tree, id ast.NodeID) *treeNode {
	node := &treeNode{label: nodeLabel(tree, id)}
	for _, c := range tree.Children(id) {
		node.children = append(node.children, buildTreeNode(tree, c))
	}
	return node
}

func padRight(s string, width int) string {
	if len(s) < width {
		return s + strings.Repeat(" ", width-len(s))
	}
	return s
}

// renderTree lays children side by side under a centred parent label.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := len(label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{label}, width: labelWidth, root: labelWidth / 2}
	}

	const spacing = 3
	blocks := make([]treeBlock, len(node.children))
	height := 0
	positions := make([]int, len(blocks))
	total := 0
	for i, child := range node.children {
		blocks[i] = renderTree(child)
		height = max(height, len(blocks[i].lines))
		positions[i] = total + blocks[i].root
		total += blocks[i].width
		if i != len(blocks)-1 {
			total += spacing
		}
	}

	center := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := center - rootPos
	indent := 0
	if shift < 0 {
		// метка шире детей - сдвигаем детей вправо
		indent = -shift
		for i := range positions {
			positions[i] += indent
		}
		total += indent
		shift = 0
	}
	rootPos += shift

	width := max(total, shift+labelWidth, rootPos+1)
	rootLine := padRight(strings.Repeat(" ", shift)+label, width)

	connector := []byte(strings.Repeat(" ", width))
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}

	lines := make([]string, 0, 2+height)
	lines = append(lines, rootLine, string(connector))
	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", indent))
		for i, b := range blocks {
			line := ""
			if row < len(b.lines) {
				line = b.lines[row]
			}
			sb.WriteString(padRight(line, b.width))
			if i != len(blocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		lines = append(lines, padRight(sb.String(), width))
	}
	return treeBlock{lines: lines, width: width, root: rootPos}
}
