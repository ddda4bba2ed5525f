package main

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/risor-io/regasm"
	"github.com/risor-io/regasm/ast"
)

func newASTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Display the syntax tree of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  astHandler,
	}
	addInputFlags(cmd)
	return cmd
}

func astHandler(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	source, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	program, err := regasm.Parse(cmd.Context(), source, regasm.WithFilename(filename))
	if err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), statementsToJSON(program))
	}
	printAST(cmd.OutOrStdout(), program)
	return nil
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Text     string     `json:"text"`
	Line     int        `json:"line"`
	Column   int        `json:"column"`
	Children []*ASTNode `json:"children,omitempty"`
}

func nodeType(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

func newASTNode(node ast.Node) *ASTNode {
	return &ASTNode{
		Type:   nodeType(node),
		Text:   node.String(),
		Line:   node.Span().LineNumber(),
		Column: node.Span().ColumnNumber(),
	}
}

// statementsToJSON lists each statement with its operands. Operands are
// leaves, so a preorder walk below the statement yields all of them.
func statementsToJSON(program *ast.Program) []*ASTNode {
	nodes := make([]*ASTNode, 0, len(program.Statements))
	for _, stmt := range program.Statements {
		node := newASTNode(stmt)
		for child := range ast.Preorder(stmt) {
			if child == ast.Node(stmt) {
				continue
			}
			node.Children = append(node.Children, newASTNode(child))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

type astPrinter struct {
	w     io.Writer
	depth int
}

func (p *astPrinter) Visit(node ast.Node) ast.Visitor {
	indent := strings.Repeat("  ", p.depth)
	switch n := node.(type) {
	case *ast.Program:
		fmt.Fprintf(p.w, "%sProgram (%d statements, %d instructions, registers: %s)\n",
			indent, len(n.Statements), len(n.Instructions()), strings.Join(registerNames(n), ", "))
	case *ast.Register, *ast.Const, *ast.Text:
		fmt.Fprintf(p.w, "%s%s %s\n", indent, nodeType(node), node)
	default:
		fmt.Fprintf(p.w, "%s%s [%s] %s\n", indent, nodeType(node), node.Span(), node)
	}
	return &astPrinter{w: p.w, depth: p.depth + 1}
}

// registerNames lists the registers a program mentions, in order of first
// appearance.
func registerNames(program *ast.Program) []string {
	seen := map[string]bool{}
	var names []string
	ast.Inspect(program, func(node ast.Node) bool {
		if reg, ok := node.(*ast.Register); ok && !seen[reg.Name] {
			seen[reg.Name] = true
			names = append(names, reg.Name)
		}
		return true
	})
	return names
}

func printAST(w io.Writer, program *ast.Program) {
	ast.Walk(&astPrinter{w: w}, program)
}
