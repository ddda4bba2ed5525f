package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// children returns the operand nodes of n. Label names in jumps and calls are
// plain strings and have no node of their own.
func children(n Node) []Node {
	switch node := n.(type) {
	case *Program:
		nodes := make([]Node, 0, len(node.Statements))
		for _, stmt := range node.Statements {
			nodes = append(nodes, stmt)
		}
		return nodes
	case *Unary:
		if node.Reg != nil {
			return []Node{node.Reg}
		}
	case *Binary:
		var nodes []Node
		if node.Reg != nil {
			nodes = append(nodes, node.Reg)
		}
		if node.Value != nil {
			nodes = append(nodes, node.Value)
		}
		return nodes
	case *Cmp:
		var nodes []Node
		if node.Left != nil {
			nodes = append(nodes, node.Left)
		}
		if node.Right != nil {
			nodes = append(nodes, node.Right)
		}
		return nodes
	case *Msg:
		nodes := make([]Node, 0, len(node.Args))
		for _, arg := range node.Args {
			nodes = append(nodes, arg)
		}
		return nodes
	}
	return nil
}
