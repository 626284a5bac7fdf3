// SPDX-License-Identifier: MIT
package formula

import "strings"

// Dependencies lists the row codes an expression reads. refs are read
// directly; parents are rows whose children are read.
type Dependencies struct {
	Refs    []string
	Parents []string
}

// References walks n and reports the rows it depends on. String arguments of
// VALUE and of the aggregate functions are included as candidate codes.
func References(n Node) Dependencies {
	var d Dependencies
	walkRefs(n, &d)

	return d
}

func walkRefs(n Node, d *Dependencies) {
	switch t := n.(type) {
	case *RefNode:
		d.Refs = append(d.Refs, t.Code)
	case *UnaryNode:
		walkRefs(t.Operand, d)
	case *BinaryNode:
		walkRefs(t.Left, d)
		walkRefs(t.Right, d)
	case *CallNode:
		args := t.Args
		if strings.HasSuffix(t.Name, "CHILDREN") && len(args) > 0 {
			switch a := args[0].(type) {
			case *StringNode:
				d.Parents = append(d.Parents, a.Value)
				args = args[1:]
			case *RefNode:
				d.Parents = append(d.Parents, a.Code)
				args = args[1:]
			}
		}
		for i, a := range args {
			if s, ok := a.(*StringNode); ok && namesRow(t.Name, i) {
				d.Refs = append(d.Refs, s.Value)
				continue
			}
			walkRefs(a, d)
		}
	}
}

// namesRow reports whether a string literal at argument i of fn is read as a
// row code.
func namesRow(fn string, i int) bool {
	switch fn {
	case "VALUE":
		return i == 0
	case "SUM", "AVG", "AVERAGE", "MIN", "MAX", "COUNT":
		return true
	}

	return false
}
