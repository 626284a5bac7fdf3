// SPDX-License-Identifier: MIT
package dfs

import "github.com/katalvlaran/finmatrix/core"

// PreOrder visits every node reachable from the roots, parents before
// children. Returning an error from visit aborts the walk with that error.
func PreOrder(f *core.Forest, visit func(n *core.RowNode) error) error {
	if f == nil {
		return ErrForestNil
	}
	var walk func(code string) error
	walk = func(code string) error {
		n, ok := f.Node(code)
		if !ok {
			return nil
		}
		if err := visit(n); err != nil {
			return err
		}
		for _, ch := range n.Children {
			if err := walk(ch); err != nil {
				return err
			}
		}

		return nil
	}
	for _, r := range f.Roots() {
		if err := walk(r); err != nil {
			return err
		}
	}

	return nil
}

// PostOrder visits every node reachable from the roots, children before
// their parent.
func PostOrder(f *core.Forest, visit func(n *core.RowNode) error) error {
	if f == nil {
		return ErrForestNil
	}
	var walk func(code string) error
	walk = func(code string) error {
		n, ok := f.Node(code)
		if !ok {
			return nil
		}
		for _, ch := range n.Children {
			if err := walk(ch); err != nil {
				return err
			}
		}

		return visit(n)
	}
	for _, r := range f.Roots() {
		if err := walk(r); err != nil {
			return err
		}
	}

	return nil
}

// Flatten returns the pre-order code sequence of the forest.
// A nil forest flattens to nil.
func Flatten(f *core.Forest) []string {
	if f == nil {
		return nil
	}
	order := make([]string, 0, f.Len())
	_ = PreOrder(f, func(n *core.RowNode) error {
		order = append(order, n.Code)
		return nil
	})

	return order
}
