// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tree converts flat parent-pointer collections into nested trees
// for navigation menus, breadcrumbs, and admin dropdowns. The builder is
// general-purpose and depth-agnostic; the two-level limit on categories is
// a business rule enforced upstream by the handlers.
package tree

import "log/slog"

// Noder is implemented by entities that carry an ID and an optional
// parent reference.
type Noder interface {
	TreeID() string
	TreeParentID() (id string, ok bool)
}

// Node wraps one entity together with its resolved children.
type Node[T Noder] struct {
	Item     T          `json:"item"`
	Children []*Node[T] `json:"children"`
	Depth    int        `json:"depth"`
}

// Build assembles a forest from a flat list in two passes: first an
// id→node lookup with empty children, then parent attachment. An entity
// whose parent is not present in the input is treated as a root rather
// than an error, so a partially loaded collection still renders.
//
// Parent chains that loop back on themselves are broken by promoting the
// cycle's members to roots. Every input item therefore appears in the
// output exactly once, and children keep the relative order of the input.
func Build[T Noder](items []T) []*Node[T] {
	lookup := make(map[string]*Node[T], len(items))
	ordered := make([]*Node[T], 0, len(items))
	for _, item := range items {
		n := &Node[T]{Item: item}
		lookup[item.TreeID()] = n
		ordered = append(ordered, n)
	}

	var roots []*Node[T]
	for _, n := range ordered {
		parentID, ok := n.Item.TreeParentID()
		if !ok {
			roots = append(roots, n)
			continue
		}
		parent, found := lookup[parentID]
		if !found || parentID == n.Item.TreeID() {
			// Dangling parent reference (or self-loop): keep the node
			// visible as a root instead of dropping it.
			roots = append(roots, n)
			continue
		}
		if inCycle(n, lookup) {
			slog.Warn("tree: parent cycle detected, promoting to root", "id", n.Item.TreeID())
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	for _, r := range roots {
		setDepth(r, 0)
	}
	return roots
}

// inCycle walks the parent chain from n and reports whether it returns to
// n before terminating at a root or a dangling reference. Every member of
// a cycle tests positive and is promoted to root; descendants hanging off
// a cycle member stay attached beneath it.
func inCycle[T Noder](n *Node[T], lookup map[string]*Node[T]) bool {
	start := n.Item.TreeID()
	seen := map[string]bool{start: true}
	cur := n
	for {
		parentID, ok := cur.Item.TreeParentID()
		if !ok {
			return false
		}
		next, found := lookup[parentID]
		if !found {
			return false
		}
		if parentID == start {
			return true
		}
		if seen[parentID] {
			// A cycle exists upstream but does not include n; its own
			// members are the ones promoted.
			return false
		}
		seen[parentID] = true
		cur = next
	}
}

// setDepth stamps depth on a subtree, root = 0.
func setDepth[T Noder](n *Node[T], depth int) {
	n.Depth = depth
	for _, c := range n.Children {
		setDepth(c, depth+1)
	}
}

// Count returns the total number of nodes in the forest.
func Count[T Noder](roots []*Node[T]) int {
	total := 0
	for _, r := range roots {
		total += 1 + Count(r.Children)
	}
	return total
}

// Flatten walks the forest depth-first and returns the items in display
// order with Depth available on the nodes. Useful for <select> dropdowns
// that indent children under their parent.
func Flatten[T Noder](roots []*Node[T]) []*Node[T] {
	var out []*Node[T]
	for _, r := range roots {
		out = append(out, r)
		out = append(out, Flatten(r.Children)...)
	}
	return out
}
