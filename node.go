// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package commonmark provides a streaming CommonMark/GFM parser.
package commonmark

import "strings"

// Node is a single element of the parsed document tree: a block container,
// a block leaf, or an inline. Nodes form a tree through doubly-linked
// sibling pointers and a non-owning parent back-reference; every Node a
// parser hands out was allocated by an [Arena] and is valid for that
// arena's lifetime.
type Node struct {
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	Data *Ast
}

// Ast is the mutable payload carried by a [Node]. Content is used as a
// write-only accumulator during the block phase; finalization moves it
// into the kind-specific fields of Value (or discards it) and Content is
// reset to empty.
type Ast struct {
	Value NodeValue

	Content strings.Builder

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	Open          bool
	LastLineBlank bool
}

// AppendChild appends child as the last child of n, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	child.Detach()
	child.Parent = n
	if n.LastChild != nil {
		n.LastChild.Next = child
		child.Prev = n.LastChild
		n.LastChild = child
	} else {
		n.FirstChild = child
		n.LastChild = child
	}
}

// InsertBefore inserts sibling immediately before n in n's parent's
// children, detaching sibling from any previous parent first.
func (n *Node) InsertBefore(sibling *Node) {
	sibling.Detach()
	sibling.Parent = n.Parent
	sibling.Prev = n.Prev
	sibling.Next = n
	if n.Prev != nil {
		n.Prev.Next = sibling
	} else if n.Parent != nil {
		n.Parent.FirstChild = sibling
	}
	n.Prev = sibling
}

// InsertAfter inserts sibling immediately after n in n's parent's
// children, detaching sibling from any previous parent first.
func (n *Node) InsertAfter(sibling *Node) {
	sibling.Detach()
	sibling.Parent = n.Parent
	sibling.Next = n.Next
	sibling.Prev = n
	if n.Next != nil {
		n.Next.Prev = sibling
	} else if n.Parent != nil {
		n.Parent.LastChild = sibling
	}
	n.Next = sibling
}

// Detach removes n from its parent's children list. n's own children are
// left intact; n becomes the root of its own (sub)tree.
func (n *Node) Detach() {
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else if n.Parent != nil {
		n.Parent.FirstChild = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else if n.Parent != nil {
		n.Parent.LastChild = n.Prev
	}
	n.Parent = nil
	n.Prev = nil
	n.Next = nil
}

// Kind is a convenience accessor for n.Data.Value.Kind.
func (n *Node) Kind() NodeKind {
	if n == nil || n.Data == nil {
		return 0
	}
	return n.Data.Value.Kind
}

// ChildCount returns the number of children of n.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.Next {
		count++
	}
	return count
}

// Unlink detaches n and frees it (and its subtree) for garbage collection
// by severing its own child pointers. Present for API parity with the
// arena's bulk-release model; under Go's GC this is optional bookkeeping
// rather than a correctness requirement.
func (n *Node) Unlink() {
	n.Detach()
	n.FirstChild = nil
	n.LastChild = nil
}
