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

package commonmark

// An Arena owns every [Node] produced while parsing a single document.
// Nodes are never freed individually; the whole arena (and every node it
// ever handed out) becomes eligible for garbage collection together once
// nothing references it anymore. Arena is not safe for concurrent use by
// multiple goroutines, matching the single-threaded, sequential-per-document
// model the parser requires.
type Arena struct {
	nodes []*Node
}

// NewArena returns a new, empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewNode allocates a new [Node] with the given value and returns it. The
// returned node has no parent, children, or siblings.
func (a *Arena) NewNode(value NodeValue) *Node {
	n := &Node{
		Data: &Ast{
			Value: value,
			Open:  true,
		},
	}
	a.nodes = append(a.nodes, n)
	return n
}

// Len returns the number of nodes the arena has allocated.
func (a *Arena) Len() int {
	return len(a.nodes)
}
