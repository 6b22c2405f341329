// Copyright 2024 Ross Light
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

import (
	"reflect"
	"testing"
)

func TestWalkPreOrder(t *testing.T) {
	a := NewArena()
	root := a.NewNode(NodeValue{Kind: Document})
	p1 := a.NewNode(NodeValue{Kind: Paragraph})
	p2 := a.NewNode(NodeValue{Kind: Paragraph})
	t1 := a.NewNode(NodeValue{Kind: Text})
	root.AppendChild(p1)
	root.AppendChild(p2)
	p1.AppendChild(t1)

	var order []NodeKind
	Walk(root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			order = append(order, c.Node().Kind())
			return true
		},
	})

	want := []NodeKind{Document, Paragraph, Text, Paragraph}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("pre-order = %v, want %v", order, want)
	}
}

func TestWalkSkipsChildrenWhenPreReturnsFalse(t *testing.T) {
	a := NewArena()
	root := a.NewNode(NodeValue{Kind: Document})
	p1 := a.NewNode(NodeValue{Kind: Paragraph})
	t1 := a.NewNode(NodeValue{Kind: Text})
	root.AppendChild(p1)
	p1.AppendChild(t1)

	var visited []NodeKind
	Walk(root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			visited = append(visited, c.Node().Kind())
			return c.Node().Kind() != Paragraph
		},
	})

	for _, k := range visited {
		if k == Text {
			t.Error("Walk descended into Paragraph's children after Pre returned false")
		}
	}
}

func TestWalkParentAndIndex(t *testing.T) {
	a := NewArena()
	root := a.NewNode(NodeValue{Kind: Document})
	p1 := a.NewNode(NodeValue{Kind: Paragraph})
	p2 := a.NewNode(NodeValue{Kind: Paragraph})
	root.AppendChild(p1)
	root.AppendChild(p2)

	var gotParent []*Node
	var gotIndex []int
	Walk(root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			gotParent = append(gotParent, c.Parent())
			gotIndex = append(gotIndex, c.Index())
			return true
		},
	})

	if gotParent[0] != nil {
		t.Error("root's parent should be nil")
	}
	if gotParent[1] != root || gotIndex[1] != 0 {
		t.Errorf("p1: parent=%v index=%d, want root,0", gotParent[1], gotIndex[1])
	}
	if gotParent[2] != root || gotIndex[2] != 1 {
		t.Errorf("p2: parent=%v index=%d, want root,1", gotParent[2], gotIndex[2])
	}
}
