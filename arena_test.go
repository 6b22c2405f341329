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

import "testing"

func TestArenaNewNode(t *testing.T) {
	a := NewArena()
	n1 := a.NewNode(NodeValue{Kind: Document})
	n2 := a.NewNode(NodeValue{Kind: Paragraph})
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
	if n1 == n2 {
		t.Error("NewNode returned the same node twice")
	}
	if n1.Kind() != Document {
		t.Errorf("n1.Kind() = %v, want Document", n1.Kind())
	}
}

func TestAppendChild(t *testing.T) {
	a := NewArena()
	root := a.NewNode(NodeValue{Kind: Document})
	c1 := a.NewNode(NodeValue{Kind: Paragraph})
	c2 := a.NewNode(NodeValue{Kind: Paragraph})
	root.AppendChild(c1)
	root.AppendChild(c2)

	if root.FirstChild != c1 {
		t.Error("FirstChild != c1")
	}
	if root.LastChild != c2 {
		t.Error("LastChild != c2")
	}
	if c1.Next != c2 {
		t.Error("c1.Next != c2")
	}
	if c2.Prev != c1 {
		t.Error("c2.Prev != c1")
	}
	if c1.Parent != root || c2.Parent != root {
		t.Error("children's Parent not set to root")
	}
}

func TestDetach(t *testing.T) {
	a := NewArena()
	root := a.NewNode(NodeValue{Kind: Document})
	c1 := a.NewNode(NodeValue{Kind: Paragraph})
	c2 := a.NewNode(NodeValue{Kind: Paragraph})
	c3 := a.NewNode(NodeValue{Kind: Paragraph})
	root.AppendChild(c1)
	root.AppendChild(c2)
	root.AppendChild(c3)

	c2.Detach()

	if root.FirstChild != c1 || root.LastChild != c3 {
		t.Error("detaching middle child changed endpoints")
	}
	if c1.Next != c3 || c3.Prev != c1 {
		t.Error("siblings not relinked after detach")
	}
	if c2.Parent != nil || c2.Next != nil || c2.Prev != nil {
		t.Error("detached node still references tree")
	}
}
