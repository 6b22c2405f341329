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

// childKinds collects the Kind of each direct child of n, in order.
func childKinds(n *Node) []NodeKind {
	var kinds []NodeKind
	for c := n.FirstChild; c != nil; c = c.Next {
		kinds = append(kinds, c.Kind())
	}
	return kinds
}

func TestParseMultiLineParagraph(t *testing.T) {
	root, _ := ParseDocument("line one\nline two\nline three\n")
	kinds := childKinds(root)
	if len(kinds) != 1 || kinds[0] != Paragraph {
		t.Fatalf("children = %v, want single Paragraph", kinds)
	}
	para := root.FirstChild
	if para.Next != nil {
		t.Error("a single three-line paragraph fractured into multiple siblings")
	}
}

func TestParseTwoParagraphsSeparatedByBlankLine(t *testing.T) {
	root, _ := ParseDocument("first\n\nsecond\n")
	kinds := childKinds(root)
	if len(kinds) != 2 || kinds[0] != Paragraph || kinds[1] != Paragraph {
		t.Fatalf("children = %v, want [Paragraph Paragraph]", kinds)
	}
}

func TestThematicBreakClosesImmediately(t *testing.T) {
	root, _ := ParseDocument("foo\n\n***\n\nbar\n")
	kinds := childKinds(root)
	want := []NodeKind{Paragraph, ThematicBreak, Paragraph}
	if len(kinds) != len(want) {
		t.Fatalf("children = %v, want %v", kinds, want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("children[%d] = %v, want %v", i, kinds[i], k)
		}
	}
	tb := root.FirstChild.Next
	if tb.Data.Open {
		t.Error("ThematicBreak left open after being parsed")
	}
}

func TestATXHeadingClosesImmediately(t *testing.T) {
	root, _ := ParseDocument("# Title\n\nbody\n")
	kinds := childKinds(root)
	if len(kinds) != 2 || kinds[0] != Heading || kinds[1] != Paragraph {
		t.Fatalf("children = %v, want [Heading Paragraph]", kinds)
	}
	h := root.FirstChild
	if h.Data.Open {
		t.Error("Heading left open after being parsed")
	}
	if h.Data.Value.Level != 1 {
		t.Errorf("Level = %d, want 1", h.Data.Value.Level)
	}
}

func TestFeedAcrossChunkBoundaries(t *testing.T) {
	p := NewParser(Options{})
	p.Feed([]byte("foo ba"))
	p.Feed([]byte("r\n\nbaz\n"))
	root := p.Finish()
	kinds := childKinds(root)
	if len(kinds) != 2 || kinds[0] != Paragraph || kinds[1] != Paragraph {
		t.Fatalf("children = %v, want [Paragraph Paragraph]", kinds)
	}
}

func TestBlockQuoteContainsParagraph(t *testing.T) {
	root, _ := ParseDocument("> quoted\n> text\n")
	kinds := childKinds(root)
	if len(kinds) != 1 || kinds[0] != BlockQuote {
		t.Fatalf("children = %v, want [BlockQuote]", kinds)
	}
	bq := root.FirstChild
	inner := childKinds(bq)
	if len(inner) != 1 || inner[0] != Paragraph {
		t.Fatalf("blockquote children = %v, want [Paragraph]", inner)
	}
}

func TestListItemsGrouped(t *testing.T) {
	root, _ := ParseDocument("- one\n- two\n- three\n")
	kinds := childKinds(root)
	if len(kinds) != 1 || kinds[0] != List {
		t.Fatalf("children = %v, want [List]", kinds)
	}
	items := childKinds(root.FirstChild)
	if len(items) != 3 {
		t.Fatalf("list has %d items, want 3", len(items))
	}
	for _, k := range items {
		if k != Item {
			t.Errorf("item kind = %v, want Item", k)
		}
	}
}
