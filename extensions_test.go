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
	"strings"
	"testing"
)

func TestTableExtensionPromotesParagraph(t *testing.T) {
	opts := NewOptions(WithTable())
	p := NewParser(opts)
	p.Feed([]byte("| a | b |\n| --- | --- |\n| 1 | 2 |\n"))
	root := p.Finish()

	kinds := childKinds(root)
	if len(kinds) != 1 || kinds[0] != Table {
		t.Fatalf("children = %v, want [Table]", kinds)
	}
	rows := childKinds(root.FirstChild)
	if len(rows) != 2 {
		t.Fatalf("table has %d rows, want 2 (header + body)", len(rows))
	}
}

func TestTableExtensionDisabledLeavesParagraph(t *testing.T) {
	p := NewParser(Options{})
	p.Feed([]byte("| a | b |\n| --- | --- |\n| 1 | 2 |\n"))
	root := p.Finish()

	kinds := childKinds(root)
	if len(kinds) == 1 && kinds[0] == Table {
		t.Fatal("table syntax promoted to Table even though WithTable was not set")
	}
}

func TestTasklistExtensionMarksCheckedItem(t *testing.T) {
	opts := NewOptions(WithTasklist())
	p := NewParser(opts)
	p.Feed([]byte("- [x] done\n- [ ] not done\n"))
	root := p.Finish()

	list := root.FirstChild
	if list == nil || list.Kind() != List {
		t.Fatalf("root's first child = %v, want List", root)
	}
	items := childKinds(list)
	if len(items) != 2 {
		t.Fatalf("list has %d items, want 2", len(items))
	}

	checkboxLiteral := func(item *Node) string {
		para := item.FirstChild
		if para == nil || para.Kind() != Paragraph {
			t.Fatalf("item's first child = %v, want Paragraph", para)
		}
		box := para.FirstChild
		if box == nil || box.Kind() != HTMLInline {
			t.Fatalf("paragraph's first child = %v, want HTMLInline checkbox", box)
		}
		return box.Data.Value.Literal
	}

	first := list.FirstChild
	if !strings.Contains(checkboxLiteral(first), "checked") {
		t.Errorf("first item's checkbox = %q, want it marked checked", checkboxLiteral(first))
	}
	second := first.Next
	if strings.Contains(checkboxLiteral(second), "checked=\"\"") {
		t.Errorf("second item's checkbox = %q, want it not marked checked", checkboxLiteral(second))
	}
}

func TestAutolinkExtensionRecognizesBareURL(t *testing.T) {
	opts := NewOptions(WithAutolink())
	p := NewParser(opts)
	p.Feed([]byte("see www.example.com for more\n"))
	root := p.Finish()

	var found bool
	Walk(root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if c.Node().Kind() == Link {
				found = true
			}
			return true
		},
	})
	if !found {
		t.Error("autolink extension did not produce a Link node for a bare www. URL")
	}
}
