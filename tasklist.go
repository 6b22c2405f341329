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

// The GFM task list extension
// (https://github.github.com/gfm/#task-list-items-extension-): a
// post-process over finalized Item nodes that strips a leading
// "[ ]"/"[x]"/"[X]" checkbox marker from the item's first paragraph and
// replaces it with an HTMLInline checkbox, mirroring the way
// applyAutolinkExtension post-processes finalized Text nodes in
// autolink.go.

package commonmark

import "strings"

// applyTasklistExtension walks root's subtree, converting list items that
// begin with a checkbox marker.
func applyTasklistExtension(arena *Arena, root *Node) {
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind() == Item {
			convertTasklistItem(arena, n)
		}
		for child := n.FirstChild; child != nil; child = child.Next {
			walk(child)
		}
	}
	walk(root)
}

func convertTasklistItem(arena *Arena, item *Node) {
	para := item.FirstChild
	if para == nil || para.Kind() != Paragraph {
		return
	}
	firstInline := para.FirstChild
	if firstInline == nil || firstInline.Kind() != Text {
		return
	}
	checked, rest, ok := scanTaskMarker(firstInline.Data.Value.Literal)
	if !ok {
		return
	}

	checkbox := arena.NewNode(NodeValue{Kind: HTMLInline, Literal: checkboxHTML(checked)})
	firstInline.InsertBefore(checkbox)
	if rest == "" {
		firstInline.Detach()
	} else {
		firstInline.Data.Value.Literal = rest
	}
}

// scanTaskMarker recognizes a checkbox marker "[ ]", "[x]", or "[X]"
// followed by a space at the start of s.
func scanTaskMarker(s string) (checked bool, rest string, ok bool) {
	if !strings.HasPrefix(s, "[") || len(s) < 3 {
		return false, s, false
	}
	switch s[1] {
	case ' ':
		checked = false
	case 'x', 'X':
		checked = true
	default:
		return false, s, false
	}
	if s[2] != ']' {
		return false, s, false
	}
	if len(s) < 4 || !isSpaceOrTab(s[3]) {
		return false, s, false
	}
	// The separator space is part of the item's literal content, not the
	// marker: only "[ ]"/"[x]" is replaced by the checkbox.
	return checked, s[3:], true
}

func checkboxHTML(checked bool) string {
	if checked {
		return `<input type="checkbox" disabled="" checked="" />`
	}
	return `<input type="checkbox" disabled="" />`
}
