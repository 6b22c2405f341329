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

// Phase B of the block parser (https://spec.commonmark.org/0.30/#phase-1-block-structure-1):
// given the deepest container phase A matched, try each block-start rule
// in CommonMark's fixed priority order and open the first that matches.
// Priority order and per-rule indentation bookkeeping are grounded on the
// teacher's (zombiezen.com/go/commonmark) blocks.go blockRules table.

package commonmark

import "strings"

// tryOpenBlock attempts to open one new block as a child of container at
// the current position of ln. On success it returns the newly opened
// node (a container to keep descending into, or a leaf to stop at).
func tryOpenBlock(arena *Arena, container *Node, ln *line, opts *Options) (bool, *Node) {
	indent := ln.indentWidth()

	// An indented code block cannot interrupt a paragraph and requires no
	// other block start take priority first, so the other seven rules are
	// tried before it.
	if indent < 4 {
		ln.advanceIndent(indent)

		if container.LastChild != nil && container.LastChild.Data.Open && container.LastChild.Kind() == Paragraph {
			if level := scanSetextHeadingUnderline(ln.rest()); level > 0 {
				para := container.LastChild
				para.Data.Value.Kind = Heading
				para.Data.Value.Level = level
				para.Data.Value.Setext = true
				ln.advance(len(ln.rest()))
				return true, para
			}
		}

		if n := scanThematicBreak(ln.rest()); n >= 0 {
			tb := arena.NewNode(NodeValue{Kind: ThematicBreak})
			tb.Data.StartLine = ln.lineNumber
			container.AppendChild(tb)
			ln.advance(len(ln.rest()))
			return true, tb
		}

		if h := scanATXHeadingStart(ln.rest()); h.level > 0 {
			heading := arena.NewNode(NodeValue{Kind: Heading, Level: h.level})
			heading.Data.StartLine = ln.lineNumber
			container.AppendChild(heading)
			content := chopTrailingHashtags(strings.TrimRight(ln.rest()[h.contentStart:], "\r\n"))
			heading.Data.Content.WriteString(content)
			ln.advance(len(ln.rest()))
			return true, heading
		}

		if ln.rest() != "" && ln.rest()[0] == '>' {
			bq := arena.NewNode(NodeValue{Kind: BlockQuote})
			bq.Data.StartLine = ln.lineNumber
			container.AppendChild(bq)
			ln.advance(1)
			if ln.offset < len(ln.text) && isSpaceOrTab(ln.text[ln.offset]) {
				ln.advance(1)
			}
			return true, bq
		}

		if m := scanListMarker(ln.rest()); m.end >= 0 && markerCanOpenList(m, container, ln) {
			_, item := openListItem(arena, container, m, ln)
			return true, item
		}

		if f := scanCodeFenceStart(ln.rest()); f.length > 0 {
			cb := arena.NewNode(NodeValue{Kind: CodeBlock, Fenced: true, FenceChar: f.char, FenceLength: f.length, FenceOffset: indent})
			if f.hasInfo {
				cb.Data.Value.Info = unescapeString(collapseWhitespace(ln.rest()[f.infoStart:f.infoEnd]))
			}
			cb.Data.StartLine = ln.lineNumber
			container.AppendChild(cb)
			ln.advance(len(ln.rest()))
			return true, cb
		}

		inParagraph := container.LastChild != nil && container.LastChild.Data.Open && container.LastChild.Kind() == Paragraph
		if num := htmlBlockStart(ln.rest(), inParagraph); num > 0 {
			hb := arena.NewNode(NodeValue{Kind: HTMLBlock, HTMLBlockType: num})
			hb.Data.StartLine = ln.lineNumber
			container.AppendChild(hb)
			return true, hb
		}
	}

	if indent >= 4 {
		inParagraph := container.LastChild != nil && container.LastChild.Data.Open && container.LastChild.Kind() == Paragraph
		if !inParagraph {
			ln.advanceIndent(4)
			cb := arena.NewNode(NodeValue{Kind: CodeBlock})
			cb.Data.StartLine = ln.lineNumber
			container.AppendChild(cb)
			return true, cb
		}
	}

	// Paragraph: the fallback leaf, opened only when nothing above matched
	// and the line is non-blank (callers only reach here for non-blank
	// lines).
	if container.LastChild == nil || !container.LastChild.Data.Open || container.LastChild.Kind() != Paragraph {
		para := arena.NewNode(NodeValue{Kind: Paragraph})
		para.Data.StartLine = ln.lineNumber
		container.AppendChild(para)
		return true, para
	}

	return false, nil
}

// isSingleLineLeaf reports whether node's kind is fully described by the
// line that opened it and has no continuation rule of its own: a
// thematic break, an ATX heading (content already captured at open
// time), or a setext heading (the underline line itself carries no
// further content). Such a node must be closed immediately after phase B
// opens it, since nothing later in processLine's per-line dispatch would
// otherwise ever close it.
func isSingleLineLeaf(node *Node) bool {
	switch node.Kind() {
	case ThematicBreak:
		return true
	case Heading:
		return true
	default:
		return false
	}
}

// markerCanOpenList reports whether a scanned list marker is allowed to
// open a new list item here: in particular, an ordered list marker can
// only interrupt an open paragraph if its start number is 1.
func markerCanOpenList(m listMarker, container *Node, ln *line) bool {
	inParagraph := container.LastChild != nil && container.LastChild.Data.Open && container.LastChild.Kind() == Paragraph
	if !inParagraph {
		return true
	}
	if !m.isOrdered() {
		return true
	}
	return m.num == 1
}

// openListItem opens (or reuses) the List container holding a new Item
// for marker m, and returns both.
func openListItem(arena *Arena, container *Node, m listMarker, ln *line) (*Node, *Node) {
	markerOffset := ln.column
	ln.advance(m.end)
	padding := 1
	contentIndent := ln.indentWidth()
	if contentIndent >= 1 && contentIndent <= 4 {
		padding = contentIndent
	} else if contentIndent > 4 {
		padding = 1
	} else {
		// No space after marker at end of line: padding is 1 by convention.
		padding = 1
	}
	ln.advanceIndent(padding)

	listType := BulletList
	var delim ListDelimiter
	if m.isOrdered() {
		listType = OrderedList
		if m.delim == ')' {
			delim = ParenDelimiter
		}
	}

	needNewList := true
	var list *Node
	if last := container.LastChild; last != nil && last.Data.Open && last.Kind() == List {
		lv := &last.Data.Value.List
		if lv.ListType == listType && lv.BulletChar == m.delim {
			list = last
			needNewList = false
		}
	}
	if needNewList {
		list = arena.NewNode(NodeValue{Kind: List, List: NodeList{
			ListType: listType, MarkerOffset: markerOffset, Start: m.num,
			Delimiter: delim, BulletChar: m.delim, Tight: true,
		}})
		list.Data.StartLine = ln.lineNumber
		container.AppendChild(list)
	}

	item := arena.NewNode(NodeValue{Kind: Item, List: list.Data.Value.List})
	item.Data.StartLine = ln.lineNumber
	// StartColumn on an Item doubles as "columns of indent a continuation
	// line must have, counted from where this item's marker began".
	item.Data.StartColumn = ln.column - markerOffset
	list.AppendChild(item)
	return list, item
}

// wouldInterruptParagraph reports whether ln (a copy; detection never
// mutates the caller's cursor) would start one of the block kinds
// permitted to interrupt an open paragraph, per
// https://spec.commonmark.org/0.30/#paragraphs. It is the read-only twin
// of tryOpenBlock's container-start checks, used to decide whether an
// unmatched line is a lazy continuation of that paragraph instead.
func wouldInterruptParagraph(ln line) bool {
	indent := ln.indentWidth()
	if indent >= 4 {
		return false
	}
	ln.advanceIndent(indent)
	rest := ln.rest()
	if rest == "" {
		return false
	}
	if n := scanThematicBreak(rest); n >= 0 {
		return true
	}
	if h := scanATXHeadingStart(rest); h.level > 0 {
		return true
	}
	if rest[0] == '>' {
		return true
	}
	if m := scanListMarker(rest); m.end >= 0 {
		if !m.isOrdered() || m.num == 1 {
			return true
		}
	}
	if f := scanCodeFenceStart(rest); f.length > 0 {
		return true
	}
	if num := htmlBlockStart(rest, true); num > 0 {
		return true
	}
	return false
}
