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

// Block finalization: the per-kind cleanup that runs once a block is
// known to have no more continuation lines (paragraph reference-definition
// stripping and table promotion, code block literal trimming, list
// tightness), plus the document-level pass that runs the inline grammar
// over every leaf that accepts it and layers on the enabled GFM
// extensions. Grounded on the teacher's (zombiezen.com/go/commonmark)
// blocks.go onCloseParagraph, generalized to the richer node set.

package commonmark

import "strings"

// appendRawLine appends ln's remaining (already indent-stripped) text,
// including its line ending, to node's raw content accumulator.
func appendRawLine(node *Node, ln *line) {
	node.Data.Content.WriteString(ln.rest())
}

// appendParagraphLine appends ln's remaining text to node's paragraph
// content accumulator, trimming the line's own leading/trailing
// whitespace and line ending, joining multiple lines with '\n'.
func appendParagraphLine(node *Node, ln *line) {
	text := strings.TrimRight(ln.rest(), "\r\n")
	text = trimLeftSpaceTab(text)
	if node.Data.Content.Len() > 0 {
		node.Data.Content.WriteByte('\n')
	}
	node.Data.Content.WriteString(text)
}

// finalizeBlock runs the per-kind cleanup for block once it is known to
// be closed.
func finalizeBlock(arena *Arena, block *Node, refs *referenceMap, opts *Options) {
	switch block.Kind() {
	case Paragraph:
		finalizeParagraph(arena, block, refs, opts)
	case CodeBlock:
		finalizeCodeBlock(block)
	case HTMLBlock:
		block.Data.Value.Literal = block.Data.Content.String()
	case List:
		finalizeList(block)
	}
}

func finalizeParagraph(arena *Arena, block *Node, refs *referenceMap, opts *Options) {
	content := block.Data.Content.String()

	if opts.ExtTable {
		lines := strings.Split(content, "\n")
		if len(lines) >= 2 && looksLikeTableDelimiterRow(lines[1]) {
			if table, ok := tryBuildTable(arena, lines, refs, opts); ok {
				replaceNodeInPlace(block, table)
				return
			}
		}
	}

	rest, defs := extractReferenceDefinitions(content, refs)
	for _, d := range defs {
		refNode := arena.NewNode(NodeValue{Kind: LinkReferenceDefinition, Label: d.label, URL: d.url, Title: d.title})
		block.InsertBefore(refNode)
	}

	if strings.TrimSpace(rest) == "" {
		block.Detach()
		return
	}
	block.Data.Content.Reset()
	block.Data.Content.WriteString(rest)
}

func finalizeCodeBlock(block *Node) {
	v := &block.Data.Value
	if v.Fenced {
		v.Literal = block.Data.Content.String()
		return
	}
	literal := block.Data.Content.String()
	lines := strings.Split(literal, "\n")
	end := len(lines)
	for end > 0 && strings.TrimRight(lines[end-1], "\r") == "" {
		end--
	}
	v.Literal = strings.Join(lines[:end], "\n")
	if v.Literal != "" && !strings.HasSuffix(v.Literal, "\n") {
		v.Literal += "\n"
	}
}

// finalizeList computes list tightness: a list is tight unless any of
// its items (other than possibly the last) is followed by a blank line
// before the next item, or any item has internal blank lines between its
// own block children, per
// https://spec.commonmark.org/0.30/#tight.
func finalizeList(list *Node) {
	tight := true
	for item := list.FirstChild; item != nil && tight; item = item.Next {
		if item.Next != nil && item.Data.LastLineBlank {
			tight = false
			break
		}
		for child := item.FirstChild; child != nil && child.Next != nil; child = child.Next {
			if child.Data.LastLineBlank {
				tight = false
				break
			}
		}
	}
	list.Data.Value.List.Tight = tight
	for item := list.FirstChild; item != nil; item = item.Next {
		item.Data.Value.List.Tight = tight
	}
}

// replaceNodeInPlace swaps old's kind/payload and children for
// replacement's, keeping old's identity (and thus its position among
// siblings) intact.
func replaceNodeInPlace(old, replacement *Node) {
	old.Data.Value = replacement.Data.Value
	for child := replacement.FirstChild; child != nil; {
		next := child.Next
		child.Detach()
		old.AppendChild(child)
		child = next
	}
}

// finalizeDocument runs after every block is closed: it walks the tree
// running the inline grammar over every node whose kind accepts inlines,
// then applies whichever GFM extensions opts enables.
func finalizeDocument(arena *Arena, root *Node, refs *referenceMap, opts *Options) {
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind().AcceptsInlines() {
			text := n.Data.Content.String()
			n.Data.Content.Reset()
			parseInlines(arena, n, text, refs, opts)
		}
		for child := n.FirstChild; child != nil; child = child.Next {
			walk(child)
		}
	}
	walk(root)

	if opts.ExtAutolink {
		applyAutolinkExtension(arena, root)
	}
	if opts.ExtTasklist {
		applyTasklistExtension(arena, root)
	}
}
