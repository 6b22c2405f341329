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

// The block parser
// (https://spec.commonmark.org/0.30/#appendix-a-parsing-strategy): one
// line at a time, (A) walk the currently open containers checking each
// one's continuation rule, (B) try to open new blocks at whatever
// container the walk stopped at, then (C) either append text to a
// now-open leaf or start a new paragraph. The three-phase structure and
// the "tip"/"open blocks" vocabulary follow the teacher's
// (zombiezen.com/go/commonmark) blocks.go lineParser, adapted from its
// span/offset cursor to plain Go strings since this engine buffers whole
// lines before dispatch rather than re-walking byte spans.

package commonmark

import "strings"

// Parser incrementally builds a document tree from fed-in source text. It
// implements the streaming contract: Feed may be called any number of
// times with arbitrary chunk boundaries, and the tree is only finalized
// by Finish.
type Parser struct {
	arena *Arena
	opts  Options
	refs  *referenceMap

	root *Node
	tip  *Node

	pending    strings.Builder // bytes not yet split into a complete line
	lineNumber int
}

// NewParser creates a Parser configured by opts.
func NewParser(opts Options) *Parser {
	arena := NewArena()
	root := arena.NewNode(NodeValue{Kind: Document})
	root.Data.StartLine = 1
	return &Parser{
		arena: arena,
		opts:  opts,
		refs:  newReferenceMap(),
		root:  root,
		tip:   root,
	}
}

// Feed appends chunk to the parser's input, processing every complete
// line it contains. Bytes after the last line ending are buffered until
// the next Feed call or Finish.
func (p *Parser) Feed(chunk []byte) {
	p.pending.Write(chunk)
	buf := p.pending.String()
	start := 0
	for i := 0; i < len(buf); i++ {
		if buf[i] != '\n' {
			continue
		}
		end := i + 1
		line := buf[start:end]
		if strings.HasSuffix(line, "\r\n") {
			line = line[:len(line)-2] + "\n"
		}
		p.processLine(line)
		start = end
	}
	p.pending.Reset()
	p.pending.WriteString(buf[start:])
}

// Finish processes any buffered partial last line, closes every
// remaining open block, runs inline parsing over every leaf that accepts
// inlines, applies enabled GFM extensions, and returns the finished
// Document node.
func (p *Parser) Finish() *Node {
	if p.pending.Len() > 0 {
		line := normalizeLineEnding(p.pending.String())
		p.processLine(line)
		p.pending.Reset()
	}
	p.closeBlock(p.root, p.lineNumber)
	finalizeDocument(p.arena, p.root, p.refs, &p.opts)
	return p.root
}

// Arena returns the arena backing this parser's nodes.
func (p *Parser) Arena() *Arena {
	return p.arena
}

func normalizeLineEnding(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// ParseDocument is the non-streaming convenience entry point: it feeds
// all of text at once and finishes.
func ParseDocument(text string, opts ...Option) (*Node, *Arena) {
	o := NewOptions(opts...)
	p := NewParser(o)
	p.Feed([]byte(text))
	root := p.Finish()
	return root, p.arena
}

// line holds the per-line parse cursor: the raw text (line ending
// included) and the current byte offset and column, accounting for tab
// expansion to 4-column stops.
type line struct {
	text       string
	offset     int
	column     int
	lineNumber int
}

func newLine(text string, lineNumber int) *line {
	return &line{text: text, lineNumber: lineNumber}
}

func (l *line) rest() string {
	return l.text[l.offset:]
}

func (l *line) isBlank() bool {
	return isBlankLine(l.rest())
}

// advance moves the cursor forward by n raw bytes (no tabs inside n).
func (l *line) advance(n int) {
	for i := 0; i < n && l.offset < len(l.text); i++ {
		if l.text[l.offset] == '\t' {
			l.column += 4 - l.column%4
		} else {
			l.column++
		}
		l.offset++
	}
}

// indentWidth returns the column-width of the run of spaces/tabs at the
// cursor, without consuming it.
func (l *line) indentWidth() int {
	col := l.column
	for i := l.offset; i < len(l.text); i++ {
		switch l.text[i] {
		case ' ':
			col++
		case '\t':
			col += 4 - col%4
		default:
			return col - l.column
		}
	}
	return col - l.column
}

// advanceIndent consumes up to width columns of leading whitespace.
func (l *line) advanceIndent(width int) {
	consumed := 0
	for consumed < width && l.offset < len(l.text) {
		c := l.text[l.offset]
		if c != ' ' && c != '\t' {
			break
		}
		step := 1
		if c == '\t' {
			step = 4 - l.column%4
		}
		consumed += step
		l.column += step
		l.offset++
	}
}

func (l *line) skipAllIndent() {
	l.advanceIndent(1 << 30)
}

// processLine runs the three-phase algorithm for one line of input.
func (p *Parser) processLine(text string) {
	p.lineNumber++
	ln := newLine(text, p.lineNumber)

	// Phase A: walk down the currently open container blocks (List is
	// transparent, BlockQuote/Item each have a continuation rule that may
	// consume part of the line), stopping at the first leaf or mismatch.
	container := p.root
	matchedAll := true
	for {
		last := container.LastChild
		if last == nil || !last.Data.Open {
			break
		}
		switch last.Kind() {
		case List:
			container = last
		case BlockQuote, Item:
			if !continueContainer(last, ln) {
				matchedAll = false
				goto stopPhaseA
			}
			container = last
		default:
			if last.Kind() == Paragraph && ln.isBlank() {
				// A blank line does not continue a paragraph.
				matchedAll = false
			}
			goto stopPhaseA
		}
	}
stopPhaseA:

	// If the currently open leaf (the tip) hangs directly off container,
	// its own continuation rule (fenced/indented code, HTML block) takes
	// priority over trying to open anything new.
	if matchedAll && p.tip.Parent == container {
		switch p.tip.Kind() {
		case CodeBlock:
			v := &p.tip.Data.Value
			if v.Fenced {
				if isClosingFenceLine(v, ln) {
					p.closeBlock(p.tip, ln.lineNumber)
					p.tip = container
					return
				}
				consumeFenceIndent(v, ln)
				appendRawLine(p.tip, ln)
				return
			}
			if ln.isBlank() {
				appendRawLine(p.tip, ln)
				return
			}
			if ln.indentWidth() >= 4 {
				ln.advanceIndent(4)
				appendRawLine(p.tip, ln)
				return
			}
			// Indentation ran out: the code block ends here, and this
			// (non-blank, non-indented) line falls through to phase B as an
			// ordinary line.
			p.closeBlock(p.tip, ln.lineNumber-1)
			p.tip = container
		case HTMLBlock:
			ended := htmlBlockEnd(p.tip.Data.Value.HTMLBlockType, ln.rest())
			appendRawLine(p.tip, ln)
			if ended {
				p.closeBlock(p.tip, ln.lineNumber)
				p.tip = container
			}
			return
		}
	}

	allClosed := matchedAll && container == deepestContainerOf(p.tip)

	// Close anything still open below container that phase A didn't
	// match, except when the tip is a paragraph eligible for lazy
	// continuation into container. When the unmatched block is an Item,
	// its List stays open and phase B starts at the List's parent, so a
	// following marker can add a sibling item to that List.
	if !allClosed {
		if canLazilyContinue(container, p.tip, ln) {
			appendParagraphLine(p.tip, ln)
			return
		}
		if last := container.LastChild; last != nil && last.Data.Open {
			p.closeBlock(last, ln.lineNumber-1)
		}
		if container.Kind() == List {
			container = container.Parent
		}
	}

	// Phase B: try to open new blocks at container.
	for {
		if ln.isBlank() {
			break
		}
		opened, newContainer := tryOpenBlock(p.arena, container, ln, &p.opts)
		if !opened {
			break
		}
		container = newContainer
		if isSingleLineLeaf(container) {
			parent := container.Parent
			p.closeBlock(container, ln.lineNumber)
			p.tip = parent
			return
		}
		if !container.Kind().IsContainer() {
			// Opened a leaf that spans further lines (paragraph, code
			// block, HTML block): stop trying to open further containers
			// this line, and let phase C append to it below.
			break
		}
	}

	p.tip = container

	switch {
	case ln.isBlank():
		markBlankLine(container, ln.lineNumber)
	case container.Kind() == CodeBlock, container.Kind() == HTMLBlock:
		appendRawLine(container, ln)
	case container.Kind() == Paragraph:
		appendParagraphLine(container, ln)
	case container.Kind().IsContainer():
		if last := container.LastChild; last != nil && last.Data.Open && last.Kind() == Paragraph {
			// tryOpenBlock declined to open anything because container's
			// last child is already an open paragraph that this line
			// simply continues.
			p.tip = last
			appendParagraphLine(last, ln)
			break
		}
		// A container with no matching leaf this line (e.g. an empty list
		// item so far): open a paragraph to hold upcoming text.
		para := p.arena.NewNode(NodeValue{Kind: Paragraph})
		para.Data.StartLine = ln.lineNumber
		container.AppendChild(para)
		p.tip = para
		appendParagraphLine(para, ln)
	}
}

// closeBlock finalizes block and every open descendant, deepest first.
func (p *Parser) closeBlock(block *Node, endLine int) {
	for child := block.FirstChild; child != nil; child = child.Next {
		if child.Data.Open {
			p.closeBlock(child, endLine)
		}
	}
	if !block.Data.Open {
		return
	}
	block.Data.Open = false
	block.Data.EndLine = endLine
	finalizeBlock(p.arena, block, p.refs, &p.opts)
}

func markBlankLine(container *Node, lineNumber int) {
	container.Data.LastLineBlank = true
	for b := container; b != nil; b = b.Parent {
		if b.Kind() == Item && b.LastChild == nil {
			b.Data.LastLineBlank = true
		}
	}
}
