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

// Package format renders a parsed document tree back to CommonMark
// source, synthesized from the tree's own fields (heading level, list
// marker, link destination, and so on) rather than by re-slicing the
// original source text. Block/inline dispatch and the stack-of-frames
// traversal technique follow the teacher's
// (zombiezen.com/go/commonmark) format/format.go, adapted from spans
// over original source bytes to the new Node tree's own payload fields.
package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/cmark-go/commonmark"
)

// Format writes root as CommonMark source to w.
func Format(w io.Writer, root *commonmark.Node) error {
	ww := &errWriter{w: w}
	f := &formatter{w: ww}
	f.blockChildren(root, 0)
	return ww.err
}

type formatter struct {
	w *errWriter
}

func (f *formatter) blockChildren(parent *commonmark.Node, indent int) {
	first := true
	for c := parent.FirstChild; c != nil; c = c.Next {
		if !first {
			f.w.WriteString("\n")
		}
		first = false
		f.block(c, indent)
	}
}

func (f *formatter) block(n *commonmark.Node, indent int) {
	switch n.Kind() {
	case commonmark.Paragraph:
		f.writeIndent(indent)
		f.inlineChildren(n)
		f.w.WriteString("\n")
	case commonmark.ThematicBreak:
		f.writeIndent(indent)
		f.w.WriteString("---\n")
	case commonmark.Heading:
		f.writeIndent(indent)
		f.w.WriteString(strings.Repeat("#", n.Data.Value.Level))
		f.w.WriteString(" ")
		f.inlineChildren(n)
		f.w.WriteString("\n")
	case commonmark.CodeBlock:
		v := &n.Data.Value
		f.writeIndent(indent)
		if v.Fenced {
			fence := strings.Repeat(string(v.FenceChar), max3(v.FenceLength, 3))
			f.w.WriteString(fence)
			f.w.WriteString(v.Info)
			f.w.WriteString("\n")
			f.writeIndentedLiteral(v.Literal, indent)
			f.writeIndent(indent)
			f.w.WriteString(fence)
			f.w.WriteString("\n")
		} else {
			f.writeIndentedLiteral(indentEachLine(v.Literal, "    "), indent)
		}
	case commonmark.BlockQuote:
		f.writeIndent(indent)
		f.w.WriteString(">\n")
		for c := n.FirstChild; c != nil; c = c.Next {
			f.blockQuoted(c, indent)
		}
	case commonmark.List:
		f.blockChildren(n, indent)
	case commonmark.Item:
		f.listItem(n, indent)
	case commonmark.Table:
		f.table(n, indent)
	case commonmark.HTMLBlock:
		f.writeIndentedLiteral(n.Data.Value.Literal, indent)
	case commonmark.LinkReferenceDefinition:
		v := &n.Data.Value
		f.writeIndent(indent)
		f.w.WriteString("[")
		f.w.WriteString(v.Label)
		f.w.WriteString("]: ")
		f.w.WriteString(v.URL)
		if v.Title != "" {
			f.w.WriteString(` "`)
			f.w.WriteString(v.Title)
			f.w.WriteString(`"`)
		}
		f.w.WriteString("\n")
	}
}

// blockQuoted renders a child block prefixed with "> " on every line, by
// formatting into a throwaway buffer and re-indenting it.
func (f *formatter) blockQuoted(n *commonmark.Node, indent int) {
	var buf strings.Builder
	inner := &formatter{w: &errWriter{w: &buf}}
	inner.block(n, 0)
	for _, line := range strings.SplitAfter(buf.String(), "\n") {
		if line == "" {
			continue
		}
		f.writeIndent(indent)
		f.w.WriteString("> ")
		f.w.WriteString(line)
	}
}

func (f *formatter) listItem(item *commonmark.Node, indent int) {
	v := &item.Data.Value.List
	var marker string
	if v.ListType == commonmark.OrderedList {
		delim := "."
		if v.Delimiter == commonmark.ParenDelimiter {
			delim = ")"
		}
		marker = strconv.Itoa(v.Start) + delim
	} else {
		marker = string(v.BulletChar)
	}
	f.writeIndent(indent)
	f.w.WriteString(marker)
	f.w.WriteString(" ")
	childIndent := indent + len(marker) + 1

	first := true
	for c := item.FirstChild; c != nil; c = c.Next {
		if !first {
			f.w.WriteString("\n")
			f.writeIndent(childIndent)
		}
		first = false
		if c == item.FirstChild {
			// First child's own leading indent was already written above
			// as part of the marker line.
			f.blockNoLeadIndent(c, childIndent)
		} else {
			f.block(c, childIndent)
		}
	}
	f.w.WriteString("\n")
}

// blockNoLeadIndent renders n like block, but without writing n's own
// leading indent (the caller already positioned the cursor after a list
// marker).
func (f *formatter) blockNoLeadIndent(n *commonmark.Node, indent int) {
	switch n.Kind() {
	case commonmark.Paragraph:
		f.inlineChildren(n)
		f.w.WriteString("\n")
	default:
		f.block(n, indent)
	}
}

func (f *formatter) table(table *commonmark.Node, indent int) {
	aligns := table.Data.Value.Alignments
	row := table.FirstChild
	if row == nil {
		return
	}
	f.tableRow(row, indent)
	f.writeIndent(indent)
	f.w.WriteString("|")
	for _, a := range aligns {
		switch a {
		case commonmark.AlignLeft:
			f.w.WriteString(" :--- |")
		case commonmark.AlignCenter:
			f.w.WriteString(" :---: |")
		case commonmark.AlignRight:
			f.w.WriteString(" ---: |")
		default:
			f.w.WriteString(" --- |")
		}
	}
	f.w.WriteString("\n")
	for row = row.Next; row != nil; row = row.Next {
		f.tableRow(row, indent)
	}
}

func (f *formatter) tableRow(row *commonmark.Node, indent int) {
	f.writeIndent(indent)
	f.w.WriteString("|")
	for cell := row.FirstChild; cell != nil; cell = cell.Next {
		f.w.WriteString(" ")
		f.inlineChildren(cell)
		f.w.WriteString(" |")
	}
	f.w.WriteString("\n")
}

func (f *formatter) inlineChildren(parent *commonmark.Node) {
	for c := parent.FirstChild; c != nil; c = c.Next {
		f.inline(c)
	}
}

func (f *formatter) inline(n *commonmark.Node) {
	switch n.Kind() {
	case commonmark.Text:
		f.w.WriteString(n.Data.Value.Literal)
	case commonmark.SoftBreak:
		f.w.WriteString("\n")
	case commonmark.LineBreak:
		f.w.WriteString("\\\n")
	case commonmark.Code:
		lit := n.Data.Value.Literal
		f.w.WriteString(codeSpanFence(lit))
		f.w.WriteString(lit)
		f.w.WriteString(codeSpanFence(lit))
	case commonmark.HTMLInline:
		f.w.WriteString(n.Data.Value.Literal)
	case commonmark.Emph:
		f.w.WriteString("*")
		f.inlineChildren(n)
		f.w.WriteString("*")
	case commonmark.Strong:
		f.w.WriteString("**")
		f.inlineChildren(n)
		f.w.WriteString("**")
	case commonmark.Strikethrough:
		f.w.WriteString("~~")
		f.inlineChildren(n)
		f.w.WriteString("~~")
	case commonmark.Superscript:
		f.w.WriteString("^")
		f.inlineChildren(n)
		f.w.WriteString("^")
	case commonmark.Link:
		f.w.WriteString("[")
		f.inlineChildren(n)
		f.w.WriteString("](")
		f.w.WriteString(commonmark.NormalizeURI(n.Data.Value.URL))
		if n.Data.Value.Title != "" {
			f.w.WriteString(` "`)
			f.w.WriteString(n.Data.Value.Title)
			f.w.WriteString(`"`)
		}
		f.w.WriteString(")")
	case commonmark.Image:
		f.w.WriteString("![")
		f.inlineChildren(n)
		f.w.WriteString("](")
		f.w.WriteString(commonmark.NormalizeURI(n.Data.Value.URL))
		if n.Data.Value.Title != "" {
			f.w.WriteString(` "`)
			f.w.WriteString(n.Data.Value.Title)
			f.w.WriteString(`"`)
		}
		f.w.WriteString(")")
	}
}

func (f *formatter) writeIndent(indent int) {
	if indent > 0 {
		f.w.WriteString(strings.Repeat(" ", indent))
	}
}

func (f *formatter) writeIndentedLiteral(literal string, indent int) {
	for _, line := range strings.SplitAfter(literal, "\n") {
		if line == "" {
			continue
		}
		f.writeIndent(indent)
		f.w.WriteString(line)
	}
}

func indentEachLine(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

// codeSpanFence returns a backtick fence one run longer than the longest
// backtick run inside literal, per
// https://spec.commonmark.org/0.30/#code-spans.
func codeSpanFence(literal string) string {
	longest := 0
	run := 0
	for i := 0; i < len(literal); i++ {
		if literal[i] == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", longest+1)
}

func max3(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
