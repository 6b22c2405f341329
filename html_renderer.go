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

//go:generate stringer -type=SoftBreakBehavior -output=html_string.go

package commonmark

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// An HTMLRenderer converts a finished document tree into HTML.
//
// # Security considerations
//
// CommonMark permits the use of [raw HTML], which can introduce
// [Cross-Site Scripting (XSS)] vulnerabilities and [HTML parse errors]
// when used with untrusted inputs. There are a few options to mitigate
// this risk:
//
//   - The resulting HTML can be sent through an HTML sanitizer. This is
//     highly recommended.
//   - Set IgnoreRaw to prevent inclusion of raw HTML blocks and inline
//     HTML entirely.
//   - Enable the GFM tagfilter extension (FilterTagGFM, or the source
//     document's ExtTagfilter option) to disarm a fixed list of
//     dangerous tags while still showing the source text.
//
// [Cross-Site Scripting (XSS)]: https://owasp.org/www-community/attacks/xss/
// [HTML parse errors]: https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
// [raw HTML]: https://spec.commonmark.org/0.30/#raw-html
type HTMLRenderer struct {
	// SoftBreakBehavior determines how soft line breaks are rendered.
	SoftBreakBehavior SoftBreakBehavior
	// If IgnoreRaw is true, the renderer skips any HTML blocks or raw
	// inline HTML.
	IgnoreRaw bool
	// FilterTag is a predicate function that reports whether an element
	// with the given lowercased tag name should have its leading angle
	// bracket escaped. If FilterTag is nil, no filtering occurs.
	//
	// FilterTag functions must not modify the byte slice nor retain the
	// slice after the function returns.
	FilterTag func(tag []byte) bool
	// GitHubPreLang emits <pre lang="..."> instead of
	// <pre><code class="language-..."> for fenced code blocks.
	GitHubPreLang bool
}

// RenderHTML writes root as HTML to w using the default [HTMLRenderer]
// settings, enabling the GFM tag filter when opts enables it.
func RenderHTML(w io.Writer, root *Node, opts *Options) error {
	r := &HTMLRenderer{}
	if opts != nil {
		r.GitHubPreLang = opts.GitHubPreLang
		if opts.ExtTagfilter {
			r.FilterTag = FilterTagGFM
		}
	}
	return r.Render(w, root)
}

// Render writes root's rendered HTML to w. It returns the first error
// encountered, if any.
func (r *HTMLRenderer) Render(w io.Writer, root *Node) error {
	buf := r.AppendNode(nil, root)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

// AppendNode appends root's rendered HTML to dst and returns the
// resulting byte slice.
func (r *HTMLRenderer) AppendNode(dst []byte, root *Node) []byte {
	state := &renderState{HTMLRenderer: r, dst: dst}
	state.block(root)
	return state.dst
}

type renderState struct {
	*HTMLRenderer
	dst      []byte
	lowerBuf []byte
}

func (r *renderState) openTagAttr(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+1:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;"...)
		r.dst = append(r.dst, name.String()...)
	}
}

func (r *renderState) openTag(name atom.Atom) {
	r.openTagAttr(name)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	start := len(r.dst)
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	if r.FilterTag != nil && r.FilterTag(r.dst[start+2:]) {
		r.dst = r.dst[:start]
		r.dst = append(r.dst, "&lt;/"...)
		r.dst = append(r.dst, name.String()...)
	}
	r.dst = append(r.dst, '>')
}

func headingTag(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H6
	}
}

func alignAttr(a CellAlignment) string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return ""
	}
}

// block renders a block-level node (and, since leaves carry their own
// inline children, recurses into them as well).
func (r *renderState) block(n *Node) {
	switch n.Kind() {
	case Document:
		r.blockChildren(n)
	case Paragraph:
		r.openTag(atom.P)
		r.inlineChildren(n)
		r.closeTag(atom.P)
	case ThematicBreak:
		r.dst = append(r.dst, "<hr />"...)
	case Heading:
		tagName := headingTag(n.Data.Value.Level)
		r.openTag(tagName)
		r.inlineChildren(n)
		r.closeTag(tagName)
	case CodeBlock:
		v := &n.Data.Value
		if r.GitHubPreLang && v.Info != "" {
			r.dst = append(r.dst, `<pre lang="`...)
			r.dst = append(r.dst, escapeHTML(nil, []byte(strings.Fields(v.Info)[0]))...)
			r.dst = append(r.dst, `"><code>`...)
		} else {
			r.dst = append(r.dst, "<pre><code"...)
			if v.Info != "" {
				words := strings.Fields(v.Info)
				if len(words) > 0 {
					r.dst = append(r.dst, ` class="language-`...)
					r.dst = append(r.dst, escapeHTML(nil, []byte(words[0]))...)
					r.dst = append(r.dst, `"`...)
				}
			}
			r.dst = append(r.dst, ">"...)
		}
		r.dst = escapeHTML(r.dst, []byte(v.Literal))
		r.dst = append(r.dst, "</code></pre>"...)
	case BlockQuote:
		r.openTag(atom.Blockquote)
		r.dst = append(r.dst, '\n')
		r.blockChildren(n)
		r.closeTag(atom.Blockquote)
	case List:
		lv := &n.Data.Value.List
		var tagName atom.Atom
		if lv.ListType == OrderedList {
			tagName = atom.Ol
			r.openTagAttr(tagName)
			if lv.Start != 1 {
				r.dst = append(r.dst, ` start="`...)
				r.dst = strconv.AppendInt(r.dst, int64(lv.Start), 10)
				r.dst = append(r.dst, `"`...)
			}
			r.dst = append(r.dst, ">"...)
		} else {
			tagName = atom.Ul
			r.openTag(tagName)
		}
		r.dst = append(r.dst, '\n')
		r.blockChildren(n)
		r.closeTag(tagName)
	case Item:
		r.openTag(atom.Li)
		r.listItemChildren(n)
		r.closeTag(atom.Li)
	case Table:
		aligns := n.Data.Value.Alignments
		r.openTag(atom.Table)
		if n.FirstChild != nil {
			r.openTag(atom.Thead)
			r.tableRow(n.FirstChild, aligns)
			r.closeTag(atom.Thead)
			if n.FirstChild.Next != nil {
				r.openTag(atom.Tbody)
				for row := n.FirstChild.Next; row != nil; row = row.Next {
					r.tableRow(row, aligns)
				}
				r.closeTag(atom.Tbody)
			}
		}
		r.closeTag(atom.Table)
	case HTMLBlock:
		if !r.IgnoreRaw {
			if r.FilterTag == nil {
				r.dst = append(r.dst, n.Data.Value.Literal...)
			} else {
				r.filterRaw([]byte(n.Data.Value.Literal))
			}
		}
	case LinkReferenceDefinition:
		// Not rendered: consumed during parsing.
	}
}

func (r *renderState) tableRow(row *Node, aligns []CellAlignment) {
	r.openTag(atom.Tr)
	cellTag := atom.Td
	if row.Data.Value.IsHeader {
		cellTag = atom.Th
	}
	i := 0
	for cell := row.FirstChild; cell != nil; cell = cell.Next {
		if i < len(aligns) {
			if a := alignAttr(aligns[i]); a != "" {
				r.openTagAttr(cellTag)
				r.dst = append(r.dst, ` align="`...)
				r.dst = append(r.dst, a...)
				r.dst = append(r.dst, `"`...)
				r.dst = append(r.dst, ">"...)
				r.inlineChildren(cell)
				r.closeTag(cellTag)
				i++
				continue
			}
		}
		r.openTag(cellTag)
		r.inlineChildren(cell)
		r.closeTag(cellTag)
		i++
	}
	r.closeTag(atom.Tr)
}

func (r *renderState) blockChildren(parent *Node) {
	for c := parent.FirstChild; c != nil; c = c.Next {
		r.block(c)
		if n := len(r.dst); n > 0 && r.dst[n-1] != '\n' {
			r.dst = append(r.dst, '\n')
		}
	}
}

// listItemChildren renders an Item's block children, unwrapping a tight
// list's paragraphs to their bare inline content per
// https://spec.commonmark.org/0.30/#tight.
func (r *renderState) listItemChildren(item *Node) {
	tight := item.Data.Value.List.Tight
	for c := item.FirstChild; c != nil; c = c.Next {
		if tight && c.Kind() == Paragraph {
			r.inlineChildren(c)
			continue
		}
		if n := len(r.dst); n > 0 && r.dst[n-1] != '\n' {
			r.dst = append(r.dst, '\n')
		}
		r.block(c)
		if n := len(r.dst); n > 0 && r.dst[n-1] != '\n' {
			r.dst = append(r.dst, '\n')
		}
	}
}

func (r *renderState) inlineChildren(parent *Node) {
	for c := parent.FirstChild; c != nil; c = c.Next {
		r.inline(c)
	}
}

func (r *renderState) inline(n *Node) {
	const hardLineBreak = "<br />\n"
	switch n.Kind() {
	case Text:
		r.dst = escapeHTML(r.dst, []byte(n.Data.Value.Literal))
	case HTMLInline:
		if !r.IgnoreRaw {
			if r.FilterTag == nil {
				r.dst = append(r.dst, n.Data.Value.Literal...)
			} else {
				r.filterRaw([]byte(n.Data.Value.Literal))
			}
		}
	case SoftBreak:
		switch r.SoftBreakBehavior {
		case SoftBreakHarden:
			r.dst = append(r.dst, hardLineBreak...)
		case SoftBreakSpace:
			r.dst = append(r.dst, ' ')
		default:
			r.dst = append(r.dst, '\n')
		}
	case LineBreak:
		r.dst = append(r.dst, hardLineBreak...)
	case Emph:
		r.openTag(atom.Em)
		r.inlineChildren(n)
		r.closeTag(atom.Em)
	case Strong:
		r.openTag(atom.Strong)
		r.inlineChildren(n)
		r.closeTag(atom.Strong)
	case Strikethrough:
		r.dst = append(r.dst, "<del>"...)
		r.inlineChildren(n)
		r.dst = append(r.dst, "</del>"...)
	case Superscript:
		r.dst = append(r.dst, "<sup>"...)
		r.inlineChildren(n)
		r.dst = append(r.dst, "</sup>"...)
	case Code:
		r.openTag(atom.Code)
		r.dst = escapeHTML(r.dst, []byte(n.Data.Value.Literal))
		r.closeTag(atom.Code)
	case Link:
		v := &n.Data.Value
		r.openTagAttr(atom.A)
		r.dst = append(r.dst, ` href="`...)
		r.dst = escapeHTML(r.dst, []byte(NormalizeURI(v.URL)))
		r.dst = append(r.dst, `"`...)
		if v.Title != "" {
			r.dst = append(r.dst, ` title="`...)
			r.dst = escapeHTML(r.dst, []byte(v.Title))
			r.dst = append(r.dst, `"`...)
		}
		r.dst = append(r.dst, ">"...)
		r.inlineChildren(n)
		r.closeTag(atom.A)
	case Image:
		v := &n.Data.Value
		r.openTagAttr(atom.Img)
		r.dst = append(r.dst, ` src="`...)
		r.dst = escapeHTML(r.dst, []byte(NormalizeURI(v.URL)))
		r.dst = append(r.dst, `"`...)
		r.dst = appendAltText(r.dst, n)
		if v.Title != "" {
			r.dst = append(r.dst, ` title="`...)
			r.dst = escapeHTML(r.dst, []byte(v.Title))
			r.dst = append(r.dst, `"`...)
		}
		r.dst = append(r.dst, " />"...)
	}
}

// filterRaw performs the tag filtering described in
// https://github.github.com/gfm/#disallowed-raw-html-extension-.
//
// It cannot use a conventional HTML parser, since raw HTML in Markdown
// may be incomplete or start in the middle of a tag.
func (r *renderState) filterRaw(rawHTML []byte) {
	copyStart := 0
	for i := 0; i < len(rawHTML); {
		if rawHTML[i] != '<' {
			i++
			continue
		}
		tagNameStart := i + 1
		tagEnd := len(rawHTML)
		if j := bytes.IndexByte(rawHTML[tagNameStart:], '>'); j >= 0 {
			tagEnd = tagNameStart + j + len(">")
		}
		tagNameEnd := tagNameStart
		for tagNameEnd < tagEnd && isHTMLTagNameByte(rawHTML[tagNameEnd]) {
			tagNameEnd++
		}
		tagName := maybeLower(rawHTML[tagNameStart:tagNameEnd], &r.lowerBuf)
		if r.FilterTag(tagName) {
			r.dst = append(r.dst, rawHTML[copyStart:i]...)
			r.dst = append(r.dst, "&lt;"...)
			r.dst = append(r.dst, rawHTML[tagNameStart:tagEnd]...)
			copyStart = tagEnd
		}
		i = tagEnd
	}
	r.dst = append(r.dst, rawHTML[copyStart:]...)
}

func isHTMLTagNameByte(b byte) bool {
	return isASCIILetter(b) || isASCIIDigit(b) || b == '-'
}

// appendAltText flattens image's inline content into a single alt
// attribute value, per https://spec.commonmark.org/0.30/#example-571.
func appendAltText(dst []byte, image *Node) []byte {
	dst = append(dst, ` alt="`...)
	var walk func(*Node)
	walk = func(n *Node) {
		switch n.Kind() {
		case Text, Code, HTMLInline:
			dst = escapeHTML(dst, []byte(n.Data.Value.Literal))
		case SoftBreak, LineBreak:
			dst = append(dst, ' ')
		default:
			for c := n.FirstChild; c != nil; c = c.Next {
				walk(c)
			}
		}
	}
	for c := image.FirstChild; c != nil; c = c.Next {
		walk(c)
	}
	dst = append(dst, `"`...)
	return dst
}

// escapeHTML appends the HTML-escaped version of a byte slice to another
// byte slice.
func escapeHTML(dst []byte, src []byte) []byte {
	verbatimStart := 0
	for i, b := range src {
		switch b {
		case '&':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&amp;"...)
			verbatimStart = i + 1
		case '\'':
			dst = append(dst, src[verbatimStart:i]...)
			// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
			dst = append(dst, "&#39;"...)
			verbatimStart = i + 1
		case '<':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&lt;"...)
			verbatimStart = i + 1
		case '>':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&gt;"...)
			verbatimStart = i + 1
		case '"':
			dst = append(dst, src[verbatimStart:i]...)
			dst = append(dst, "&quot;"...)
			verbatimStart = i + 1
		}
	}
	if verbatimStart < len(src) {
		dst = append(dst, src[verbatimStart:]...)
	}
	return dst
}

func maybeLower(x []byte, buf *[]byte) []byte {
	hasUpper := false
	for _, b := range x {
		if 'A' <= b && b <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return x
	}

	*buf = (*buf)[:0]
	for _, b := range x {
		if 'A' <= b && b <= 'Z' {
			*buf = append(*buf, b-'A'+'a')
		} else {
			*buf = append(*buf, b)
		}
	}
	return *buf
}

// FilterTagGFM performs the same tag filtering as the GitHub Flavored
// Markdown [tagfilter extension]. It is suitable for use as the
// FilterTag field in [HTMLRenderer].
//
// [tagfilter extension]: https://github.github.com/gfm/#disallowed-raw-html-extension-
func FilterTagGFM(tag []byte) bool {
	tagAtom := atom.Lookup(tag)
	return tagAtom == atom.Title ||
		tagAtom == atom.Textarea ||
		tagAtom == atom.Style ||
		tagAtom == atom.Xmp ||
		tagAtom == atom.Iframe ||
		tagAtom == atom.Noembed ||
		tagAtom == atom.Noframes ||
		tagAtom == atom.Script ||
		tagAtom == atom.Plaintext
}

// SoftBreakBehavior is an enumeration of rendering styles for
// [soft line breaks].
//
// [soft line breaks]: https://spec.commonmark.org/0.30/#soft-line-breaks
type SoftBreakBehavior int

const (
	// SoftBreakPreserve indicates that a soft line break should be rendered as a newline.
	SoftBreakPreserve SoftBreakBehavior = iota
	// SoftBreakSpace indicates that a soft line break should be rendered as a space.
	SoftBreakSpace
	// SoftBreakHarden indicates that a soft line break should be rendered as a hard line break.
	SoftBreakHarden
)

// NormalizeURI percent-encodes any characters in a string that are not
// reserved or unreserved URI characters. This is commonly used for
// transforming CommonMark link destinations into strings suitable for
// href or src attributes.
func NormalizeURI(s string) string {
	// RFC 3986 reserved and unreserved characters.
	const safeSet = `;/?:@&=+$,-_.!~*'()#`

	sb := new(strings.Builder)
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && (isASCIILetter(byte(c)) || isASCIIDigit(byte(c)))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || isASCIIDigit(c)
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	case x < 0x10:
		return 'A' + x - 0xa
	default:
		panic("out of bounds")
	}
}
