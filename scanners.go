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

// This file is the scanner library named by spec.md §2.1: a family of pure
// predicates over a string, each answering "does the prefix match pattern
// P? if so, how many bytes?". The algorithms are adapted from the
// teacher's (zombiezen.com/go/commonmark) blocks.go parseThematicBreak /
// parseATXHeading / parseSetextHeadingUnderline / parseCodeFence /
// parseListMarker, generalized to operate on plain strings rather than
// the teacher's span-relative line cursor.

package commonmark

import "strings"

// scanThematicBreak returns the end of a thematic break's marker run
// (https://spec.commonmark.org/0.30/#thematic-breaks) at the start of
// line, or -1 if line does not begin with one. line must already have had
// leading indentation stripped.
func scanThematicBreak(line string) (end int) {
	n := 0
	var want byte
	for i := 0; i < len(line); i++ {
		b := line[i]
		switch b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return -1
			}
			n++
			end = i + 1
		case ' ', '\t', '\r', '\n':
			// Ignore.
		default:
			return -1
		}
	}
	if n < 3 {
		return -1
	}
	return end
}

// atxHeadingStart is the result of scanATXHeadingStart.
type atxHeadingStart struct {
	level        int
	contentStart int
}

// scanATXHeadingStart recognizes the opening of an ATX heading
// (https://spec.commonmark.org/0.30/#atx-headings): 1-6 '#' characters
// followed by a space, tab, or end of line. level is zero if line does
// not begin with one. contentStart is the byte offset where the heading
// text begins (after the required whitespace, if any).
func scanATXHeadingStart(line string) atxHeadingStart {
	var h atxHeadingStart
	for h.level < len(line) && line[h.level] == '#' {
		h.level++
	}
	if h.level == 0 || h.level > 6 {
		return atxHeadingStart{}
	}
	i := h.level
	if i >= len(line) || line[i] == '\n' || line[i] == '\r' {
		h.contentStart = i
		return h
	}
	if !isSpaceOrTab(line[i]) {
		return atxHeadingStart{}
	}
	i++
	for i < len(line) && isSpaceOrTab(line[i]) {
		i++
	}
	h.contentStart = i
	return h
}

// scanSetextHeadingUnderline returns the heading level (1 for '=', 2 for
// '-') if line is a setext heading underline
// (https://spec.commonmark.org/0.30/#setext-heading-underline), or 0
// otherwise.
func scanSetextHeadingUnderline(line string) (level int) {
	if len(line) == 0 {
		return 0
	}
	switch line[0] {
	case '=':
		level = 1
	case '-':
		level = 2
	default:
		return 0
	}
	for i := 1; i < len(line); i++ {
		if line[i] != line[0] {
			if !isBlankLine(line[i:]) {
				return 0
			}
			return level
		}
	}
	return level
}

// codeFence is the result of scanCodeFenceStart.
type codeFence struct {
	char           byte // '`' or '~'
	length         int
	infoStart      int
	infoEnd        int
	hasInfo        bool
}

// scanCodeFenceStart recognizes an opening code fence
// (https://spec.commonmark.org/0.30/#code-fence): a run of 3 or more
// backticks or tildes, optionally followed by an info string.
// codeFence.length is 0 if line does not begin with a fence.
func scanCodeFenceStart(line string) codeFence {
	const minRun = 3
	if len(line) < minRun || (line[0] != '`' && line[0] != '~') {
		return codeFence{}
	}
	f := codeFence{char: line[0], length: 1}
	for f.length < len(line) && line[f.length] == f.char {
		f.length++
	}
	if f.length < minRun {
		return codeFence{}
	}
	infoStart := f.length
	for infoStart < len(line) && isSpaceTabOrLineEnding(line[infoStart]) {
		infoStart++
	}
	infoEnd := len(line)
	for infoEnd > infoStart && isSpaceTabOrLineEnding(line[infoEnd-1]) {
		infoEnd--
	}
	if infoEnd > infoStart {
		if f.char == '`' && strings.IndexByte(line[infoStart:infoEnd], '`') >= 0 {
			// "If the info string comes after a backtick fence, it may not
			// contain any backtick characters."
			return codeFence{}
		}
		f.hasInfo = true
		f.infoStart = infoStart
		f.infoEnd = infoEnd
	}
	return f
}

// scanCodeFenceEnd reports whether line is a valid closing fence for an
// open fence of the given character and length: a run of at least length
// fence characters and nothing else but trailing whitespace.
func scanCodeFenceEnd(line string, char byte, length int) bool {
	f := scanCodeFenceStart(line)
	return f.length > 0 && !f.hasInfo && f.char == char && f.length >= length
}

// listMarker is the result of scanListMarker.
type listMarker struct {
	delim byte // '-', '+', '*', '.', or ')'
	num   int
	end   int // -1 if no marker
}

func (m listMarker) isOrdered() bool {
	return m.delim == '.' || m.delim == ')'
}

// scanListMarker recognizes a bullet or ordered list marker
// (https://spec.commonmark.org/0.30/#list-marker) at the start of line.
// m.end is -1 if line does not begin with one.
func scanListMarker(line string) listMarker {
	if len(line) == 0 {
		return listMarker{end: -1}
	}
	switch c := line[0]; {
	case c == '-' || c == '+' || c == '*':
		if len(line) > 1 && !isSpaceTabOrLineEnding(line[1]) {
			return listMarker{end: -1}
		}
		return listMarker{delim: c, end: 1}
	case isASCIIDigit(c):
		n := int(c - '0')
		const maxDigits = 9
		for i := 1; i < maxDigits+1 && i < len(line); i++ {
			switch c := line[i]; {
			case isASCIIDigit(c):
				n = n*10 + int(c-'0')
			case c == '.' || c == ')':
				if i+1 < len(line) && !isSpaceTabOrLineEnding(line[i+1]) {
					return listMarker{end: -1}
				}
				return listMarker{delim: c, num: n, end: i + 1}
			default:
				return listMarker{end: -1}
			}
		}
		return listMarker{end: -1}
	default:
		return listMarker{end: -1}
	}
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// scanSpacechars returns the length of the run of spaces and tabs at the
// start of s.
func scanSpacechars(s string) int {
	i := 0
	for i < len(s) && isSpaceOrTab(s[i]) {
		i++
	}
	return i
}

// scanURLScheme reports whether s begins with a URI scheme (a letter
// followed by 1-31 letters, digits, '+', '-', or '.') immediately followed
// by ':'. It returns the length of "scheme:" or 0.
func scanURLScheme(s string) int {
	if len(s) == 0 || !isASCIILetter(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) && i <= 32 {
		c := s[i]
		if isASCIILetter(c) || isASCIIDigit(c) || c == '+' || c == '-' || c == '.' {
			i++
			continue
		}
		break
	}
	if i < 2 || i > 32 || i >= len(s) || s[i] != ':' {
		return 0
	}
	return i + 1
}

// scanAutolinkURI recognizes the interior of a URI autolink
// (https://spec.commonmark.org/0.30/#uri-autolink), i.e. the text between
// '<' and '>'. It returns the length of the match (not including the
// angle brackets) or -1.
func scanAutolinkURI(s string) int {
	schemeLen := scanURLScheme(s)
	if schemeLen == 0 {
		return -1
	}
	i := schemeLen
	for i < len(s) {
		c := s[i]
		if c == '>' {
			return i
		}
		if c <= ' ' || c == '<' {
			return -1
		}
		i++
	}
	return -1
}

// scanAutolinkEmail recognizes the interior of an email autolink
// (https://spec.commonmark.org/0.30/#email-autolink). It returns the
// length of the match or -1.
func scanAutolinkEmail(s string) int {
	i := 0
	for i < len(s) && isEmailAtomChar(s[i]) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '@' {
		return -1
	}
	i++
	labelStart := i
	sawLabel := false
	for {
		start := i
		for i < len(s) && (isASCIILetter(s[i]) || isASCIIDigit(s[i]) || s[i] == '-') {
			i++
		}
		if i == start {
			break
		}
		sawLabel = true
		if i < len(s) && s[i] == '.' && i+1 < len(s) && (isASCIILetter(s[i+1]) || isASCIIDigit(s[i+1])) {
			i++
			continue
		}
		break
	}
	if !sawLabel || i == labelStart {
		return -1
	}
	if i >= len(s) || s[i] != '>' {
		return -1
	}
	return i
}

func isEmailAtomChar(c byte) bool {
	if isASCIILetter(c) || isASCIIDigit(c) {
		return true
	}
	switch c {
	case '.', '!', '#', '$', '%', '&', '\'', '*', '+', '/', '=', '?', '^', '_', '`', '{', '|', '}', '~', '-':
		return true
	}
	return false
}
