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

// The GFM autolink extension
// (https://github.github.com/gfm/#autolinks-extension-): a post-process
// over finalized Text nodes that promotes bare www./http(s)/ftp/ftps URLs
// and bare email addresses to Link nodes, run after the ordinary inline
// grammar (which already handles '<...>' autolinks) the same way GFM
// itself layers the extension on top of core CommonMark.

package commonmark

import "strings"

// applyAutolinkExtension walks root's subtree, rewriting plain-text runs
// that contain bare URLs or email addresses into Link nodes.
func applyAutolinkExtension(arena *Arena, root *Node) {
	var walk func(*Node)
	walk = func(n *Node) {
		child := n.FirstChild
		for child != nil {
			next := child.Next
			if child.Kind() == Text {
				autolinkifyTextNode(arena, child)
			} else {
				walk(child)
			}
			child = next
		}
	}
	walk(root)
}

// autolinkifyTextNode scans n's literal for bare links and splits n into
// a run of Text/Link siblings in place when any are found.
func autolinkifyTextNode(arena *Arena, n *Node) {
	s := n.Data.Value.Literal
	type span struct {
		start, end int
		url        string
	}
	var spans []span
	for i := 0; i < len(s); {
		start, end, url, ok := scanBareLink(s, i)
		if !ok {
			i++
			continue
		}
		spans = append(spans, span{start, end, url})
		i = end
	}
	if len(spans) == 0 {
		return
	}

	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			before := arena.NewNode(NodeValue{Kind: Text, Literal: s[pos:sp.start]})
			n.InsertBefore(before)
		}
		link := arena.NewNode(NodeValue{Kind: Link, URL: sp.url})
		link.AppendChild(arena.NewNode(NodeValue{Kind: Text, Literal: s[sp.start:sp.end]}))
		n.InsertBefore(link)
		pos = sp.end
	}
	if pos < len(s) {
		after := arena.NewNode(NodeValue{Kind: Text, Literal: s[pos:]})
		n.InsertBefore(after)
	}
	n.Detach()
}

// scanBareLink looks for a bare www./scheme-prefixed URL or email address
// starting at or after i in s. It returns the matched span and a
// ready-to-use URL (with an inferred scheme for "www." links and a
// "mailto:" prefix for emails), or ok=false if none begins at i.
func scanBareLink(s string, i int) (start, end int, url string, ok bool) {
	switch {
	case strings.HasPrefix(s[i:], "www.") && wordBoundaryBefore(s, i):
		if n := scanBareWebURL(s[i:]); n > 0 {
			return i, i + n, "http://" + s[i:i+n], true
		}
	case hasSchemePrefix(s[i:], "http://"), hasSchemePrefix(s[i:], "https://"), hasSchemePrefix(s[i:], "ftp://"), hasSchemePrefix(s[i:], "ftps://"):
		if n := scanBareWebURL(s[i:]); n > 0 {
			return i, i + n, s[i : i+n], true
		}
	case isEmailAtomChar(safeByteAt(s, i)) && wordBoundaryBefore(s, i):
		if n := scanBareEmail(s[i:]); n > 0 {
			return i, i + n, "mailto:" + s[i:i+n], true
		}
	}
	return 0, 0, "", false
}

func safeByteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func wordBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	c := s[i-1]
	return isSpaceTabOrLineEnding(c) || strings.IndexByte("([{<*_~", c) >= 0
}

func hasSchemePrefix(s, scheme string) bool {
	return strings.HasPrefix(s, scheme)
}

// scanBareWebURL scans a run of non-whitespace characters as a candidate
// URL, then trims trailing punctuation per GFM's autolink extension
// rules (trailing '.', ',', and unbalanced closing brackets are excluded
// from the link).
func scanBareWebURL(s string) int {
	end := 0
	for end < len(s) && !isSpaceTabOrLineEnding(s[end]) && s[end] != '<' {
		end++
	}
	for end > 0 {
		last := s[end-1]
		switch last {
		case '.', ',', ':', '?', '!', '~', '\'', '"':
			end--
			continue
		case ')':
			if strings.Count(s[:end], "(") < strings.Count(s[:end], ")") {
				end--
				continue
			}
		case ']':
			if strings.Count(s[:end], "[") < strings.Count(s[:end], "]") {
				end--
				continue
			}
		}
		break
	}
	if end == 0 {
		return 0
	}
	if !strings.Contains(s[:end], ".") {
		return 0
	}
	return end
}

// scanBareEmail scans a bare email address per GFM's extended-email-autolink
// rule: atom characters, '@', then dot-separated label groups, trimming a
// trailing '.' or '-' as GFM does.
func scanBareEmail(s string) int {
	i := 0
	for i < len(s) && isEmailAtomChar(s[i]) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '@' {
		return 0
	}
	i++
	end := i
	for end < len(s) {
		c := s[end]
		if isASCIILetter(c) || isASCIIDigit(c) || c == '-' || c == '.' || c == '_' {
			end++
			continue
		}
		break
	}
	for end > i && (s[end-1] == '.' || s[end-1] == '-' || s[end-1] == '_') {
		end--
	}
	if end <= i {
		return 0
	}
	return end
}
