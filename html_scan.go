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

// Raw HTML tag scanning (spec.md §2.1's html_tag scanner), adapted from
// the teacher's (zombiezen.com/go/commonmark) parse_html.go
// parseHTMLTag/parseHTMLOpenTag/parseHTMLClosingTag/parseHTMLAttribute,
// rewritten as a plain byte-index scan over a string rather than the
// teacher's multi-span inlineByteReader, since this engine accumulates a
// leaf's raw text into one contiguous string before inline parsing.

package commonmark

import "strings"

const (
	htmlCDATAPrefix = "[CDATA["
	htmlCDATASuffix = "]]>"
)

// scanHTMLTag recognizes a raw HTML tag (open tag, closing tag, comment,
// processing instruction, declaration, or CDATA section) starting at
// s[0], which must be '<'. It returns the length of the match (including
// both angle brackets) or -1.
func scanHTMLTag(s string) int {
	if len(s) == 0 || s[0] != '<' {
		return -1
	}
	if len(s) < 2 {
		return -1
	}
	switch s[1] {
	case '?':
		if end := strings.Index(s[2:], "?>"); end >= 0 {
			return 2 + end + 2
		}
		return -1
	case '!':
		rest := s[2:]
		switch {
		case len(rest) > 0 && isASCIILetter(rest[0]):
			if end := strings.IndexByte(rest, '>'); end >= 0 {
				return 2 + end + 1
			}
			return -1
		case strings.HasPrefix(rest, "--"):
			body := rest[2:]
			if strings.HasPrefix(body, ">") || strings.HasPrefix(body, "->") {
				return -1
			}
			if end := strings.Index(body, "--"); end >= 0 {
				if strings.HasPrefix(body[end:], "-->") {
					return 2 + 2 + end + 3
				}
				return -1
			}
			return -1
		case strings.HasPrefix(rest, htmlCDATAPrefix):
			body := rest[len(htmlCDATAPrefix):]
			if end := strings.Index(body, htmlCDATASuffix); end >= 0 {
				return 2 + len(htmlCDATAPrefix) + end + len(htmlCDATASuffix)
			}
			return -1
		default:
			return -1
		}
	case '/':
		end := scanHTMLClosingTag(s[2:])
		if end < 0 {
			return -1
		}
		return 2 + end
	default:
		end := scanHTMLOpenTag(s[1:])
		if end < 0 {
			return -1
		}
		return 1 + end
	}
}

// scanHTMLOpenTag parses an open tag (https://spec.commonmark.org/0.30/#open-tag)
// sans the leading '<'. It returns the length of the match (ending just
// after '>') or -1.
func scanHTMLOpenTag(s string) int {
	i := scanHTMLTagName(s)
	if i <= 0 {
		return -1
	}
	for {
		spaceEnd := i + scanSpacechars(s[i:])
		if spaceEnd >= len(s) {
			return -1
		}
		switch s[spaceEnd] {
		case '/':
			if spaceEnd+1 >= len(s) || s[spaceEnd+1] != '>' {
				return -1
			}
			return spaceEnd + 2
		case '>':
			return spaceEnd + 1
		}
		if spaceEnd == i {
			return -1
		}
		attrEnd := scanHTMLAttribute(s[spaceEnd:])
		if attrEnd <= 0 {
			return -1
		}
		i = spaceEnd + attrEnd
	}
}

// scanHTMLClosingTag parses a closing tag
// (https://spec.commonmark.org/0.30/#closing-tag) sans the leading "</".
func scanHTMLClosingTag(s string) int {
	i := scanHTMLTagName(s)
	if i <= 0 {
		return -1
	}
	i += scanSpacechars(s[i:])
	if i >= len(s) || s[i] != '>' {
		return -1
	}
	return i + 1
}

func scanHTMLTagName(s string) int {
	if len(s) == 0 || !isASCIILetter(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) && (isASCIILetter(s[i]) || isASCIIDigit(s[i]) || s[i] == '-') {
		i++
	}
	return i
}

func scanHTMLAttribute(s string) int {
	if len(s) == 0 {
		return -1
	}
	if c := s[0]; !isASCIILetter(c) && c != '_' && c != ':' {
		return -1
	}
	i := 1
	for i < len(s) && (isASCIILetter(s[i]) || isASCIIDigit(s[i]) || strings.IndexByte("_.:-", s[i]) >= 0) {
		i++
	}
	// Optional attribute value specification.
	j := i + scanSpacechars(s[i:])
	if j >= len(s) || s[j] != '=' {
		return i
	}
	j++
	j += scanSpacechars(s[j:])
	if j >= len(s) {
		return -1
	}
	switch s[j] {
	case '\'':
		end := strings.IndexByte(s[j+1:], '\'')
		if end < 0 {
			return -1
		}
		return j + 1 + end + 1
	case '"':
		end := strings.IndexByte(s[j+1:], '"')
		if end < 0 {
			return -1
		}
		return j + 1 + end + 1
	default:
		k := j
		for k < len(s) && isUnquotedAttributeValueChar(s[k]) {
			k++
		}
		if k == j {
			return -1
		}
		return k
	}
}

func isUnquotedAttributeValueChar(c byte) bool {
	return !isSpaceTabOrLineEnding(c) && strings.IndexByte("\"'=<>`", c) < 0
}
