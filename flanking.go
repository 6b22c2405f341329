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

// Left/right-flanking delimiter-run classification
// (https://spec.commonmark.org/0.30/#left-flanking-delimiter-run), the one
// place this module reaches for golang.org/x/text rather than the
// standard library's unicode tables directly: CommonMark's punctuation
// test is "Unicode punctuation or symbol", which x/text's rangetable.Merge
// lets us express as a single table the way the pack's x/text-consuming
// examples compose category tables.
package commonmark

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

var unicodePunctOrSymbol = rangetable.Merge(unicode.P, unicode.S)

func isUnicodePunctuation(r rune) bool {
	return unicode.Is(unicodePunctOrSymbol, r)
}

func isUnicodeWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return unicode.IsSpace(r)
}

// runeBefore and runeAfter decode the rune immediately preceding/following
// s[pos:pos+n] within the full string full, treating the string boundary
// as a Unicode whitespace character (per spec, start/end of line counts
// as whitespace for flanking purposes).
func runeBefore(full string, pos int) rune {
	if pos <= 0 {
		return ' '
	}
	r, _ := utf8.DecodeLastRuneInString(full[:pos])
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

func runeAfter(full string, pos int) rune {
	if pos >= len(full) {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(full[pos:])
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

// delimFlanking reports whether a delimiter run full[start:end] is
// left-flanking and/or right-flanking.
func delimFlanking(full string, start, end int) (left, right bool) {
	before := runeBefore(full, start)
	after := runeAfter(full, end)

	beforeWS := isUnicodeWhitespace(before)
	afterWS := isUnicodeWhitespace(after)
	beforePunct := isUnicodePunctuation(before)
	afterPunct := isUnicodePunctuation(after)

	left = !afterWS && (!afterPunct || beforeWS || beforePunct)
	right = !beforeWS && (!beforePunct || afterWS || afterPunct)
	return left, right
}
