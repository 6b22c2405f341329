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

// Emphasis resolution: the delimiter-stack algorithm of
// https://spec.commonmark.org/0.30/#phase-2-inline-structure, including
// the "multiple of 3" rule. This is the same two-pointer stack walk used
// by every conforming CommonMark implementation (cmark's
// process_emphasis, commonmark.js's processEmphasis); strikethrough and
// superscript are folded into the same walk since the module models them
// as ordinary same-family delimiter runs (GFM's own reference
// implementation does the same for strikethrough).

package commonmark

// processEmphasis resolves matched emphasis-family delimiters in
// delims[stackBottom:], wrapping the content each pair encloses in an
// Emph/Strong/Strikethrough/Superscript node. Consumed entries are left
// with active=false; callers that maintain delims as a growable slice
// should truncate back to stackBottom afterward, as [inlineState] does.
func processEmphasis(delims []*delimEntry, stackBottom int) {
	var openersBottom [256]int
	for i := range openersBottom {
		openersBottom[i] = stackBottom
	}

	closerIdx := stackBottom
	for closerIdx < len(delims) {
		closer := delims[closerIdx]
		if !closer.active || !closer.canClose {
			closerIdx++
			continue
		}
		openerIdx := -1
		bottom := openersBottom[closer.char]
		if bottom < stackBottom {
			bottom = stackBottom
		}
		for k := closerIdx - 1; k >= bottom; k-- {
			opener := delims[k]
			if !opener.active || opener.char != closer.char || !opener.canOpen {
				continue
			}
			if oddMatchViolatesMultipleOfThree(opener, closer) {
				continue
			}
			openerIdx = k
			break
		}
		if openerIdx < 0 {
			if !closer.canOpen {
				closer.active = false
			}
			openersBottom[closer.char] = closerIdx
			closerIdx++
			continue
		}

		opener := delims[openerIdx]
		use := matchCount(opener, closer)
		wrapDelims(opener, closer, use)

		if opener.count == 0 {
			opener.active = false
		}
		if closer.count == 0 {
			closer.active = false
			closerIdx++
		}
		// Deactivate everything strictly between opener and closer: once
		// consumed, intervening delimiters can no longer participate.
		for k := openerIdx + 1; k < closerIdx; k++ {
			delims[k].active = false
		}
	}
}

// matchCount reports how many delimiters a match between opener and
// closer consumes: 2 for emphasis-family runs forming Strong, 1 for
// Emph/Superscript, and min(opener.count, closer.count) capped at 2 for
// Strikethrough (a run of one or two tildes).
func matchCount(opener, closer *delimEntry) int {
	switch opener.char {
	case '~':
		n := opener.count
		if closer.count < n {
			n = closer.count
		}
		if n > 2 {
			n = 2
		}
		return n
	case '^':
		return 1
	default:
		if opener.count >= 2 && closer.count >= 2 {
			return 2
		}
		return 1
	}
}

// oddMatchViolatesMultipleOfThree implements the CommonMark rule that
// when both the opener and closer can both open and close, a match is
// forbidden if the sum of their lengths is a multiple of 3 unless both
// lengths are themselves multiples of 3.
func oddMatchViolatesMultipleOfThree(opener, closer *delimEntry) bool {
	if !(opener.canOpen && opener.canClose) && !(closer.canOpen && closer.canClose) {
		return false
	}
	sum := opener.count + closer.count
	if sum%3 != 0 {
		return false
	}
	return opener.count%3 != 0 || closer.count%3 != 0
}

// wrapDelims consumes use delimiters from opener and closer, wrapping the
// nodes strictly between them (in the flat sibling list built by the
// inline scan) in a new Emph/Strong/Strikethrough/Superscript node.
func wrapDelims(opener, closer *delimEntry, use int) {
	kind := wrapKindFor(opener.char, use)

	parent := opener.node.Parent
	wrapper := &Node{Data: &Ast{Value: NodeValue{Kind: kind}, Open: true}}

	var next *Node
	for child := opener.node.Next; child != nil && child != closer.node; child = next {
		next = child.Next
		child.Detach()
		wrapper.AppendChild(child)
	}
	closer.node.InsertBefore(wrapper)

	opener.node.Data.Value.Literal = trimDelimLiteral(opener.node.Data.Value.Literal, use, true)
	closer.node.Data.Value.Literal = trimDelimLiteral(closer.node.Data.Value.Literal, use, false)
	opener.count -= use
	closer.count -= use

	if opener.count == 0 {
		opener.node.Detach()
	}
	if closer.count == 0 {
		closer.node.Detach()
	}
	_ = parent
}

func wrapKindFor(char byte, use int) NodeKind {
	switch char {
	case '~':
		return Strikethrough
	case '^':
		return Superscript
	default:
		if use == 2 {
			return Strong
		}
		return Emph
	}
}

// trimDelimLiteral removes use characters from a delimiter run's literal,
// taking from the end when fromEnd (the opener's trailing characters are
// the ones nearest the content) or from the start otherwise (the
// closer's leading characters are nearest the content).
func trimDelimLiteral(s string, use int, fromEnd bool) string {
	if use >= len(s) {
		return ""
	}
	if fromEnd {
		return s[:len(s)-use]
	}
	return s[use:]
}
