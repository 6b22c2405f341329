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

// HTML block start/end conditions (https://spec.commonmark.org/0.30/#html-blocks),
// adapted from the teacher's (zombiezen.com/go/commonmark) parse_html.go
// htmlBlockConditions table. The teacher builds its type-6 tag set from
// golang.org/x/net/html/atom; this module does the same, which is the
// only place outside the HTML renderer that package earns its keep.

package commonmark

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// htmlBlockCondition describes one of the seven HTML block start
// conditions, numbered per the CommonMark spec.
type htmlBlockCondition struct {
	num                  int
	canInterruptParagraph bool
	start                func(line string) bool
	end                  func(line string) bool
}

var htmlBlockConditions = [...]htmlBlockCondition{
	{
		num:                   1,
		canInterruptParagraph: true,
		start:                 hasAnyCaseInsensitivePrefix(line1Starters, line1MustFollow),
		end:                   lineContainsAnyCaseInsensitive(line1Enders),
	},
	{
		num:   2,
		start: func(line string) bool { return strings.HasPrefix(line, "<!--") },
		end:   func(line string) bool { return strings.Contains(line, "-->") },
	},
	{
		num:   3,
		start: func(line string) bool { return strings.HasPrefix(line, "<?") },
		end:   func(line string) bool { return strings.Contains(line, "?>") },
	},
	{
		num: 4,
		start: func(line string) bool {
			return len(line) > 2 && line[0] == '<' && line[1] == '!' && isASCIILetter(line[2])
		},
		end: func(line string) bool { return strings.Contains(line, ">") },
	},
	{
		num:   5,
		start: func(line string) bool { return strings.HasPrefix(line, "<![CDATA[") },
		end:   func(line string) bool { return strings.Contains(line, "]]>") },
	},
	{
		num:                   6,
		canInterruptParagraph: true,
		start:                 startsWithBlockLevelTag,
		end:                   isBlankLine,
	},
	{
		num:   7,
		start: startsWithCompleteTagLine,
		end:   isBlankLine,
	},
}

// htmlBlockStart reports the 1-based condition number of the HTML block
// that line opens, or 0 if none apply. canInterruptParagraph controls
// whether condition 7 (and 1-6 regardless) is considered: condition 7
// never interrupts a paragraph, per spec.
func htmlBlockStart(line string, inParagraph bool) int {
	for i := range htmlBlockConditions {
		c := &htmlBlockConditions[i]
		if inParagraph && !c.canInterruptParagraph {
			continue
		}
		if c.start(line) {
			return c.num
		}
	}
	return 0
}

// htmlBlockEnd reports whether line satisfies the end condition for the
// HTML block opened under condition num.
func htmlBlockEnd(num int, line string) bool {
	if num < 1 || num > len(htmlBlockConditions) {
		return false
	}
	return htmlBlockConditions[num-1].end(line)
}

// line1Starters/line1MustFollow implement condition 1's tag list: script,
// pre, style, or (GFM) textarea, case-insensitively, followed by
// whitespace, '>', or end of line.
var line1Starters = []string{"<script", "<pre", "<style", "<textarea"}
var line1Enders = []string{"</script>", "</pre>", "</style>", "</textarea>"}

const line1MustFollow = true

func hasAnyCaseInsensitivePrefix(prefixes []string, mustFollow bool) func(string) bool {
	return func(line string) bool {
		for _, p := range prefixes {
			if len(line) < len(p) {
				continue
			}
			if !strings.EqualFold(line[:len(p)], p) {
				continue
			}
			if !mustFollow {
				return true
			}
			if len(line) == len(p) {
				return true
			}
			switch c := line[len(p)]; {
			case isSpaceTabOrLineEnding(c), c == '>':
				return true
			}
		}
		return false
	}
}

func lineContainsAnyCaseInsensitive(needles []string) func(string) bool {
	return func(line string) bool {
		lower := strings.ToLower(line)
		for _, n := range needles {
			if strings.Contains(lower, strings.ToLower(n)) {
				return true
			}
		}
		return false
	}
}

// htmlBlockTags6 is the set of block-level tag names that open an HTML
// block under condition 6, built from golang.org/x/net/html/atom the way
// the teacher builds its htmlBlockStarters6 table.
var htmlBlockTags6 = buildHTMLBlockTags6()

func buildHTMLBlockTags6() map[string]bool {
	atoms := []atom.Atom{
		atom.Address, atom.Article, atom.Aside, atom.Base, atom.Basefont,
		atom.Blockquote, atom.Body, atom.Caption, atom.Center, atom.Col,
		atom.Colgroup, atom.Dd, atom.Details, atom.Dialog, atom.Dir,
		atom.Div, atom.Dl, atom.Dt, atom.Fieldset, atom.Figcaption,
		atom.Figure, atom.Footer, atom.Form, atom.Frame, atom.Frameset,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Head, atom.Header, atom.Hr, atom.Html, atom.Iframe,
		atom.Legend, atom.Li, atom.Link, atom.Main, atom.Menu, atom.Menuitem,
		atom.Nav, atom.Noframes, atom.Ol, atom.Optgroup, atom.Option,
		atom.P, atom.Param, atom.Section, atom.Summary, atom.Table,
		atom.Tbody, atom.Td, atom.Tfoot, atom.Th, atom.Thead, atom.Title,
		atom.Tr, atom.Track, atom.Ul,
	}
	m := make(map[string]bool, len(atoms)+1)
	for _, a := range atoms {
		m[a.String()] = true
	}
	m["basefont"] = true
	return m
}

// startsWithBlockLevelTag recognizes condition 6: a line beginning with
// "<" or "</" followed by one of htmlBlockTags6, then whitespace, '>',
// "/>", or end of line.
func startsWithBlockLevelTag(line string) bool {
	if len(line) < 2 || line[0] != '<' {
		return false
	}
	rest := line[1:]
	if len(rest) > 0 && rest[0] == '/' {
		rest = rest[1:]
	}
	n := scanHTMLTagName(rest)
	if n == 0 {
		return false
	}
	name := strings.ToLower(rest[:n])
	if !htmlBlockTags6[name] {
		return false
	}
	if n >= len(rest) {
		return true
	}
	switch c := rest[n]; {
	case isSpaceTabOrLineEnding(c), c == '>':
		return true
	case c == '/' && n+1 < len(rest) && rest[n+1] == '>':
		return true
	default:
		return false
	}
}

// startsWithCompleteTagLine recognizes condition 7: a complete open or
// closing tag (and nothing else but trailing whitespace) on a line by
// itself.
func startsWithCompleteTagLine(line string) bool {
	n := scanHTMLTag(line)
	if n <= 0 {
		return false
	}
	switch line[1] {
	case '!', '?':
		return false
	}
	return isBlankLine(line[n:])
}
