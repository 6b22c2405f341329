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

// The GFM table extension (https://github.github.com/gfm/#tables-extension-)
// runs as a block-finalization post-process: a paragraph whose first two
// lines look like a header row and a delimiter row is promoted into a
// Table, following the same "reinterpret a paragraph after the fact"
// technique the teacher's (zombiezen.com/go/commonmark) blocks.go uses
// for setext headings.

package commonmark

import "strings"

// tryBuildTable attempts to reinterpret paragraphLines (the raw,
// unescaped source lines of a paragraph, not yet inline-parsed) as a GFM
// table. It returns the built Table node and true on success.
func tryBuildTable(arena *Arena, paragraphLines []string, refs *referenceMap, opts *Options) (*Node, bool) {
	if len(paragraphLines) < 2 {
		return nil, false
	}
	aligns, ok := parseTableDelimiterRow(paragraphLines[1])
	if !ok {
		return nil, false
	}
	headerCells := splitTableRow(paragraphLines[0])
	if len(headerCells) != len(aligns) {
		return nil, false
	}

	table := arena.NewNode(NodeValue{Kind: Table, Alignments: aligns})
	headerRow := arena.NewNode(NodeValue{Kind: TableRow, IsHeader: true})
	table.AppendChild(headerRow)
	for i, cell := range headerCells {
		addTableCell(arena, headerRow, cell, aligns[i], refs, opts)
	}

	for _, line := range paragraphLines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitTableRow(line)
		row := arena.NewNode(NodeValue{Kind: TableRow})
		table.AppendChild(row)
		for i := range aligns {
			var text string
			if i < len(cells) {
				text = cells[i]
			}
			addTableCell(arena, row, text, aligns[i], refs, opts)
		}
	}
	return table, true
}

func addTableCell(arena *Arena, row *Node, text string, align CellAlignment, refs *referenceMap, opts *Options) {
	cell := arena.NewNode(NodeValue{Kind: TableCell})
	row.AppendChild(cell)
	_ = align // alignment lives on the Table node's Alignments slice, indexed by column
	parseInlines(arena, cell, collapseWhitespace(unescapePipe(strings.TrimSpace(text))), refs, opts)
}

// parseTableDelimiterRow parses a table delimiter row such as
// "| --- | :---: | ---: |" and returns one [CellAlignment] per column, or
// ok=false if line is not a valid delimiter row.
func parseTableDelimiterRow(line string) (aligns []CellAlignment, ok bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns = make([]CellAlignment, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		core := strings.Trim(c, ":")
		if core == "" || strings.Trim(core, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case left:
			aligns[i] = AlignLeft
		case right:
			aligns[i] = AlignRight
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns, true
}

// splitTableRow splits a table row on unescaped '|' characters, trimming
// a single pair of leading/trailing pipes if present, per the GFM table
// grammar.
func splitTableRow(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) {
			cur.WriteByte(line[i])
			cur.WriteByte(line[i+1])
			i++
			continue
		}
		if line[i] == '|' {
			cells = append(cells, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(line[i])
	}
	cells = append(cells, cur.String())
	return cells
}

// looksLikeTableDelimiterRow is a cheap pre-check used by the block
// parser to decide whether a paragraph's second line is worth a full
// tryBuildTable attempt.
func looksLikeTableDelimiterRow(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '-', ':', '|', ' ', '\t':
		default:
			return false
		}
	}
	return strings.ContainsAny(line, "-")
}
