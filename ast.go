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

package commonmark

//go:generate stringer -type=NodeKind -output=kind_string.go

// NodeKind identifies the variant held by a [NodeValue]. It is the Go
// rendition of a tagged union: a flat struct (NodeValue) carries every
// kind-specific field, and Kind says which of those fields are meaningful.
type NodeKind uint16

const (
	// Document is the root of every tree returned by [ParseDocument].
	Document NodeKind = 1 + iota

	// Block containers.
	BlockQuote
	List
	Item
	Table
	TableRow

	// Block leaves.
	Paragraph
	Heading
	CodeBlock
	HTMLBlock
	ThematicBreak
	TableCell
	LinkReferenceDefinition

	// Inlines.
	Text
	SoftBreak
	LineBreak
	Code
	HTMLInline
	Emph
	Strong
	Strikethrough
	Superscript
	Link
	Image
)

// IsBlock reports whether k is a block container or block leaf kind.
func (k NodeKind) IsBlock() bool {
	return k >= Document && k <= LinkReferenceDefinition
}

// IsContainer reports whether nodes of kind k may have block children.
func (k NodeKind) IsContainer() bool {
	switch k {
	case Document, BlockQuote, List, Item, Table, TableRow:
		return true
	default:
		return false
	}
}

// AcceptsInlines reports whether nodes of kind k have their Content run
// through the inline parser during document finalization.
func (k NodeKind) AcceptsInlines() bool {
	switch k {
	case Paragraph, Heading, TableCell:
		return true
	default:
		return false
	}
}

// ListType distinguishes bullet lists from ordered lists.
type ListType int

const (
	BulletList ListType = iota
	OrderedList
)

// ListDelimiter is the character (or pair) that follows an ordered list
// marker's number.
type ListDelimiter int

const (
	PeriodDelimiter ListDelimiter = iota
	ParenDelimiter
)

// NodeList carries the fields specific to [List] and [Item] nodes.
type NodeList struct {
	ListType     ListType
	MarkerOffset int
	Padding      int
	Start        int
	Delimiter    ListDelimiter
	BulletChar   byte
	Tight        bool
}

// CellAlignment is the per-column alignment of a [Table] node, taken from
// its delimiter row.
type CellAlignment int

const (
	AlignNone CellAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// NodeValue is the exhaustive, kind-tagged payload of a [Node]. Only the
// fields relevant to Value.Kind are meaningful; the rest are zero.
type NodeValue struct {
	Kind NodeKind

	// List, Item.
	List NodeList

	// Table.
	Alignments []CellAlignment

	// TableRow.
	IsHeader bool

	// Heading.
	Level  int
	Setext bool

	// CodeBlock.
	Fenced      bool
	FenceChar   byte
	FenceLength int
	FenceOffset int
	Info        string

	// CodeBlock, HTMLBlock, Text, Code, HTMLInline.
	Literal string

	// HTMLBlock.
	HTMLBlockType int

	// LinkReferenceDefinition.
	Label string

	// Link, Image.
	URL   string
	Title string
}
