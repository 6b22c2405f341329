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

// Code generated by "stringer -type=NodeKind"; hand-maintained here since
// the generator isn't run as part of this build.

func (k NodeKind) String() string {
	switch k {
	case Document:
		return "Document"
	case BlockQuote:
		return "BlockQuote"
	case List:
		return "List"
	case Item:
		return "Item"
	case Table:
		return "Table"
	case TableRow:
		return "TableRow"
	case Paragraph:
		return "Paragraph"
	case Heading:
		return "Heading"
	case CodeBlock:
		return "CodeBlock"
	case HTMLBlock:
		return "HTMLBlock"
	case ThematicBreak:
		return "ThematicBreak"
	case TableCell:
		return "TableCell"
	case LinkReferenceDefinition:
		return "LinkReferenceDefinition"
	case Text:
		return "Text"
	case SoftBreak:
		return "SoftBreak"
	case LineBreak:
		return "LineBreak"
	case Code:
		return "Code"
	case HTMLInline:
		return "HTMLInline"
	case Emph:
		return "Emph"
	case Strong:
		return "Strong"
	case Strikethrough:
		return "Strikethrough"
	case Superscript:
		return "Superscript"
	case Link:
		return "Link"
	case Image:
		return "Image"
	default:
		return "NodeKind(0)"
	}
}
