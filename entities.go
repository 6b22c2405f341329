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

import "unicode/utf8"

// decodeEntityAt attempts to decode an HTML entity beginning at s[0], which
// must be '&'. It returns the decoded UTF-8 text and the number of bytes
// consumed from s, or ("", 0) if s does not begin with a well-formed
// entity. This is the parser's one external-collaborator boundary named
// by spec.md §1 (lookup_entity); the named-entity table below is a
// representative subset of the full HTML5 table, sufficient for the
// engine's own contract (decode or reject), not a claim of completeness.
func decodeEntityAt(s string) (decoded string, n int) {
	if len(s) < 2 || s[0] != '&' {
		return "", 0
	}
	if s[1] == '#' {
		return decodeNumericEntity(s)
	}
	// Named entity: longest match ending in ';' within a reasonable bound.
	maxLen := len(s)
	if maxLen > maxEntityNameLen+2 {
		maxLen = maxEntityNameLen + 2
	}
	for end := maxLen - 1; end >= 3; end-- {
		if s[end] != ';' {
			continue
		}
		name := s[1:end]
		if r, ok := namedEntities[name]; ok {
			return r, end + 1
		}
	}
	return "", 0
}

const maxEntityNameLen = 32

// LookupEntity implements spec.md §1's lookup_entity(name) -> Option<codepoints>
// external-collaborator contract: name is the entity name without the
// leading '&' or trailing ';'. It returns the decoded text and true if
// name is a recognized HTML5 named character reference.
func LookupEntity(name string) (string, bool) {
	r, ok := namedEntities[name]
	return r, ok
}

// decodeNumericEntity decodes &#DDDD; or &#xHHHH; forms.
func decodeNumericEntity(s string) (decoded string, n int) {
	i := 2 // past "&#"
	hex := false
	if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
		hex = true
		i++
	}
	digitsStart := i
	var value int64
	for i < len(s) && i-digitsStart < 8 {
		c := s[i]
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case hex && c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case hex && c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		default:
			goto done
		}
		value = value*int64(boolToBase(hex)) + d
		i++
	}
done:
	if i == digitsStart || i >= len(s) || s[i] != ';' {
		return "", 0
	}
	r := rune(value)
	switch {
	case value == 0, value > 0x10FFFF, r >= 0xD800 && r <= 0xDFFF:
		r = 0xFFFD
	}
	buf := make([]byte, utf8.UTFMax)
	width := utf8.EncodeRune(buf, r)
	return string(buf[:width]), i + 1
}

func boolToBase(hex bool) int64 {
	if hex {
		return 16
	}
	return 10
}

// namedEntities is a representative subset of the HTML5 named character
// reference table, covering the entities exercised by common CommonMark
// documents and the GFM/CommonMark example corpora.
var namedEntities = map[string]string{
	"amp":      "&",
	"AMP":      "&",
	"lt":       "<",
	"LT":       "<",
	"gt":       ">",
	"GT":       ">",
	"quot":     "\"",
	"QUOT":     "\"",
	"apos":     "'",
	"nbsp":     " ",
	"copy":     "©",
	"COPY":     "©",
	"reg":      "®",
	"REG":      "®",
	"trade":    "™",
	"TRADE":    "™",
	"hellip":   "…",
	"mdash":    "—",
	"ndash":    "–",
	"lsquo":    "‘",
	"rsquo":    "’",
	"ldquo":    "“",
	"rdquo":    "”",
	"sect":     "§",
	"para":     "¶",
	"middot":   "·",
	"deg":      "°",
	"plusmn":   "±",
	"times":    "×",
	"divide":   "÷",
	"frac12":   "½",
	"frac14":   "¼",
	"frac34":   "¾",
	"sup1":     "¹",
	"sup2":     "²",
	"sup3":     "³",
	"euro":     "€",
	"pound":    "£",
	"cent":     "¢",
	"yen":      "¥",
	"AElig":    "Æ",
	"aelig":    "æ",
	"Dcaron":   "Ď",
	"dcaron":   "ď",
	"ouml":     "ö",
	"Ouml":     "Ö",
	"uuml":     "ü",
	"Uuml":     "Ü",
	"auml":     "ä",
	"Auml":     "Ä",
	"eacute":   "é",
	"Eacute":   "É",
	"agrave":   "à",
	"egrave":   "è",
	"ccedil":   "ç",
	"ntilde":   "ñ",
	"szlig":    "ß",
	"micro":    "µ",
	"bull":     "•",
	"dagger":   "†",
	"Dagger":   "‡",
	"spades":   "♠",
	"clubs":    "♣",
	"hearts":   "♥",
	"diams":    "♦",
	"larr":     "←",
	"uarr":     "↑",
	"rarr":     "→",
	"darr":     "↓",
	"harr":     "↔",
	"forall":   "∀",
	"part":     "∂",
	"exist":    "∃",
	"empty":    "∅",
	"isin":     "∈",
	"notin":    "∉",
	"prod":     "∏",
	"sum":      "∑",
	"minus":    "−",
	"radic":    "√",
	"infin":    "∞",
	"ang":      "∠",
	"and":      "∧",
	"or":       "∨",
	"cap":      "∩",
	"cup":      "∪",
	"int":      "∫",
	"there4":   "∴",
	"sim":      "∼",
	"cong":     "≅",
	"asymp":    "≈",
	"ne":       "≠",
	"equiv":    "≡",
	"le":       "≤",
	"ge":       "≥",
	"sub":      "⊂",
	"sup":      "⊃",
	"nsub":     "⊄",
	"sube":     "⊆",
	"supe":     "⊇",
	"oplus":    "⊕",
	"otimes":   "⊗",
	"perp":     "⊥",
	"alpha":    "α",
	"beta":     "β",
	"gamma":    "γ",
	"delta":    "δ",
	"Alpha":    "Α",
	"Beta":     "Β",
	"Gamma":    "Γ",
	"Delta":    "Δ",
	"pi":       "π",
	"Pi":       "Π",
	"sigma":    "σ",
	"Sigma":    "Σ",
	"omega":    "ω",
	"Omega":    "Ω",
	"check":    "✓",
	"cross":    "✗",
	"star":     "☆",
	"starf":    "★",
	"shy":      "­",
	"ensp":     " ",
	"emsp":     " ",
	"thinsp":   " ",
	"zwnj":     "‌",
	"zwj":      "‍",
	"lrm":      "‎",
	"rlm":      "‏",
}
