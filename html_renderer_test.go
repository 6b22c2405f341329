// Copyright 2024 Ross Light
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

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmark-go/commonmark/internal/normhtml"
)

func renderHTML(t *testing.T, markdown string, opts *Options) string {
	t.Helper()
	o := Options{}
	if opts != nil {
		o = *opts
	}
	p := NewParser(o)
	p.Feed([]byte(markdown))
	root := p.Finish()
	var buf bytes.Buffer
	if err := RenderHTML(&buf, root, &o); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRenderHeading(t *testing.T) {
	got := renderHTML(t, "# Title\n", nil)
	want := "<h1>Title</h1>\n"
	if string(normhtml.NormalizeHTML([]byte(got))) != string(normhtml.NormalizeHTML([]byte(want))) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderThematicBreak(t *testing.T) {
	got := renderHTML(t, "---\n", nil)
	if !strings.Contains(got, "<hr") {
		t.Errorf("got %q, want it to contain <hr", got)
	}
}

func TestRenderStrikethroughExtension(t *testing.T) {
	opts := NewOptions(WithStrikethrough())
	got := renderHTML(t, "~~gone~~\n", &opts)
	if !strings.Contains(got, "<del>gone</del>") {
		t.Errorf("got %q, want it to contain <del>gone</del>", got)
	}
}

func TestRenderSingleTildeStrikethrough(t *testing.T) {
	opts := NewOptions(WithStrikethrough())
	got := renderHTML(t, "Hello ~world~ there.\n", &opts)
	want := "<p>Hello <del>world</del> there.</p>\n"
	if string(normhtml.NormalizeHTML([]byte(got))) != string(normhtml.NormalizeHTML([]byte(want))) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderTripleTildeDoesNotDelimit(t *testing.T) {
	opts := NewOptions(WithStrikethrough())
	got := renderHTML(t, "a ~~~b~~~ c\n", &opts)
	if strings.Contains(got, "<del>") {
		t.Errorf("got %q, a run of three tildes should not open strikethrough", got)
	}
}

func TestRenderTableExtension(t *testing.T) {
	opts := NewOptions(WithTable())
	got := renderHTML(t, "| a | b |\n| --- | --- |\n| 1 | 2 |\n", &opts)
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<thead>") || !strings.Contains(got, "<tbody>") {
		t.Errorf("got %q, want a table with thead/tbody", got)
	}
}

func TestRenderTagfilterEscapesDisallowedTag(t *testing.T) {
	opts := NewOptions(WithTagfilter())
	got := renderHTML(t, "<title>hi</title>\n", &opts)
	if strings.Contains(got, "<title>") {
		t.Errorf("got %q, tagfilter should have escaped <title>", got)
	}
	if !strings.Contains(got, "&lt;title>") {
		t.Errorf("got %q, want escaped &lt;title>", got)
	}
}

func TestRenderTasklistCheckboxAttributeOrder(t *testing.T) {
	opts := NewOptions(WithTasklist())
	got := renderHTML(t, "* [x] Done\n* [ ] Not done\n", &opts)
	want := "<ul>\n<li><input type=\"checkbox\" disabled=\"\" checked=\"\" /> Done</li>\n<li><input type=\"checkbox\" disabled=\"\" /> Not done</li>\n</ul>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderHardBreaksOption(t *testing.T) {
	opts := NewOptions(WithHardBreaks())
	got := renderHTML(t, "line one\nline two\n", &opts)
	if !strings.Contains(got, "<br") {
		t.Errorf("got %q, want a <br /> from HardBreaks", got)
	}
}
