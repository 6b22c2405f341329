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

package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmark-go/commonmark"
)

func render(t *testing.T, markdown string) string {
	t.Helper()
	root, _ := commonmark.ParseDocument(markdown)
	var buf bytes.Buffer
	if err := Format(&buf, root); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestFormatHeading(t *testing.T) {
	got := render(t, "## Title\n")
	if !strings.Contains(got, "## Title") {
		t.Errorf("Format(%q) = %q, want it to contain %q", "## Title\n", got, "## Title")
	}
}

func TestFormatThematicBreak(t *testing.T) {
	got := render(t, "a\n\n---\n\nb\n")
	if !strings.Contains(got, "---") {
		t.Errorf("Format output %q missing thematic break", got)
	}
}

func TestFormatEmphasisRoundTrips(t *testing.T) {
	got := render(t, "a *b* c **d** e\n")
	if !strings.Contains(got, "*b*") {
		t.Errorf("Format output %q missing *b*", got)
	}
	if !strings.Contains(got, "**d**") {
		t.Errorf("Format output %q missing **d**", got)
	}
}

func TestFormatLink(t *testing.T) {
	got := render(t, "[text](http://example.com \"title\")\n")
	if !strings.Contains(got, "[text](http://example.com \"title\")") {
		t.Errorf("Format output = %q, want link preserved", got)
	}
}

func TestFormatListItem(t *testing.T) {
	got := render(t, "- one\n- two\n")
	if !strings.Contains(got, "- one") || !strings.Contains(got, "- two") {
		t.Errorf("Format output = %q, want both bullet items", got)
	}
}

func TestFormatCodeSpanFencePicksLongerBacktickRun(t *testing.T) {
	got := codeSpanFence("a `b` c")
	if got != "``" {
		t.Errorf("codeSpanFence(%q) = %q, want ``", "a `b` c", got)
	}
	got = codeSpanFence("plain")
	if got != "`" {
		t.Errorf("codeSpanFence(%q) = %q, want `", "plain", got)
	}
}
