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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cmark-go/commonmark/internal/normhtml"
	"github.com/cmark-go/commonmark/internal/spec"
)

func TestSpec(t *testing.T) {
	examples, err := spec.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, ex := range examples {
		t.Run(fmt.Sprintf("Example%d/%s", ex.Example, ex.Section), func(t *testing.T) {
			root, _ := ParseDocument(ex.Markdown)
			buf := new(bytes.Buffer)
			if err := RenderHTML(buf, root, nil); err != nil {
				t.Fatal("RenderHTML:", err)
			}
			got := string(normhtml.NormalizeHTML(buf.Bytes()))
			want := string(normhtml.NormalizeHTML([]byte(ex.HTML)))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("input:\n%s\noutput (-want +got):\n%s", ex.Markdown, diff)
			}
		})
	}
}

func TestGFMSpec(t *testing.T) {
	examples, err := spec.LoadGFM()
	if err != nil {
		t.Fatal(err)
	}
	opts := NewOptions(
		WithStrikethrough(),
		WithTable(),
		WithAutolink(),
		WithTasklist(),
		WithTagfilter(),
	)
	for _, ex := range examples {
		t.Run(fmt.Sprintf("Example%d/%s", ex.Example, ex.Section), func(t *testing.T) {
			p := NewParser(opts)
			p.Feed([]byte(ex.Markdown))
			root := p.Finish()
			buf := new(bytes.Buffer)
			if err := RenderHTML(buf, root, &opts); err != nil {
				t.Fatal("RenderHTML:", err)
			}
			got := string(normhtml.NormalizeHTML(buf.Bytes()))
			want := string(normhtml.NormalizeHTML([]byte(ex.HTML)))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("input:\n%s\noutput (-want +got):\n%s", ex.Markdown, diff)
			}
		})
	}
}
