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

// Command cmark reads Markdown from stdin or a file argument and writes
// rendered output to stdout.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cmark-go/commonmark"
	"github.com/cmark-go/commonmark/format"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var (
		hardBreaks    bool
		gitHubPreLang bool
		width         int
		extensions    []string
		to            string
	)

	c := &cobra.Command{
		Use:   "cmark [file]",
		Short: "Render CommonMark/GFM Markdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			optFuncs := []commonmark.Option{}
			if hardBreaks {
				optFuncs = append(optFuncs, commonmark.WithHardBreaks())
			}
			if gitHubPreLang {
				optFuncs = append(optFuncs, commonmark.WithGitHubPreLang())
			}
			if width > 0 {
				optFuncs = append(optFuncs, commonmark.WithWidth(width))
			}
			for _, name := range extensions {
				opt, ok := commonmark.ExtensionByName(name)
				if !ok {
					return fmt.Errorf("unknown extension %q", name)
				}
				optFuncs = append(optFuncs, opt)
			}
			opts := commonmark.NewOptions(optFuncs...)

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("cmark: %w", err)
				}
				defer f.Close()
				r = f
			}

			root, err := parse(r, opts)
			if err != nil {
				return fmt.Errorf("cmark: %w", err)
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			switch to {
			case "", "html":
				if err := commonmark.RenderHTML(w, root, &opts); err != nil {
					return fmt.Errorf("cmark: %w", err)
				}
			case "commonmark":
				if err := format.Format(w, root); err != nil {
					return fmt.Errorf("cmark: %w", err)
				}
			default:
				return fmt.Errorf("cmark: unknown output format %q", to)
			}
			return w.Flush()
		},
	}

	c.Flags().BoolVar(&hardBreaks, "hardbreaks", false, "render soft line breaks as hard line breaks")
	c.Flags().BoolVar(&gitHubPreLang, "github-pre-lang", false, `emit <pre lang="..."> instead of <pre><code class="language-...">`)
	c.Flags().IntVar(&width, "width", 0, "stored as Options.Width; commonmark output is not wrapped")
	c.Flags().StringArrayVar(&extensions, "extension", nil, "enable a GFM extension (repeatable): strikethrough, tagfilter, table, autolink, tasklist, superscript")
	c.Flags().StringVar(&to, "to", "html", "output format: html or commonmark")

	return c
}

// parse reads all of r incrementally through the streaming Feed API,
// rather than slurping it into one buffer first, so that large inputs
// exercise the same code path a long-lived streaming caller would use.
func parse(r io.Reader, opts commonmark.Options) (*commonmark.Node, error) {
	p := commonmark.NewParser(opts)
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			p.Feed(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return p.Finish(), nil
}
