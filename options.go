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

// Options holds the flat set of parser and renderer knobs described by
// spec.md §6. The zero Options is the strict-CommonMark default: no GFM
// extensions enabled.
type Options struct {
	HardBreaks      bool
	GitHubPreLang   bool
	Width           int
	ExtStrikethrough bool
	ExtTagfilter    bool
	ExtTable        bool
	ExtAutolink     bool
	ExtTasklist     bool
	ExtSuperscript  bool
}

// Option mutates an [Options] value. Constructors follow the functional
// options idiom used by russross/blackfriday's WithExtensions /
// blackfriday.New(options...), as consumed by jcorbin/soc.
type Option func(*Options)

// WithHardBreaks renders soft line breaks as hard line breaks.
func WithHardBreaks() Option {
	return func(o *Options) { o.HardBreaks = true }
}

// WithGitHubPreLang emits <pre lang="..."> instead of
// <pre><code class="language-..."> for fenced code blocks.
func WithGitHubPreLang() Option {
	return func(o *Options) { o.GitHubPreLang = true }
}

// WithWidth sets Options.Width. The CommonMark renderer (format.Format)
// takes no Options and does not read Width: its output is never wrapped,
// whatever the value.
func WithWidth(width int) Option {
	return func(o *Options) { o.Width = width }
}

// WithStrikethrough enables the GFM strikethrough extension (~~text~~).
func WithStrikethrough() Option {
	return func(o *Options) { o.ExtStrikethrough = true }
}

// WithTagfilter enables the GFM disallowed-raw-HTML tag filter.
func WithTagfilter() Option {
	return func(o *Options) { o.ExtTagfilter = true }
}

// WithTable enables the GFM table extension.
func WithTable() Option {
	return func(o *Options) { o.ExtTable = true }
}

// WithAutolink enables the GFM autolink (bare URL/email) extension.
func WithAutolink() Option {
	return func(o *Options) { o.ExtAutolink = true }
}

// WithTasklist enables the GFM task list extension.
func WithTasklist() Option {
	return func(o *Options) { o.ExtTasklist = true }
}

// WithSuperscript enables the superscript extension (^text^).
func WithSuperscript() Option {
	return func(o *Options) { o.ExtSuperscript = true }
}

// NewOptions builds an [Options] from a list of [Option] values.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ExtensionByName returns the [Option] for a named GFM extension, used by
// the CLI's repeated --extension flag, and reports whether name was
// recognized.
func ExtensionByName(name string) (Option, bool) {
	switch name {
	case "strikethrough":
		return WithStrikethrough(), true
	case "tagfilter":
		return WithTagfilter(), true
	case "table":
		return WithTable(), true
	case "autolink":
		return WithAutolink(), true
	case "tasklist":
		return WithTasklist(), true
	case "superscript":
		return WithSuperscript(), true
	default:
		return nil, false
	}
}
