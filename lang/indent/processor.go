// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent normalizes tokenized source lines for indentation-rule
// evaluation. Bracket substrings inside string, regex and comment tokens
// are stripped before any pattern sees the line, so a ")" inside a string
// literal can not be mistaken for a structural close bracket.
package indent

import (
	"strings"

	"github.com/cloudwego/langcore/lang/langconf"
	"github.com/cloudwego/langcore/lang/token"
)

// VirtualModel supplies the tokenized lines of a document. Line numbers
// are 1-based; LineMaxColumn is len(line text)+1, editor convention.
type VirtualModel interface {
	LineTokens(lineNumber int) token.LineTokens
	LineMaxColumn(lineNumber int) int
}

// LineProcessor produces processed lines for one document. It holds no
// per-line state; every call reads the model and configuration afresh.
type LineProcessor struct {
	model VirtualModel
	conf  *langconf.Registry
}

func NewLineProcessor(model VirtualModel, conf *langconf.Registry) *LineProcessor {
	return &LineProcessor{model: model, conf: conf}
}

// ProcessedLine returns the line's text with bracket substrings stripped
// from its opaque tokens.
func (p *LineProcessor) ProcessedLine(lineNumber int) string {
	return p.ProcessLineTokens(p.model.LineTokens(lineNumber)).Text
}

// ProcessedLineWithIndentation is ProcessedLine with the existing leading
// whitespace run replaced (not prefixed) by newIndentation, for evaluating
// a hypothetical re-indentation of the line.
func (p *LineProcessor) ProcessedLineWithIndentation(lineNumber int, newIndentation string) string {
	line := p.ProcessedLine(lineNumber)
	return newIndentation + strings.TrimLeft(line, " \t")
}

// ProcessLineTokens strips the configured bracket strings from the line's
// string/regex/comment tokens and rebases the token table to the shorter
// text. A language without bracket configuration passes through unchanged.
// Tokens are assumed mono-lingual here; mixed-language lines are sliced
// per scope by the caller first.
func (p *LineProcessor) ProcessLineTokens(line token.LineTokens) token.LineTokens {
	brackets := p.conf.Get(line.Language()).BracketStrings()
	if len(brackets) == 0 {
		return line
	}
	return StripBrackets(line, brackets)
}

// StripBrackets removes every occurrence of every bracket string from the
// opaque tokens of line. Characters removed from one token shift the end
// offsets of it and all following tokens by the accumulated delta, so the
// output table still partitions the output text exactly.
func StripBrackets(line token.LineTokens, brackets []string) token.LineTokens {
	var buf strings.Builder
	buf.Grow(len(line.Text))
	out := token.LineTokens{Tokens: make([]token.Token, 0, len(line.Tokens))}
	removed := 0
	for i := range line.Tokens {
		text := line.TokenText(i)
		if line.TypeAt(i).IsOpaque() {
			stripped := removeAll(text, brackets)
			removed += len(text) - len(stripped)
			text = stripped
		}
		buf.WriteString(text)
		t := line.Tokens[i]
		t.EndOffset -= removed
		out.Tokens = append(out.Tokens, t)
	}
	out.Text = buf.String()
	return out
}

// Bracket strings are literals, so literal replacement is exactly the
// escaped-regex global replace, applied bracket by bracket.
func removeAll(text string, brackets []string) string {
	for _, b := range brackets {
		if b == "" {
			continue
		}
		text = strings.ReplaceAll(text, b, "")
	}
	return text
}
