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

package token

import "fmt"

// StandardTokenType is the coarse semantic class a tokenizer assigns to a
// run of characters. Only these four classes matter downstream: string,
// regex and comment runs are opaque to structural analysis.
type StandardTokenType uint8

const (
	TypeOther   StandardTokenType = 0
	TypeComment StandardTokenType = 1
	TypeString  StandardTokenType = 2
	TypeRegEx   StandardTokenType = 3
)

func (t StandardTokenType) String() string {
	switch t {
	case TypeComment:
		return "comment"
	case TypeString:
		return "string"
	case TypeRegEx:
		return "regex"
	default:
		return "other"
	}
}

// IsOpaque reports whether the token content must not be interpreted
// structurally (brackets inside it are literal text).
func (t StandardTokenType) IsOpaque() bool {
	return t == TypeComment || t == TypeString || t == TypeRegEx
}

// Token is one entry of a line's token table. EndOffset is the exclusive
// end of the token within the line, 0-based; the start is the previous
// token's end (0 for the first token).
type Token struct {
	EndOffset int               `json:"endOffset"`
	Type      StandardTokenType `json:"type"`
	Language  string            `json:"language"`
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %s", t.EndOffset, t.Type, t.Language)
}

// LineTokens is the text of a single line together with its token table.
// Token end offsets are strictly increasing and the last one equals
// len(Text); a well-formed table partitions the text exactly.
type LineTokens struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

func (l LineTokens) Count() int {
	return len(l.Tokens)
}

func (l LineTokens) EndOffset(i int) int {
	return l.Tokens[i].EndOffset
}

func (l LineTokens) StartOffset(i int) int {
	if i == 0 {
		return 0
	}
	return l.Tokens[i-1].EndOffset
}

func (l LineTokens) TypeAt(i int) StandardTokenType {
	return l.Tokens[i].Type
}

func (l LineTokens) LanguageAt(i int) string {
	return l.Tokens[i].Language
}

func (l LineTokens) TokenText(i int) string {
	return l.Text[l.StartOffset(i):l.EndOffset(i)]
}

// Language returns the language id of the first token, or "" for an
// untokenized line.
func (l LineTokens) Language() string {
	if len(l.Tokens) == 0 {
		return ""
	}
	return l.Tokens[0].Language
}

// LanguageAtEnd returns the language id of the last token, or "" for an
// untokenized line.
func (l LineTokens) LanguageAtEnd() string {
	if len(l.Tokens) == 0 {
		return ""
	}
	return l.Tokens[len(l.Tokens)-1].Language
}

// IndexAtOffset returns the index of the token containing the given char
// offset. An offset at or past the end of the line maps to the last token,
// a negative offset to the first.
func (l LineTokens) IndexAtOffset(offset int) int {
	if len(l.Tokens) == 0 {
		return -1
	}
	lo, hi := 0, len(l.Tokens)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if l.Tokens[mid].EndOffset <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Slice returns the sub-line [start, end) with a token table rebased to
// the new origin. Tokens fully outside the range are dropped; tokens
// straddling a boundary are clamped so the result still partitions its
// text exactly.
func (l LineTokens) Slice(start, end int) LineTokens {
	if start < 0 {
		start = 0
	}
	if end > len(l.Text) {
		end = len(l.Text)
	}
	if start >= end {
		return LineTokens{}
	}
	out := LineTokens{Text: l.Text[start:end]}
	for i := range l.Tokens {
		if l.Tokens[i].EndOffset <= start {
			continue
		}
		t := l.Tokens[i]
		if t.EndOffset > end {
			t.EndOffset = end
		}
		t.EndOffset -= start
		out.Tokens = append(out.Tokens, t)
		if l.Tokens[i].EndOffset >= end {
			break
		}
	}
	return out
}
