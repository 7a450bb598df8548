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

import "testing"

// <html><script>var x</script>
var mixedLine = LineTokens{
	Text: `<html><script>var x</script>`,
	Tokens: []Token{
		{EndOffset: 14, Type: TypeOther, Language: "html"},
		{EndOffset: 19, Type: TypeOther, Language: "javascript"},
		{EndOffset: 28, Type: TypeOther, Language: "html"},
	},
}

func TestIndexAtOffset(t *testing.T) {
	cases := []struct {
		offset int
		want   int
	}{
		{-1, 0},
		{0, 0},
		{13, 0},
		{14, 1},
		{18, 1},
		{19, 2},
		{27, 2},
		{28, 2},
		{100, 2},
	}
	for _, c := range cases {
		if got := mixedLine.IndexAtOffset(c.offset); got != c.want {
			t.Errorf("IndexAtOffset(%d) = %d, want %d", c.offset, got, c.want)
		}
	}

	empty := LineTokens{}
	if got := empty.IndexAtOffset(0); got != -1 {
		t.Errorf("IndexAtOffset on empty line = %d, want -1", got)
	}
}

func TestOffsets(t *testing.T) {
	if got := mixedLine.StartOffset(0); got != 0 {
		t.Errorf("StartOffset(0) = %d, want 0", got)
	}
	if got := mixedLine.StartOffset(1); got != 14 {
		t.Errorf("StartOffset(1) = %d, want 14", got)
	}
	if got := mixedLine.TokenText(1); got != "var x" {
		t.Errorf("TokenText(1) = %q, want %q", got, "var x")
	}
	if got := mixedLine.Language(); got != "html" {
		t.Errorf("Language() = %q, want html", got)
	}
	if got := mixedLine.LanguageAtEnd(); got != "html" {
		t.Errorf("LanguageAtEnd() = %q, want html", got)
	}
}

func checkPartition(t *testing.T, l LineTokens) {
	t.Helper()
	prev := 0
	for i, tok := range l.Tokens {
		if tok.EndOffset < prev {
			t.Fatalf("token %d end %d before previous end %d", i, tok.EndOffset, prev)
		}
		prev = tok.EndOffset
	}
	if len(l.Tokens) > 0 && prev != len(l.Text) {
		t.Fatalf("last token ends at %d, text length %d", prev, len(l.Text))
	}
}

func TestSlice(t *testing.T) {
	s := mixedLine.Slice(14, 19)
	if s.Text != "var x" {
		t.Errorf("Slice text = %q, want %q", s.Text, "var x")
	}
	if len(s.Tokens) != 1 || s.Tokens[0].EndOffset != 5 {
		t.Errorf("Slice tokens = %+v", s.Tokens)
	}
	checkPartition(t, s)

	// straddling token boundaries clamps
	s = mixedLine.Slice(10, 16)
	if s.Text != "ipt>va" {
		t.Errorf("Slice text = %q, want %q", s.Text, "ipt>va")
	}
	if len(s.Tokens) != 2 {
		t.Fatalf("Slice tokens = %+v", s.Tokens)
	}
	checkPartition(t, s)

	if s := mixedLine.Slice(5, 5); s.Text != "" || len(s.Tokens) != 0 {
		t.Errorf("empty slice = %+v", s)
	}
}

func TestScoped(t *testing.T) {
	s := Scoped(mixedLine, 16)
	if s.Language != "javascript" {
		t.Errorf("scope language = %q, want javascript", s.Language)
	}
	if s.FirstCharOffset != 14 || s.LastCharOffset != 19 {
		t.Errorf("scope offsets = %d-%d, want 14-19", s.FirstCharOffset, s.LastCharOffset)
	}
	if s.Text != "var x" {
		t.Errorf("scope text = %q, want %q", s.Text, "var x")
	}

	// offset at line start stays in the leading scope
	s = Scoped(mixedLine, 0)
	if s.Language != "html" || s.FirstCharOffset != 0 {
		t.Errorf("leading scope = %+v", s)
	}

	// mono-lingual line: scope covers the whole line
	mono := LineTokens{
		Text: "let a = 1",
		Tokens: []Token{
			{EndOffset: 4, Type: TypeOther, Language: "javascript"},
			{EndOffset: 9, Type: TypeOther, Language: "javascript"},
		},
	}
	s = Scoped(mono, 6)
	if s.FirstCharOffset != 0 || s.LastCharOffset != 9 || s.Text != mono.Text {
		t.Errorf("mono scope = %+v", s)
	}

	// untokenized line: single scope, empty language
	s = Scoped(LineTokens{Text: "plain"}, 2)
	if s.Language != "" || s.FirstCharOffset != 0 || s.LastCharOffset != 5 {
		t.Errorf("untokenized scope = %+v", s)
	}
}
