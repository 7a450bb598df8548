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

// ScopedLineTokens is the maximal run of consecutive same-language tokens
// around a char offset, rebased to its own origin. Lines that embed other
// languages (e.g. script blocks in markup) yield a scope narrower than the
// line; mono-lingual lines yield the whole line.
type ScopedLineTokens struct {
	LineTokens
	Language        string
	FirstCharOffset int
	LastCharOffset  int
}

// Scoped computes the language scope of line at the given char offset.
// An untokenized line is a single scope covering the whole text with an
// empty language id.
func Scoped(line LineTokens, offset int) ScopedLineTokens {
	if len(line.Tokens) == 0 {
		return ScopedLineTokens{
			LineTokens:     line,
			LastCharOffset: len(line.Text),
		}
	}
	idx := line.IndexAtOffset(offset)
	lang := line.LanguageAt(idx)
	first, last := idx, idx
	for first > 0 && line.LanguageAt(first-1) == lang {
		first--
	}
	for last+1 < len(line.Tokens) && line.LanguageAt(last+1) == lang {
		last++
	}
	firstChar := line.StartOffset(first)
	lastChar := line.EndOffset(last)
	return ScopedLineTokens{
		LineTokens:      line.Slice(firstChar, lastChar),
		Language:        lang,
		FirstCharOffset: firstChar,
		LastCharOffset:  lastChar,
	}
}
