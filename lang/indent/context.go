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

package indent

import (
	"github.com/cloudwego/langcore/lang/token"
)

// ProcessedContext are the three processed fragments around an edit range
// that the indent rules are evaluated against.
type ProcessedContext struct {
	// BeforeRange is the start line's scope text up to the range start.
	BeforeRange token.LineTokens
	// AfterRange runs from the range end (range start for an empty range)
	// to the end of the scope on the relevant line.
	AfterRange token.LineTokens
	// PreviousLine is the preceding line's trailing scope, or empty when
	// the scope can not continue from the previous line.
	PreviousLine token.LineTokens
}

// ProcessedContextAroundRange computes the fragments around rng. Each
// fragment is the relevant slice of its line's language scope, run through
// the same bracket stripping as whole-line processing.
func (p *LineProcessor) ProcessedContextAroundRange(rng token.Range) ProcessedContext {
	var ctx ProcessedContext

	startLine := p.model.LineTokens(rng.Start.Line)
	scope := token.Scoped(startLine, rng.Start.Character)
	ctx.BeforeRange = p.processScopedSlice(scope, 0, rng.Start.Character-scope.FirstCharOffset)

	if rng.IsEmpty() {
		ctx.AfterRange = p.processScopedSlice(scope, rng.Start.Character-scope.FirstCharOffset, len(scope.Text))
	} else {
		endLine := p.model.LineTokens(rng.End.Line)
		endScope := token.Scoped(endLine, rng.End.Character)
		ctx.AfterRange = p.processScopedSlice(endScope, rng.End.Character-endScope.FirstCharOffset, len(endScope.Text))
	}

	ctx.PreviousLine = p.processedPreviousLine(rng.Start.Line, scope)
	return ctx
}

// processedPreviousLine returns the processed trailing scope of the line
// before lineNumber, but only when the current scope could plausibly
// continue from it: the previous line must exist, the scope must start at
// char offset 0 of its own line, and the previous line must end in the
// same language. Any failed condition yields an empty fragment, never
// partial data.
func (p *LineProcessor) processedPreviousLine(lineNumber int, scope token.ScopedLineTokens) token.LineTokens {
	if lineNumber-1 < 1 {
		return token.LineTokens{}
	}
	if scope.FirstCharOffset != 0 {
		return token.LineTokens{}
	}
	prev := p.model.LineTokens(lineNumber - 1)
	if prev.LanguageAtEnd() != scope.Language {
		return token.LineTokens{}
	}
	prevScope := token.Scoped(prev, len(prev.Text))
	return p.processScopedSlice(prevScope, 0, len(prevScope.Text))
}

func (p *LineProcessor) processScopedSlice(scope token.ScopedLineTokens, from, to int) token.LineTokens {
	sliced := scope.Slice(from, to)
	brackets := p.conf.Get(scope.Language).BracketStrings()
	if len(brackets) == 0 {
		return sliced
	}
	return StripBrackets(sliced, brackets)
}
