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
	"fmt"
	"regexp"

	"github.com/cloudwego/langcore/lang/langconf"
)

// IndentRulesSupport evaluates a language's indentation patterns against
// line text. Unset patterns never match.
type IndentRulesSupport struct {
	increase   *regexp.Regexp
	decrease   *regexp.Regexp
	indentNext *regexp.Regexp
	unIndented *regexp.Regexp
}

func NewIndentRulesSupport(rules *langconf.IndentationRules) (*IndentRulesSupport, error) {
	if rules == nil {
		return &IndentRulesSupport{}, nil
	}
	s := &IndentRulesSupport{}
	var err error
	if s.increase, err = compile(rules.IncreaseIndentPattern); err != nil {
		return nil, err
	}
	if s.decrease, err = compile(rules.DecreaseIndentPattern); err != nil {
		return nil, err
	}
	if s.indentNext, err = compile(rules.IndentNextLinePattern); err != nil {
		return nil, err
	}
	if s.unIndented, err = compile(rules.UnIndentedLinePattern); err != nil {
		return nil, err
	}
	return s, nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile indent pattern %q failed: %w", pattern, err)
	}
	return re, nil
}

func (s *IndentRulesSupport) ShouldIncrease(text string) bool {
	return s.increase != nil && s.increase.MatchString(text)
}

func (s *IndentRulesSupport) ShouldDecrease(text string) bool {
	return s.decrease != nil && s.decrease.MatchString(text)
}

func (s *IndentRulesSupport) ShouldIndentNextLine(text string) bool {
	return s.indentNext != nil && s.indentNext.MatchString(text)
}

func (s *IndentRulesSupport) ShouldIgnore(text string) bool {
	return s.unIndented != nil && s.unIndented.MatchString(text)
}

// ProcessedIndentRulesSupport keys the same predicates by line number and
// evaluates them against the processed line only, never the raw text.
type ProcessedIndentRulesSupport struct {
	processor *LineProcessor
	rules     *IndentRulesSupport
}

func NewProcessedIndentRulesSupport(processor *LineProcessor, rules *IndentRulesSupport) *ProcessedIndentRulesSupport {
	return &ProcessedIndentRulesSupport{processor: processor, rules: rules}
}

func (s *ProcessedIndentRulesSupport) ShouldIncrease(lineNumber int) bool {
	return s.rules.ShouldIncrease(s.processor.ProcessedLine(lineNumber))
}

func (s *ProcessedIndentRulesSupport) ShouldDecrease(lineNumber int) bool {
	return s.rules.ShouldDecrease(s.processor.ProcessedLine(lineNumber))
}

func (s *ProcessedIndentRulesSupport) ShouldIndentNextLine(lineNumber int) bool {
	return s.rules.ShouldIndentNextLine(s.processor.ProcessedLine(lineNumber))
}

func (s *ProcessedIndentRulesSupport) ShouldIgnore(lineNumber int) bool {
	return s.rules.ShouldIgnore(s.processor.ProcessedLine(lineNumber))
}
