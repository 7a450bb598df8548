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

import "github.com/cloudwego/langcore/lang/token"

// LinesModel is a VirtualModel over an in-memory slice of tokenized lines.
// Line numbers are 1-based; out-of-range lines read as empty.
type LinesModel []token.LineTokens

func (m LinesModel) LineTokens(lineNumber int) token.LineTokens {
	if lineNumber < 1 || lineNumber > len(m) {
		return token.LineTokens{}
	}
	return m[lineNumber-1]
}

func (m LinesModel) LineMaxColumn(lineNumber int) int {
	return len(m.LineTokens(lineNumber).Text) + 1
}
