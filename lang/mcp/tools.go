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

package mcp

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"go.lsp.dev/uri"

	"github.com/cloudwego/langcore/lang/indent"
	"github.com/cloudwego/langcore/lang/langconf"
	"github.com/cloudwego/langcore/lang/selector"
	"github.com/cloudwego/langcore/lang/token"
)

func getTools(conf *langconf.Registry) []Tool {
	return []Tool{
		scoreSelectorTool(),
		processLineTool(conf),
	}
}

func scoreSelectorTool() Tool {
	t := mcp.NewTool("score_selector",
		mcp.WithDescription("Score a document selector against a candidate document. Returns the match strength, an integer 0-10."),
		mcp.WithString("selector", mcp.Required(),
			mcp.Description("selector JSON: a language id string, a filter object, or an array of either")),
		mcp.WithString("uri", mcp.Required(),
			mcp.Description("candidate document URI")),
		mcp.WithString("language", mcp.Required(),
			mcp.Description("candidate document language id")),
		mcp.WithBoolean("synchronized",
			mcp.Description("whether the document content is synchronized to the caller (default true)")),
		mcp.WithString("notebook_uri",
			mcp.Description("URI of the notebook the document belongs to, if any")),
		mcp.WithString("notebook_type",
			mcp.Description("type id of the notebook the document belongs to, if any")),
	)
	return Tool{Tool: t, Handler: handleScoreSelector}
}

func handleScoreSelector(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selJSON, err := request.RequireString("selector")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	docURI, err := request.RequireString("uri")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language, err := request.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sel, err := selector.Parse([]byte(selJSON))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc := selector.Document{
		URI:          uri.URI(docURI),
		LanguageID:   language,
		Synchronized: request.GetBool("synchronized", true),
	}
	if nbType := request.GetString("notebook_type", ""); nbType != "" {
		doc.Notebook = &selector.NotebookInfo{
			URI:  uri.URI(request.GetString("notebook_uri", "")),
			Type: nbType,
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d", selector.Score(sel, doc))), nil
}

func processLineTool(conf *langconf.Registry) Tool {
	t := mcp.NewTool("process_line",
		mcp.WithDescription("Strip configured bracket strings from the string/regex/comment tokens of one tokenized line, returning the processed text and the rebased token table as JSON."),
		mcp.WithString("line", mcp.Required(),
			mcp.Description(`line JSON: {"text": "...", "tokens": [{"endOffset": n, "type": t, "language": "..."}]}`)),
		mcp.WithString("new_indentation",
			mcp.Description("replacement for the processed line's leading whitespace")),
	)
	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lineJSON, err := request.RequireString("line")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var line token.LineTokens
		if err := sonic.Unmarshal([]byte(lineJSON), &line); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse line failed: %v", err)), nil
		}
		proc := indent.NewLineProcessor(indent.LinesModel{line}, conf)
		processed := proc.ProcessLineTokens(line)
		if raw, ok := request.GetArguments()["new_indentation"]; ok && raw != nil {
			processed = token.LineTokens{Text: proc.ProcessedLineWithIndentation(1, request.GetString("new_indentation", ""))}
		}
		out, err := sonic.Marshal(processed)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
	return Tool{Tool: t, Handler: handler}
}
