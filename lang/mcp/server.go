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

// Package mcp exposes the scoring and line-processing engines as MCP
// tools, over stdio or streamable HTTP.
package mcp

import (
	"context"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cloudwego/langcore/lang/langconf"
	alog "github.com/cloudwego/langcore/lang/log"
)

type Server struct {
	Server *server.MCPServer
}

type Tool struct {
	mcp.Tool
	Handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type ServerOptions struct {
	ServerName    string
	ServerVersion string
	Verbose       bool
}

func NewServer(conf *langconf.Registry, options ServerOptions) *Server {
	opts := []server.ServerOption{
		server.WithPromptCapabilities(false),
		server.WithToolCapabilities(false),
	}
	if options.Verbose {
		opts = append(opts, server.WithLogging())
	}
	mcpServer := server.NewMCPServer(options.ServerName, options.ServerVersion, opts...)

	for _, tool := range getTools(conf) {
		mcpServer.AddTool(tool.Tool, tool.Handler)
	}

	return &Server{
		Server: mcpServer,
	}
}

func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.Server, server.WithErrorLogger(stdlog.Default()))
}

func (s *Server) ServeHTTP(addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.Server, server.WithLogger(alog.NewStdLogger()))
	return httpServer.Start(addr)
}
