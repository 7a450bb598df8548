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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/invopop/jsonschema"
	"go.lsp.dev/uri"

	"github.com/cloudwego/langcore/lang/indent"
	"github.com/cloudwego/langcore/lang/langconf"
	"github.com/cloudwego/langcore/lang/log"
	langmcp "github.com/cloudwego/langcore/lang/mcp"
	"github.com/cloudwego/langcore/lang/selector"
	"github.com/cloudwego/langcore/lang/service"
	"github.com/cloudwego/langcore/lang/token"
)

const Usage = `langcore <Action> [Flags]
Action:
   score        score a selector (JSON) against a candidate document
   process      process one tokenized line (JSON on stdin by default) for indent-rule evaluation
   serve        run as a JSON-RPC server over stdio
   mcp          run as a MCP server (stdio by default, HTTP with -addr)
   schema       print the JSON schema of "selector" or "langconf" files
   version      print the version of langcore
`

func main() {
	flags := flag.NewFlagSet("langcore", flag.ExitOnError)

	flagHelp := flags.Bool("h", false, "Show help message.")
	flagVerbose := flags.Bool("verbose", false, "Verbose mode.")
	flagConf := flags.String("conf", "", "Language-configuration JSON file or directory.")
	flagWatch := flags.Bool("watch", false, "Watch the configuration directory and reload on change.")

	flagSelector := flags.String("selector", "", "Selector JSON: language id string, filter object, or array.")
	flagURI := flags.String("uri", "", "Candidate document URI.")
	flagLanguage := flags.String("language", "", "Candidate document language id.")
	flagSynchronized := flags.Bool("synchronized", true, "Whether the candidate document is synchronized.")
	flagNotebookURI := flags.String("notebook-uri", "", "URI of the containing notebook, if any.")
	flagNotebookType := flags.String("notebook-type", "", "Type id of the containing notebook, if any.")

	flagLine := flags.String("line", "", "Line JSON to process; empty reads stdin.")
	flagNewIndentation := flags.String("new-indentation", "", "Replacement for the processed line's leading whitespace.")

	flagAddr := flags.String("addr", "", "HTTP listen address for the MCP server; empty serves stdio.")

	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}

	action := strings.ToLower(os.Args[1])
	if action != "version" {
		flags.Parse(os.Args[2:])
		if *flagHelp {
			flags.Usage()
			os.Exit(0)
		}
		if *flagVerbose {
			log.SetLogLevel(log.DebugLevel)
		}
	}

	switch action {
	case "version":
		fmt.Fprintf(os.Stdout, "%s\n", Version)

	case "score":
		score, err := runScore(*flagSelector, *flagURI, *flagLanguage, *flagSynchronized, *flagNotebookURI, *flagNotebookType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "%d\n", score)

	case "process":
		conf := loadConf(*flagConf, false)
		out, err := runProcess(flags, conf, *flagLine, *flagNewIndentation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "%s\n", out)

	case "serve":
		conf := loadConf(*flagConf, *flagWatch)
		ctx, cancel := signalContext()
		defer cancel()
		if err := service.NewServer(conf).ServeStdio(ctx); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "mcp":
		conf := loadConf(*flagConf, *flagWatch)
		svr := langmcp.NewServer(conf, langmcp.ServerOptions{
			ServerName:    "langcore",
			ServerVersion: Version,
			Verbose:       *flagVerbose,
		})
		var err error
		if *flagAddr != "" {
			err = svr.ServeHTTP(*flagAddr)
		} else {
			err = svr.ServeStdio()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "schema":
		if err := printSchema(flags.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	default:
		flags.Usage()
		os.Exit(1)
	}
}

func runScore(selJSON, docURI, language string, synchronized bool, notebookURI, notebookType string) (int, error) {
	if selJSON == "" {
		return 0, fmt.Errorf("flag -selector is required")
	}
	if docURI == "" {
		return 0, fmt.Errorf("flag -uri is required")
	}
	sel, err := selector.Parse([]byte(selJSON))
	if err != nil {
		return 0, err
	}
	doc := selector.Document{
		URI:          uri.URI(docURI),
		LanguageID:   language,
		Synchronized: synchronized,
	}
	if notebookType != "" {
		doc.Notebook = &selector.NotebookInfo{URI: uri.URI(notebookURI), Type: notebookType}
	}
	return selector.Score(sel, doc), nil
}

func runProcess(flags *flag.FlagSet, conf *langconf.Registry, lineJSON, newIndentation string) (string, error) {
	data := []byte(lineJSON)
	if lineJSON == "" {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin failed: %w", err)
		}
	}
	var line token.LineTokens
	if err := sonic.Unmarshal(data, &line); err != nil {
		return "", fmt.Errorf("parse line failed: %w", err)
	}
	proc := indent.NewLineProcessor(indent.LinesModel{line}, conf)
	if flagSet(flags, "new-indentation") {
		return proc.ProcessedLineWithIndentation(1, newIndentation), nil
	}
	out, err := sonic.Marshal(proc.ProcessLineTokens(line))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func loadConf(path string, watch bool) *langconf.Registry {
	conf := langconf.NewRegistry()
	if path == "" {
		return conf
	}
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stat %s failed: %v\n", path, err)
		os.Exit(1)
	}
	if info.IsDir() {
		err = conf.LoadDir(path)
	} else {
		err = conf.LoadFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if watch && info.IsDir() {
		if _, err := conf.Watch(path); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	return conf
}

func printSchema(kind string) error {
	var v interface{}
	switch kind {
	case "selector":
		v = &selector.Filter{}
	case "langconf":
		v = &langconf.LanguageConfiguration{}
	default:
		return fmt.Errorf("unknown schema kind %q (want selector or langconf)", kind)
	}
	schema := jsonschema.Reflect(v)
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s\n", data)
	return nil
}

func flagSet(flags *flag.FlagSet, name string) bool {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
