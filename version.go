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
	"debug/buildinfo"
	"os"

	"github.com/cloudwego/langcore/lang/log"
)

// Version is what the version action prints. Binaries built from a module
// checkout get the module version stamped here at startup.
var Version = "langcore-dev"

func init() {
	path, err := os.Executable()
	if err != nil {
		return
	}
	info, err := buildinfo.ReadFile(path)
	if err != nil {
		log.Debug("read build info failed: %v", err)
		return
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		Version = v
	}
}
