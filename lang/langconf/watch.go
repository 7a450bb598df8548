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

package langconf

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cloudwego/langcore/lang/log"
)

// Watch reloads configuration files of dir as they are written or created,
// so contributed language configurations can be updated without a restart.
// The returned func stops the watcher.
func (r *Registry) Watch(dir string) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher failed: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch dir %s failed: %w", dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Ext(event.Name) != ".json" {
					continue
				}
				if err := r.LoadFile(event.Name); err != nil {
					log.Error("reload %s failed: %v", event.Name, err)
					continue
				}
				log.Info("reloaded language configuration %s", event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("watcher error: %v", err)
			}
		}
	}()

	return watcher.Close, nil
}
