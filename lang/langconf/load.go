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
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

// LoadFile reads one language-configuration JSON file. When the file does
// not name its language, the file basename (without extension) is used,
// matching the <language>.json layout of configuration directories.
func LoadFile(fpath string) (*LanguageConfiguration, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("read %s failed: %w", fpath, err)
	}
	var conf LanguageConfiguration
	if err := sonic.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parse %s failed: %w", fpath, err)
	}
	if conf.Language == "" {
		base := filepath.Base(fpath)
		conf.Language = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &conf, nil
}

// LoadFile loads one configuration file into the registry.
func (r *Registry) LoadFile(fpath string) error {
	conf, err := LoadFile(fpath)
	if err != nil {
		return err
	}
	r.Register(conf)
	return nil
}

// LoadDir loads every *.json file of dir into the registry.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s failed: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
