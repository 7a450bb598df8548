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

package selector

import (
	"sort"
	"sync"
)

type entry[T any] struct {
	selector Selector
	provider T
	seq      int
}

// Registry binds providers to selectors and ranks them per document.
// Safe for concurrent use.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries []*entry[T]
	seq     int
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Register binds provider under sel and returns the unregister func.
func (r *Registry[T]) Register(sel Selector, provider T) func() {
	r.mu.Lock()
	e := &entry[T]{selector: sel, provider: provider, seq: r.seq}
	r.seq++
	r.entries = append(r.entries, e)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, cur := range r.entries {
			if cur == e {
				r.entries = append(r.entries[:i], r.entries[i+1:]...)
				return
			}
		}
	}
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// All returns the providers matching doc, best score first. Ties keep
// registration order.
func (r *Registry[T]) All(doc Document) []T {
	type scored struct {
		e     *entry[T]
		score int
	}
	r.mu.RLock()
	matches := make([]scored, 0, len(r.entries))
	for _, e := range r.entries {
		if s := Score(e.selector, doc); s > 0 {
			matches = append(matches, scored{e: e, score: s})
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.e.provider
	}
	return out
}

// Best returns the single best-matching provider for doc, if any.
func (r *Registry[T]) Best(doc Document) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *entry[T]
	bestScore := 0
	for _, e := range r.entries {
		s := Score(e.selector, doc)
		if s > bestScore {
			best, bestScore = e, s
		}
	}
	if best == nil {
		var zero T
		return zero, false
	}
	return best.provider, true
}
