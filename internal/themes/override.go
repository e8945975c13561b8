// SPDX-License-Identifier: MIT
package themes

import (
	"html"
	"strings"
	"sync"
)

// StyleSheet holds named style overrides for a rendered page. Installing an
// id that is already present replaces it; the last writer wins.
type StyleSheet struct {
	mu      sync.Mutex
	seq     uint64
	entries []styleEntry
}

type styleEntry struct {
	id  string
	css string
	gen uint64
}

// NewStyleSheet returns an empty style sheet
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{}
}

// Install adds or replaces the override with the given id. The returned
// release func removes it again, unless a later Install already replaced it.
// Calling release more than once is a no-op.
func (s *StyleSheet) Install(id, css string) (release func()) {
	s.mu.Lock()
	s.seq++
	gen := s.seq
	replaced := false
	for i := range s.entries {
		if s.entries[i].id == id {
			s.entries[i] = styleEntry{id: id, css: css, gen: gen}
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append(s.entries, styleEntry{id: id, css: css, gen: gen})
	}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id, gen) })
	}
}

func (s *StyleSheet) remove(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id && e.gen == gen {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Get returns the CSS installed under id
func (s *StyleSheet) Get(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.id == id {
			return e.css, true
		}
	}
	return "", false
}

// Len returns the number of installed overrides
func (s *StyleSheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Render emits one <style> element per override, in install order
func (s *StyleSheet) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, e := range s.entries {
		b.WriteString(`<style id="` + html.EscapeString(e.id) + `">`)
		// keep the CSS from closing the element early
		b.WriteString(strings.ReplaceAll(e.css, "</", `<\/`))
		b.WriteString("</style>\n")
	}
	return b.String()
}
