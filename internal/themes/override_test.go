// SPDX-License-Identifier: MIT
package themes

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleSheetInstallRelease(t *testing.T) {
	s := NewStyleSheet()
	release := s.Install(CustomStyleID, ".theme-custom{}")
	assert.Equal(t, 1, s.Len())

	css, ok := s.Get(CustomStyleID)
	assert.True(t, ok)
	assert.Equal(t, ".theme-custom{}", css)

	release()
	release()
	assert.Equal(t, 0, s.Len())
}

func TestStyleSheetLastWriterWins(t *testing.T) {
	s := NewStyleSheet()
	first := s.Install(CustomStyleID, "a")
	second := s.Install(CustomStyleID, "b")
	assert.Equal(t, 1, s.Len())

	// the stale release must not remove the newer override
	first()
	css, ok := s.Get(CustomStyleID)
	assert.True(t, ok)
	assert.Equal(t, "b", css)

	second()
	_, ok = s.Get(CustomStyleID)
	assert.False(t, ok)
}

func TestStyleSheetRender(t *testing.T) {
	s := NewStyleSheet()
	s.Install("one", "body{color:red}")
	s.Install("two", "</style><script>")

	assert.Equal(t,
		"<style id=\"one\">body{color:red}</style>\n"+
			"<style id=\"two\"><\\/style><script></style>\n",
		s.Render())
}

func TestStyleSheetConcurrentInstall(t *testing.T) {
	s := NewStyleSheet()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := s.Install(CustomStyleID, "x")
			_ = s.Render()
			release()
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 1)
}
