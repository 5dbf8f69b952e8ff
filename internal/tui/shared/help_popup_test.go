package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHelpPopup(t *testing.T) {
	sections := []HelpSection{
		{Title: "Board", Binds: []HelpBind{{Key: "h/l", Desc: "Switch column"}}},
		{Title: "Moving Cards", Binds: []HelpBind{{Key: "enter", Desc: "Drop card"}}},
	}

	view := RenderHelpPopup(sections, 80, 24)

	for _, want := range []string{"Board", "Moving Cards", "h/l", "Switch column", "Drop card", dismissHint} {
		assert.Contains(t, view, want)
	}
}

func TestKeyColumnWidth(t *testing.T) {
	assert.Equal(t, 2, keyColumnWidth(nil))
	assert.Equal(t, 7, keyColumnWidth([]HelpSection{
		{Binds: []HelpBind{{Key: "q"}, {Key: "enter"}}},
		{Binds: []HelpBind{{Key: "g/G"}}},
	}))
}
