package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/knowledgehub/mock"
)

// value mimics the owner of the external value: it stores what the editor
// reports and feeds it back, as a form would.
type value struct {
	editor *Editor
	html   string
	events int
}

func (v *value) set(html string) {
	v.html = html
	v.editor.SetValue(html)
}

func createEditor() (*Editor, *mock.Surface, *value) {
	surface := &mock.Surface{}
	v := &value{}
	v.editor = NewEditor(surface, func(html string) {
		v.events++
		v.set(html)
	})
	return v.editor, surface, v
}

func TestEditor_ExternalValue(t *testing.T) {
	editor, surface, v := createEditor()

	v.set("<p>hello</p>")
	assert.Equal(t, "<p>hello</p>", surface.Fragment())
	assert.Equal(t, 1, surface.Renders())

	// Same value, no render
	v.set("<p>hello</p>")
	assert.Equal(t, 1, surface.Renders())

	v.set("<p>reset</p>")
	assert.Equal(t, 2, surface.Renders())
	assert.Equal(t, "<p>reset</p>", editor.Value())
}

func TestEditor_InternalChange(t *testing.T) {
	_, surface, v := createEditor()
	v.set("<p>hello</p>")

	surface.Type("<p>hello world</p>")
	v.editor.Input()

	assert.Equal(t, "<p>hello world</p>", v.html)
	assert.Equal(t, 1, v.events)
	assert.Equal(t, 1, surface.Renders(), "own edits are not rendered back")

	// The flag is one-shot: the next external change is rendered
	surface.Type("<p>typed</p>")
	v.editor.mu.Lock()
	v.editor.internal = true
	v.editor.mu.Unlock()
	v.editor.SetValue("<p>ignored</p>")
	v.set("<p>external</p>")
	assert.Equal(t, "<p>external</p>", surface.Fragment())
	assert.Equal(t, 2, surface.Renders())
}

func TestEditor_Exec(t *testing.T) {
	tts := map[string]string{
		"bold":      "bold",
		"italic":    "italic",
		"underline": "underline",
		"h2":        "formatBlock:<h2>",
		"h3":        "formatBlock:<h3>",
		"paragraph": "formatBlock:<p>",
		"bullets":   "insertUnorderedList",
		"numbers":   "insertOrderedList",
		"quote":     "formatBlock:<blockquote>",
		"code":      "insertCode:code here",
		"undo":      "undo",
		"redo":      "redo",
	}
	assert.Len(t, Toolbar, len(tts))

	for name, action := range tts {
		editor, surface, v := createEditor()
		v.set("<p>x</p>")

		require.NoError(t, editor.Exec(name), name)
		assert.Equal(t, []string{action}, surface.Commands(), name)
		assert.Equal(t, surface.Fragment(), v.html, "%s: fragment is re-emitted", name)
		assert.Equal(t, 1, v.events, name)
		assert.Equal(t, 1, surface.Renders(), name)
	}
}

func TestEditor_ExecUnknown(t *testing.T) {
	editor, surface, v := createEditor()

	assert.Error(t, editor.Exec("strike"))
	assert.Empty(t, surface.Commands())
	assert.Equal(t, 0, v.events)
}
