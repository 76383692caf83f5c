// Package richtext binds an HTML fragment value to an editing surface.
package richtext

import (
	"fmt"
	"sync"
)

// Surface is the editing engine. It renders a fragment, applies formatting
// commands to its content and gives back its current fragment.
type Surface interface {
	RenderFragment(html string)
	ApplyCommand(name, arg string)
	Fragment() string
}

// Command is a toolbar action: the surface command it runs and its argument.
type Command struct {
	Name   string
	Title  string
	Action string
	Arg    string
}

// Toolbar lists the commands an Editor can run, in toolbar order.
var Toolbar = []Command{
	{Name: "bold", Title: "Bold", Action: "bold"},
	{Name: "italic", Title: "Italic", Action: "italic"},
	{Name: "underline", Title: "Underline", Action: "underline"},
	{Name: "h2", Title: "Heading 2", Action: "formatBlock", Arg: "<h2>"},
	{Name: "h3", Title: "Heading 3", Action: "formatBlock", Arg: "<h3>"},
	{Name: "paragraph", Title: "Paragraph", Action: "formatBlock", Arg: "<p>"},
	{Name: "bullets", Title: "Bullet List", Action: "insertUnorderedList"},
	{Name: "numbers", Title: "Numbered List", Action: "insertOrderedList"},
	{Name: "quote", Title: "Block Quote", Action: "formatBlock", Arg: "<blockquote>"},
	{Name: "code", Title: "Inline Code", Action: "insertCode", Arg: "code here"},
	{Name: "undo", Title: "Undo", Action: "undo"},
	{Name: "redo", Title: "Redo", Action: "redo"},
}

func lookup(name string) (Command, bool) {
	for _, cmd := range Toolbar {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// Editor keeps a surface and an external value in sync. Edits made on the
// surface are reported through onChange; the value set back in response is
// not rendered again.
type Editor struct {
	surface  Surface
	onChange func(html string)

	mu       sync.Mutex
	internal bool
}

func NewEditor(surface Surface, onChange func(html string)) *Editor {
	if onChange == nil {
		onChange = func(string) {}
	}
	return &Editor{
		surface:  surface,
		onChange: onChange,
	}
}

// SetValue is called whenever the external value changes. The surface is
// re-rendered only when the change did not come from it and differs from
// what it shows.
func (e *Editor) SetValue(html string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.internal {
		e.internal = false
		return
	}

	if e.surface.Fragment() != html {
		e.surface.RenderFragment(html)
	}
}

// Input must be called by the surface after each edit.
func (e *Editor) Input() {
	e.mu.Lock()
	e.internal = true
	html := e.surface.Fragment()
	e.mu.Unlock()

	e.onChange(html)
}

// Exec runs the toolbar command name on the surface.
func (e *Editor) Exec(name string) error {
	cmd, ok := lookup(name)
	if !ok {
		return fmt.Errorf("unknown editor command %q", name)
	}

	e.surface.ApplyCommand(cmd.Action, cmd.Arg)
	e.Input()
	return nil
}

// Value returns the fragment currently on the surface.
func (e *Editor) Value() string {
	return e.surface.Fragment()
}
