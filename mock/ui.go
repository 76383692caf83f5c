package mock

import (
	"sync"
)

type Notice struct {
	Level   string
	Message string
}

// Notifier records the notices it receives.
type Notifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *Notifier) Success(msg string) { n.add("success", msg) }
func (n *Notifier) Error(msg string)   { n.add("error", msg) }
func (n *Notifier) Info(msg string)    { n.add("info", msg) }

func (n *Notifier) Notices() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice{}, n.notices...)
}

// Messages returns the message of every notice, in order.
func (n *Notifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	msgs := make([]string, len(n.notices))
	for i, notice := range n.notices {
		msgs[i] = notice.Message
	}
	return msgs
}

func (n *Notifier) add(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Level: level, Message: msg})
}

// Navigator records the paths it is asked to go to.
type Navigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *Navigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string{}, n.paths...)
}

// Last returns the last path navigated to, empty if none.
func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

// Surface is an editing surface holding its fragment as is. Commands are
// recorded and wrap the fragment in a marker so their effect is visible.
type Surface struct {
	mu       sync.Mutex
	html     string
	renders  int
	commands []string
}

func (s *Surface) RenderFragment(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.html = html
	s.renders++
}

func (s *Surface) ApplyCommand(name, arg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := name
	if arg != "" {
		cmd = name + ":" + arg
	}
	s.commands = append(s.commands, cmd)
	s.html = "<!--" + cmd + "-->" + s.html
}

func (s *Surface) Fragment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.html
}

// Type simulates the user typing: the content changes without a render.
func (s *Surface) Type(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.html = html
}

func (s *Surface) Renders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renders
}

func (s *Surface) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.commands...)
}
