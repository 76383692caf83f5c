package richtext

import (
	"html"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Buffer is a headless Surface. Without a selection, commands apply to the
// whole fragment: inline styles wrap every block, block formats retag every
// block, inline code is appended at the end.
type Buffer struct {
	mu     sync.Mutex
	html   string
	past   []string
	future []string
}

// RenderFragment replaces the content and forgets the edit history.
func (b *Buffer) RenderFragment(fragment string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.html = fragment
	b.past = nil
	b.future = nil
}

func (b *Buffer) Fragment() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.html
}

// ApplyCommand runs one of the toolbar actions. Unknown actions are ignored.
func (b *Buffer) ApplyCommand(name, arg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch name {
	case "undo":
		if len(b.past) == 0 {
			return
		}
		b.future = append(b.future, b.html)
		b.html = b.past[len(b.past)-1]
		b.past = b.past[:len(b.past)-1]
		return
	case "redo":
		if len(b.future) == 0 {
			return
		}
		b.past = append(b.past, b.html)
		b.html = b.future[len(b.future)-1]
		b.future = b.future[:len(b.future)-1]
		return
	}

	next, ok := apply(b.html, name, arg)
	if !ok || next == b.html {
		return
	}
	b.past = append(b.past, b.html)
	b.future = nil
	b.html = next
}

var inlineTags = map[string]string{
	"bold":      "strong",
	"italic":    "em",
	"underline": "u",
}

func apply(fragment, name, arg string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", false
	}

	body := doc.Find("body")
	if body.Children().Length() == 0 {
		if strings.TrimSpace(body.Text()) == "" && name != "insertCode" {
			return fragment, true
		}
		body.SetHtml("<p>" + inner(body) + "</p>")
	}
	blocks := body.Children()

	switch name {
	case "bold", "italic", "underline":
		tag := inlineTags[name]
		targets := blocks.Not("ul, ol").AddSelection(blocks.Filter("ul, ol").Find("li"))

		// Styles toggle: when every block already has it, it is removed,
		// otherwise the blocks without it get it.
		styled := func(s *goquery.Selection) bool {
			contents := s.Contents()
			return contents.Length() == 1 && goquery.NodeName(contents) == tag
		}
		if targets.FilterFunction(func(_ int, s *goquery.Selection) bool { return !styled(s) }).Length() == 0 {
			targets.Each(func(_ int, s *goquery.Selection) {
				s.SetHtml(inner(s.Contents()))
			})
			break
		}
		targets.Each(func(_ int, s *goquery.Selection) {
			if !styled(s) {
				s.WrapInnerHtml("<" + tag + "></" + tag + ">")
			}
		})
	case "formatBlock":
		tag := strings.Trim(arg, "<>")
		if tag == "" {
			return "", false
		}
		var buf strings.Builder
		for _, item := range items(blocks) {
			buf.WriteString("<" + tag + ">" + item + "</" + tag + ">")
		}
		body.SetHtml(buf.String())
	case "insertUnorderedList", "insertOrderedList":
		tag := "ul"
		if name == "insertOrderedList" {
			tag = "ol"
		}

		// Toggling the list a fragment already is turns it back to paragraphs.
		if blocks.Length() == 1 && goquery.NodeName(blocks) == tag {
			var buf strings.Builder
			for _, item := range items(blocks) {
				buf.WriteString("<p>" + item + "</p>")
			}
			body.SetHtml(buf.String())
			break
		}

		var buf strings.Builder
		buf.WriteString("<" + tag + ">")
		for _, item := range items(blocks) {
			buf.WriteString("<li>" + item + "</li>")
		}
		buf.WriteString("</" + tag + ">")
		body.SetHtml(buf.String())
	case "insertCode":
		text := arg
		if text == "" {
			text = "code here"
		}
		last := body.Children().Last()
		if n := goquery.NodeName(last); n == "ul" || n == "ol" {
			last = last.Find("li").Last()
		}
		last.AppendHtml("<code>" + html.EscapeString(text) + "</code>")
	default:
		return "", false
	}

	return inner(body), true
}

// items returns the inner html of every block, list items counting as blocks.
func items(blocks *goquery.Selection) []string {
	var res []string
	blocks.Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "ul", "ol":
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				res = append(res, inner(li))
			})
		default:
			res = append(res, inner(s))
		}
	})
	return res
}

func inner(s *goquery.Selection) string {
	h, _ := s.Html()
	return h
}
