// Package content handles the HTML fragments articles are written in.
package content

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday"
	"golang.org/x/net/html"
)

// StripMarkup removes every tag of the fragment and returns the remaining
// text, entities decoded. Comments are dropped.
func StripMarkup(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	buf := bytes.Buffer{}
	for {
		switch z.Next() {
		case html.ErrorToken:
			return buf.String()
		case html.TextToken:
			buf.Write(z.Text())
		}
	}
}

// TextLength is the number of characters left in the fragment once tags are
// removed and the result trimmed. Entities are counted as written, so
// "&nbsp;" is 6 characters.
func TextLength(fragment string) int {
	z := html.NewTokenizer(strings.NewReader(fragment))

	buf := bytes.Buffer{}
	for {
		switch z.Next() {
		case html.ErrorToken:
			return utf8.RuneCountInString(strings.TrimSpace(buf.String()))
		case html.TextToken:
			buf.Write(z.Raw())
		}
	}
}

var blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre"

// PlainText renders the fragment as plain text, one line per block element.
// Fragments without block elements are returned as their text.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(StripMarkup(fragment))
	}

	blocks := doc.Find(blockSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		// Nested blocks (a p inside a li) are rendered by their parent.
		return s.ParentsFiltered(blockSelector).Length() == 0
	})
	if blocks.Length() == 0 {
		return OneLine(doc.Text())
	}

	lines := make([]string, 0, blocks.Length())
	blocks.Each(func(_ int, s *goquery.Selection) {
		text := OneLine(s.Text())
		if text == "" {
			return
		}

		switch goquery.NodeName(s) {
		case "li":
			text = "- " + text
		case "blockquote":
			text = "> " + text
		case "h1", "h2", "h3", "h4", "h5", "h6":
			text = strings.ToUpper(text)
		}
		lines = append(lines, text)
	})

	return strings.Join(lines, "\n\n")
}

// Headings returns the text of the h2 and h3 elements of the fragment, used
// as an outline of the article.
func Headings(fragment string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	headings := make([]string, 0)
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		if text := OneLine(s.Text()); text != "" {
			headings = append(headings, text)
		}
	})
	return headings
}

// FromMarkdown converts markdown to an HTML fragment suitable as article
// content.
func FromMarkdown(md []byte) string {
	return strings.TrimSpace(string(blackfriday.MarkdownCommon(md)))
}

// OneLine collapses all whitespace runs into single spaces.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
