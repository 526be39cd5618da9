// Package render turns article bodies into terminal-friendly plain text.
package render

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`(?i)</?(p|div|br|h[1-6]|ul|ol|li|a|em|strong|code|pre|blockquote|span|img)\b`)

// LooksLikeHTML reports whether s appears to carry HTML markup.
func LooksLikeHTML(s string) bool {
	return htmlTag.MatchString(s)
}

// PlainText flattens HTML content to text, one block element per paragraph.
// Markdown and plain text pass through with trailing whitespace trimmed.
func PlainText(content string) string {
	if !LooksLikeHTML(content) {
		return strings.TrimRight(content, " \n\t")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimRight(content, " \n\t")
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	var paras []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, pre, blockquote").Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are emitted by their own match.
		if s.Find("p, li, pre").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			text = "## " + text
		case "blockquote":
			text = "> " + text
		}
		paras = append(paras, text)
	})
	if len(paras) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(paras, "\n\n")
}

// Wrap breaks text into lines no wider than width runes, keeping existing
// line breaks. Words longer than width are left whole.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			if len([]rune(cur))+1+len([]rune(w)) > width {
				out = append(out, cur)
				cur = w
				continue
			}
			cur += " " + w
		}
		out = append(out, cur)
	}
	return out
}
