// ABOUTME: Converts editor HTML into terminal text, excerpts, and emptiness checks.
// ABOUTME: Block elements become paragraphs; list items get bullets.
package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExcerptLength is the number of runes kept by Excerpt.
const ExcerptLength = 150

const blockSelector = "p, div, h1, h2, h3, h4, h5, h6, blockquote, pre, li, tr"

func parse(html string) (*goquery.Document, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}
	return doc, true
}

// Text renders html as plain text with one blank line between blocks.
func Text(html string) string {
	doc, ok := parse(html)
	if !ok {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find(blockSelector).AppendHtml("\n\n")

	var out []string
	blank := true
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Excerpt returns the first ExcerptLength runes of the text content
// followed by "...". Empty content yields "".
func Excerpt(html string) string {
	if html == "" {
		return ""
	}
	text := flatText(html)
	runes := []rune(text)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return string(runes) + "..."
}

// IsEmptyContent reports whether editor output has no visible text or images.
func IsEmptyContent(html string) bool {
	trimmed := strings.TrimSpace(html)
	if trimmed == "" || trimmed == "<p><br></p>" {
		return true
	}
	doc, ok := parse(trimmed)
	if !ok {
		return false
	}
	if doc.Find("img").Length() > 0 {
		return false
	}
	return strings.TrimSpace(doc.Text()) == ""
}

// flatText is the text content with runs of whitespace collapsed.
func flatText(html string) string {
	doc, ok := parse(html)
	if !ok {
		return strings.Join(strings.Fields(html), " ")
	}
	doc.Find("script, style").Remove()
	doc.Find(blockSelector + ", br").AppendHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}
