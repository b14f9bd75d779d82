package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Excerpt возвращает текст описания без HTML разметки, обрезанный до maxRunes
// Обрезка идет по границе слова, в конце добавляется многоточие
func Excerpt(html string, maxRunes int) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	text := html
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return text
	}

	cut := string(runes[:maxRunes])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
