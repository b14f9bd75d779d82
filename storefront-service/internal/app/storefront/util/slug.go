package util

import "strings"

// Slugify строит slug из названия: нижний регистр, пробелы заменяются дефисами
// Уникальность не проверяется, это забота API
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
