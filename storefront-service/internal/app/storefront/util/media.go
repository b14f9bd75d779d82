package util

import "strings"

const uploadsDir = "/uploads"

// AbsoluteMediaURL превращает относительный путь к изображению в абсолютный URL
//
// Пустой путь остается пустым, ссылки со схемой http/https (в любом регистре)
// и пути внутри /uploads не трогаются. В остальных случаях между base и path
// ровно один слэш; "httpfoo.jpg" или "/uploadsfoo.jpg" считаются относительными.
func AbsoluteMediaURL(base, path string) string {
	if path == "" {
		return ""
	}
	if hasHTTPScheme(path) {
		return path
	}
	if path == uploadsDir || strings.HasPrefix(path, uploadsDir+"/") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func hasHTTPScheme(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
