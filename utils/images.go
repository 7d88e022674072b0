package utils

import "strings"

const placeholderImage = "/static/placeholder/card.jpg"

// ResolveImageURL turns the src field of a news record into a URL the
// browser can load: relative paths are resolved against the API base, and
// plain-http URLs are upgraded so an https page doesn't mix content.
func ResolveImageURL(src, apiBaseURL string) string {
	if src == "" {
		return placeholderImage
	}

	absolute := src
	if !strings.HasPrefix(absolute, "http") {
		absolute = strings.TrimRight(apiBaseURL, "/") + "/" + strings.TrimLeft(src, "/")
	}
	if strings.HasPrefix(absolute, "http://") {
		absolute = "https://" + strings.TrimPrefix(absolute, "http://")
	}
	return absolute
}
