// Package cookie reads values out of a browser-style cookie string such as
// "csrftoken=abc; sessionid=xyz".
package cookie

import (
	"net/http"
	"net/url"
	"strings"
)

// Get returns the decoded value of the first cookie called name. Entries are
// separated by ";" and may carry surrounding whitespace. A value that is not
// valid percent-encoding is returned as-is.
func Get(cookies, name string) (string, bool) {
	if cookies == "" || name == "" {
		return "", false
	}
	prefix := name + "="
	for _, part := range strings.Split(cookies, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, prefix) {
			continue
		}
		value := part[len(prefix):]
		if decoded, err := url.PathUnescape(value); err == nil {
			return decoded, true
		}
		return value, true
	}
	return "", false
}

// Join renders cookies the way document.cookie does: name=value pairs
// separated by "; ".
func Join(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// Parse splits a cookie string into http.Cookie values, skipping malformed
// entries. Values are kept encoded.
func Parse(cookies string) []*http.Cookie {
	var out []*http.Cookie
	for _, part := range strings.Split(cookies, ";") {
		part = strings.TrimSpace(part)
		name, value, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, &http.Cookie{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return out
}
