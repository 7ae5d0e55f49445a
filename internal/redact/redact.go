// Package redact masks secrets before they reach logs or terminal output.
package redact

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely holds a
// secret. Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"PASSWORD",
	"PASSWD",
	"TOKEN",
	"SECRET",
	"CREDENTIAL",
	"PRIVATE",
}

// Mask is the placeholder printed in place of short secrets.
const Mask = "********"

// Value masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked.
// Longer values keep the last 4 characters: "****xxxx".
func Value(value string) string {
	if len(value) <= 4 {
		return Mask
	}
	return "****" + value[len(value)-4:]
}

// URL redacts the password of a URL with embedded credentials, so
// postgresql://gertty:hunter22@db/gertty becomes postgresql://gertty:****er22@db/gertty.
// URLs that do not parse or carry no password are returned unchanged.
func URL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}

	password, ok := parsed.User.Password()
	if !ok || password == "" {
		return rawURL
	}

	parsed.User = url.UserPassword(parsed.User.Username(), Value(password))
	return parsed.String()
}

// ShouldMask reports whether the key name suggests a secret.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// Tree returns a copy of a decoded document with every secret-looking
// string value masked. Nested maps and lists are walked; the input is not
// modified.
func Tree(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, val := range typed {
			if s, ok := val.(string); ok && ShouldMask(k) {
				out[k] = Value(s)
				continue
			}
			out[k] = Tree(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = Tree(val)
		}
		return out
	default:
		return v
	}
}
