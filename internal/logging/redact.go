package logging

import (
	"log/slog"
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that mark an attribute key as
// sensitive. Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTHORIZATION",
	"CREDENTIAL",
	"API_KEY",
	"APIKEY",
	"PRIVATE_KEY",
}

// TokenPrefixes contains known token prefixes that mark a value as sensitive
// regardless of key name.
var TokenPrefixes = []string{
	"ghp_",        // GitHub personal access token
	"gho_",        // GitHub OAuth token
	"ghu_",        // GitHub user-to-server token
	"ghs_",        // GitHub server-to-server token
	"ghr_",        // GitHub refresh token
	"github_pat_", // GitHub fine-grained token
	"Bearer ",
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts credentials from URLs.
// URLs with embedded credentials (user:pass@host) become (user:****@host).
// If the URL cannot be parsed, it is returned unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}

	password, hasPassword := parsed.User.Password()
	if !hasPassword || password == "" {
		return rawURL
	}

	parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// Redact returns value masked when key or value looks sensitive, and with
// URL credentials masked otherwise.
func Redact(key, value string) string {
	if value == "" {
		return value
	}
	if ShouldMask(key) || ContainsTokenPrefix(value) {
		return MaskValue(value)
	}
	if strings.Contains(value, "://") {
		return MaskURL(value)
	}
	return value
}

// redactAttr is a slog ReplaceAttr hook applying Redact to string values.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		if s := v.String(); s != "" {
			if masked := Redact(a.Key, s); masked != s {
				return slog.String(a.Key, masked)
			}
		}
	case slog.KindAny:
		if ShouldMask(a.Key) {
			return slog.String(a.Key, MaskValue(v.String()))
		}
	}
	return a
}
