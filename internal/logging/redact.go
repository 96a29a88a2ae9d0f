package logging

import (
	"log/slog"
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"CREDENTIAL",
	"API_KEY",
	"ACCOUNT_KEY",
	"SAS",
	"SIG",
}

// sensitiveQueryParams are query parameters carrying storage credentials.
var sensitiveQueryParams = []string{"sig", "se", "sv", "sp", "skoid", "sktid", "token", "code"}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
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

// MaskURL redacts credentials from a URL: the password of embedded user
// info and the values of signature-bearing query parameters such as a SAS
// token's sig. Strings that are not absolute URLs are returned unchanged.
func MaskURL(raw string) string {
	if !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	changed := false
	if u.User != nil {
		if password, ok := u.User.Password(); ok && password != "" {
			u.User = url.UserPassword(u.User.Username(), MaskValue(password))
			changed = true
		}
	}

	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if isSensitiveParam(key) {
				q.Set(key, "****")
				changed = true
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}

	if !changed {
		return raw
	}
	return u.String()
}

func isSensitiveParam(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range sensitiveQueryParams {
		if lower == p {
			return true
		}
	}
	return false
}

// redactValue applies key- and URL-based masking to a rendered value.
func redactValue(key string, value any) any {
	s, isString := value.(string)
	if ShouldMask(key) {
		if !isString {
			return MaskValue(slog.AnyValue(value).String())
		}
		return MaskValue(s)
	}
	if isString {
		return MaskURL(s)
	}
	return value
}

// RedactAttr is a slog.HandlerOptions.ReplaceAttr function applying the same
// masking as Handler, for use with the standard JSON and text handlers.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		if redacted := redactValue(a.Key, v.String()); redacted != v.String() {
			return slog.Any(a.Key, redacted)
		}
	case slog.KindAny:
		if ShouldMask(a.Key) {
			return slog.String(a.Key, MaskValue(v.String()))
		}
	}
	return a
}
