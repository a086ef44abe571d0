package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// Supported locales
const (
	LocaleEN = "en-US"
	LocaleES = "es-ES"
)

// DefaultLocale is used when no supported locale can be resolved.
const DefaultLocale = LocaleEN

// T returns the translated message for key, falling back to the default
// locale and finally to the key itself.
func T(locale string, key string) string {
	normalized := Normalize(locale)
	if catalog, ok := catalogs[normalized]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf formats the translated message for key with args.
func Sprintf(locale string, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Normalize maps a locale tag to a supported locale.
func Normalize(locale string) string {
	tag := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(tag, "es"):
		return LocaleES
	case strings.HasPrefix(tag, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// ResolveLocale resolves the request locale from the query string, the
// locale cookie, and finally the Accept-Language header.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return Normalize(lang)
	}
	if cookie, err := c.Cookie("locale"); err == nil && strings.TrimSpace(cookie) != "" {
		return Normalize(cookie)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		normalized := Normalize(tag)
		if strings.HasPrefix(strings.ToLower(tag), strings.ToLower(normalized[:2])) {
			return normalized
		}
	}
	return DefaultLocale
}
