package app

import (
	"net/url"
	"strings"
)

// Postgres takes either a URL (postgres://...) or a key=value DSN. Both
// helpers below accept either form.

func parseDBURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	return u, true
}

// dsnValue looks key up in a key=value DSN.
func dsnValue(dsn, key string) (string, bool) {
	for _, token := range strings.Fields(dsn) {
		if k, v, ok := strings.Cut(token, "="); ok && k == key {
			return strings.Trim(v, `"'`), true
		}
	}
	return "", false
}

// NormalizeDBURL applies sslMode unless raw already names one.
func NormalizeDBURL(raw, sslMode string) string {
	raw, sslMode = strings.TrimSpace(raw), strings.TrimSpace(sslMode)
	if raw == "" || sslMode == "" {
		return raw
	}

	if u, ok := parseDBURL(raw); ok {
		query := u.Query()
		if query.Get("sslmode") != "" {
			return raw
		}
		query.Set("sslmode", sslMode)
		u.RawQuery = query.Encode()
		return u.String()
	}
	if _, ok := dsnValue(raw, "sslmode"); ok {
		return raw
	}
	return raw + " sslmode=" + sslMode
}

// dbNameFromURL is logged at startup so the connected database is visible
// without printing credentials.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, ok := parseDBURL(raw); ok {
		if name := strings.Trim(u.Path, "/ "); name != "" {
			return name
		}
	}
	name, _ := dsnValue(raw, "dbname")
	return name
}
