package outbound

import (
	"errors"
	"net"
	"net/url"
	"path"
	"strings"
)

var ErrInvalidURL = errors.New("invalid dataset url")

// NormalizeURL canonicalizes an http(s) URL so equivalent spellings share a
// cache key: scheme and host are lower-cased, default ports and the fragment
// are dropped. Userinfo is kept so the result can still be fetched; use
// StripUserinfo before the URL is logged or used as a key.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.Join(ErrInvalidURL, err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if u.Hostname() == "" {
		return "", ErrInvalidURL
	}

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		u.Host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		u.Host = "[" + host + "]"
	} else {
		u.Host = host
	}

	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}

// StripUserinfo returns rawURL without credentials. Unparsable input is
// returned unchanged.
func StripUserinfo(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	u.User = nil
	return u.String()
}

// NameFromURL returns the last path segment of rawURL, or dataset.csv.
func NameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "dataset.csv"
	}

	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return "dataset.csv"
	}
	return name
}
