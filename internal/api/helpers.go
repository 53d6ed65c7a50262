package api

import (
	"encoding/json/v2"
	"mime"
	"net/http"
	"net/url"
	"strings"

	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

// isJSONRequest reports whether the request body is JSON. Form posts from
// the web frontend come as urlencoded or multipart; API clients send JSON
// and get JSON answers instead of redirects.
func isJSONRequest(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// decodeJSON unmarshals a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		return domainerrors.Validation("invalid request body")
	}
	return nil
}

// parsePage reads the page query parameter. Non-numeric values clamp to
// the first page; out-of-range values are clamped against the total count
// by the store.
func parsePage(r *http.Request, size int) store.Page {
	return store.ParsePage(r.URL.Query().Get("page"), size)
}

// safeNext validates a post-login redirect target taken from the request.
// Only site-local paths are allowed, otherwise the fallback is returned.
func safeNext(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return fallback
	}
	return raw
}

// clientAddress extracts the client IP for rate limit keying. RealIP
// middleware has already folded proxy headers into RemoteAddr.
func clientAddress(r *http.Request) string {
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}

// refererPath returns the site-local path of the Referer header, or an
// empty string when there is none or it points off-site.
func refererPath(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Path == "" {
		return ""
	}
	if u.Host != "" && u.Host != r.Host {
		return ""
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// formCheckbox reports whether a checkbox-style form field was ticked.
func formCheckbox(val string) bool {
	switch strings.ToLower(val) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
