package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is served when the Accept header names no supported
	// vendor version.
	DefaultAPIVersion = "v1"

	vendorMIMEPrefix = "application/vnd.tablevet."
	vendorMIMESuffix = "+json"
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

func isValidAPIVersion(version string) bool {
	return supportedAPIVersions[version]
}

// negotiateAPIVersion extracts the requested API version from the Accept
// header (application/vnd.tablevet.v1+json). Absent or unsupported versions
// fall back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.Index(mediaType, ";"); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		if !strings.HasPrefix(mediaType, vendorMIMEPrefix) ||
			!strings.HasSuffix(mediaType, vendorMIMESuffix) {
			continue
		}

		v := strings.TrimSuffix(strings.TrimPrefix(mediaType, vendorMIMEPrefix), vendorMIMESuffix)
		if isValidAPIVersion(v) {
			return v
		}
	}
	return DefaultAPIVersion
}
