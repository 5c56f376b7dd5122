// Package header stamps persisted documents with Kubernetes-style resource
// metadata so stored suites and reports are self-describing on disk.
package header

import (
	"fmt"
	"strings"
	"time"
)

const (
	apiVersionDomain = "tablevet.io"
	apiVersionV1     = "v1"
)

// Resource kinds carried by persisted documents.
const (
	KindValidationSuite  = "ValidationSuite"
	KindValidationReport = "ValidationReport"
)

// Header carries the kind, schema version and metadata of a persisted
// resource. It is embedded inline in every document the store writes.
type Header struct {
	// Kind is the type of the resource.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the resource schema.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the resource.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// APIVersionFor returns the schema version stamped for a kind,
// e.g. "validationsuite.tablevet.io/v1".
func APIVersionFor(kind string) string {
	return fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), apiVersionDomain, apiVersionV1)
}

// Set stamps the header for the given kind: Kind, the matching APIVersion
// and a creation timestamp. Any previous metadata is discarded.
func (h *Header) Set(kind string) {
	h.Kind = kind
	h.APIVersion = APIVersionFor(kind)
	h.Metadata = map[string]string{
		"created-at": time.Now().UTC().Format(time.RFC3339),
	}
}

// VerifyKind checks that the header belongs to the given kind. Headerless
// documents pass so hand-authored files without a stamp still load; a
// present Kind or APIVersion must match exactly.
func (h *Header) VerifyKind(kind string) error {
	if h.Kind != "" && h.Kind != kind {
		return fmt.Errorf("document kind is %q, expected %q", h.Kind, kind)
	}
	if h.APIVersion != "" && h.APIVersion != APIVersionFor(kind) {
		return fmt.Errorf("document apiVersion is %q, expected %q", h.APIVersion, APIVersionFor(kind))
	}
	return nil
}
