package serializer

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
)

// httpFetchTimeout bounds remote document fetches.
const httpFetchTimeout = 30 * time.Second

// FromFile loads a YAML or JSON document into T from a local path, stdin
// ("-"), or an http(s) URL. JSON inputs parse because YAML is a superset.
func FromFile[T any](path string) (*T, error) {
	raw, err := ReadAll(path)
	if err != nil {
		return nil, err
	}

	var out T
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeInvalidInput,
			fmt.Sprintf("failed to parse document %q", path), err)
	}
	return &out, nil
}

// ReadAll reads the raw bytes of a local path, stdin ("-"), or http(s) URL.
func ReadAll(path string) ([]byte, error) {
	trimmed := strings.TrimSpace(path)

	switch {
	case trimmed == StdoutURI:
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure, "failed to read stdin", err)
		}
		return raw, nil

	case strings.HasPrefix(trimmed, HTTPScheme), strings.HasPrefix(trimmed, HTTPSScheme):
		return fetchURL(trimmed)

	default:
		raw, err := os.ReadFile(trimmed)
		if err != nil {
			return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
				fmt.Sprintf("failed to read file %q", trimmed), err)
		}
		return raw, nil
	}
}

func fetchURL(url string) ([]byte, error) {
	client := &http.Client{Timeout: httpFetchTimeout}

	resp, err := client.Get(url)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("failed to fetch %q", url), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tverrors.Newf(tverrors.ErrCodeIOFailure,
			"failed to fetch %q: unexpected status %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("failed to read response body from %q", url), err)
	}
	return raw, nil
}
