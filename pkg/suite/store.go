package suite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
)

//go:embed assets/*.yaml
var presetFS embed.FS

var (
	// presetSource is an fs.FS so tests can substitute preset data.
	presetSource fs.FS = presetFS

	presetOnce    sync.Once
	cachedPresets map[string]*Suite
	cachedErr     error
)

// loadPresets parses the embedded preset suites and caches them by name.
// Because the data is embedded at build time, it is safe (and simpler) to
// parse it once and reuse the in-memory representation for the lifetime of
// the process.
func loadPresets(_ context.Context) (map[string]*Suite, error) {
	presetOnce.Do(func() {
		entries, err := fs.ReadDir(presetSource, "assets")
		if err != nil {
			cachedErr = tverrors.Wrap(tverrors.ErrCodeInternal, "cannot list embedded presets", err)
			return
		}

		presets := make(map[string]*Suite, len(entries))
		for _, entry := range entries {
			data, err := fs.ReadFile(presetSource, "assets/"+entry.Name())
			if err != nil {
				cachedErr = tverrors.Wrap(tverrors.ErrCodeInternal,
					fmt.Sprintf("cannot read embedded preset %q", entry.Name()), err)
				return
			}

			var s Suite
			if err := yaml.Unmarshal(data, &s); err != nil {
				cachedErr = tverrors.Wrap(tverrors.ErrCodeInternal,
					fmt.Sprintf("cannot parse embedded preset %q", entry.Name()), err)
				return
			}
			if err := s.Validate(); err != nil {
				cachedErr = tverrors.Wrap(tverrors.ErrCodeInternal,
					fmt.Sprintf("embedded preset %q is invalid", entry.Name()), err)
				return
			}
			presets[s.Name] = &s
		}
		cachedPresets = presets
	})

	if cachedErr != nil {
		return nil, cachedErr
	}
	if cachedPresets == nil {
		return nil, tverrors.New(tverrors.ErrCodeInternal, "preset store not initialized")
	}
	return cachedPresets, nil
}

// Preset returns a deep copy of the named embedded preset suite. Unknown
// names yield a NOT_FOUND error carrying a nearest-name suggestion when one
// is close enough to be a plausible typo.
func Preset(ctx context.Context, name string) (*Suite, error) {
	presets, err := loadPresets(ctx)
	if err != nil {
		return nil, err
	}

	s, ok := presets[name]
	if !ok {
		err := tverrors.Newf(tverrors.ErrCodeNotFound, "preset suite %q not found", name)
		if suggestion := nearestPreset(presets, name); suggestion != "" {
			err = err.WithDetail("suggestion", suggestion)
		}
		return nil, err
	}
	return s.Clone(), nil
}

// PresetNames returns the names of all embedded presets, sorted.
func PresetNames(ctx context.Context) ([]string, error) {
	presets, err := loadPresets(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// presetSuggestionMaxDistance caps how far a requested name can be from an
// existing preset and still be offered as a did-you-mean candidate.
const presetSuggestionMaxDistance = 5

func nearestPreset(presets map[string]*Suite, name string) string {
	candidates := make([]string, 0, len(presets))
	for candidate := range presets {
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)

	best := ""
	bestDist := presetSuggestionMaxDistance + 1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	if bestDist > presetSuggestionMaxDistance {
		return ""
	}
	return best
}
