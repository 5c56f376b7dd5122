package suite

import (
	"context"
	"time"

	"github.com/tablevet/tablevet/pkg/header"
	"github.com/tablevet/tablevet/pkg/rule"
)

var defaultBuilder = &Builder{}

// Option is a functional option for configuring Builder instances.
type Option func(*Builder)

// WithVersion returns an Option that sets the Builder version string.
// The version is recorded in suite metadata for tracking purposes.
func WithVersion(version string) Option {
	return func(b *Builder) {
		b.Version = version
	}
}

// NewBuilder creates a new Builder instance with the provided functional options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Builder assembles validated Suite payloads with resource headers attached.
type Builder struct {
	Version string
}

// BuildSuite assembles a suite using a shared default Builder.
// This is a convenience function for simple use cases.
func BuildSuite(ctx context.Context, name string, rules []rule.Rule) (*Suite, error) {
	return defaultBuilder.Build(ctx, name, rules)
}

// Build assembles a Suite from a name and rule list. The rules are copied,
// the resource header is stamped, and the whole suite is validated before
// it is returned.
func (b *Builder) Build(_ context.Context, name string, rules []rule.Rule) (*Suite, error) {
	start := time.Now()
	defer func() {
		suiteBuildDuration.Observe(time.Since(start).Seconds())
	}()

	s := &Suite{
		Name:  name,
		Rules: cloneRules(rules),
	}
	s.Set(header.KindValidationSuite)
	if b.Version != "" {
		s.Metadata["builder-version"] = b.Version
	}

	if err := s.Validate(); err != nil {
		suiteBuildTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	suiteBuildTotal.WithLabelValues("success").Inc()
	return s, nil
}

// BuildPreset assembles a suite from an embedded preset, optionally applying
// rule parameter overrides parsed from ParseRuleOverrides.
func (b *Builder) BuildPreset(ctx context.Context, presetName string, overrides map[string]map[string]string) (*Suite, error) {
	preset, err := Preset(ctx, presetName)
	if err != nil {
		suiteBuildTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if len(overrides) > 0 {
		if err := ApplyOverrides(preset, overrides); err != nil {
			suiteBuildTotal.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	return b.Build(ctx, preset.Name, preset.Rules)
}
