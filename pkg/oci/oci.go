// Package oci packages a generated data-docs site as an OCI artifact and
// pushes it to a registry. Packaging and pushing are split so a site can be
// packaged into a local OCI layout offline and pushed later.
package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	ocistore "oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/retry"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
)

const (
	// DefaultTag is used when no tag is provided.
	DefaultTag = "latest"

	// StoreDirName is the OCI layout directory created under the output
	// directory during packaging.
	StoreDirName = "oci-store"

	artifactType   = "application/vnd.tablevet.docs.v1"
	layerMediaType = "application/vnd.tablevet.docs.layer.v1"
	userAgent      = "tablevet"
)

// PackageOptions controls local artifact packaging.
type PackageOptions struct {
	// SourceDir is the site directory to package.
	SourceDir string
	// OutputDir is where the local OCI layout is written.
	OutputDir string
	// Registry is the target registry host, e.g. localhost:5000.
	Registry string
	// Repository is the repository path, e.g. tablevet/docs.
	Repository string
	// Tag is the artifact tag; DefaultTag when empty.
	Tag string
}

// PackageResult describes a locally packaged artifact.
type PackageResult struct {
	Reference string
	Digest    string
	StorePath string
	FileCount int
}

// PushOptions controls pushing a packaged artifact to a registry.
type PushOptions struct {
	Registry    string
	Repository  string
	Tag         string
	PlainHTTP   bool
	InsecureTLS bool
}

// PushResult describes a pushed artifact.
type PushResult struct {
	Reference string
	Digest    string
}

// ValidateRegistryReference checks that registry and repository form a
// syntactically valid named reference.
func ValidateRegistryReference(registry, repository string) error {
	if registry == "" {
		return tverrors.New(tverrors.ErrCodeInvalidInput, "registry host cannot be empty")
	}
	if repository == "" {
		return tverrors.New(tverrors.ErrCodeInvalidInput, "repository path cannot be empty")
	}

	ref := registry + "/" + repository
	if _, err := reference.ParseNamed(ref); err != nil {
		return tverrors.Wrap(tverrors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid registry reference %q", ref), err)
	}
	return nil
}

// Package collects every file under SourceDir into an OCI artifact manifest
// and tags it into a local OCI layout under OutputDir. No network access is
// performed.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	if err := ValidateRegistryReference(opts.Registry, opts.Repository); err != nil {
		return nil, err
	}
	ref := fullReference(opts.Registry, opts.Repository, opts.Tag)

	fileStore, err := file.New(opts.SourceDir)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot open source directory %q", opts.SourceDir), err)
	}
	defer func() {
		if cerr := fileStore.Close(); cerr != nil {
			slog.Warn("failed to close file store", "error", cerr)
		}
	}()

	storePath := filepath.Join(opts.OutputDir, StoreDirName)

	layers, err := addSiteFiles(ctx, fileStore, opts.SourceDir, storePath)
	if err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		return nil, tverrors.Newf(tverrors.ErrCodeIOFailure,
			"source directory %q contains no files", opts.SourceDir)
	}

	manifest, err := oras.PackManifest(ctx, fileStore, oras.PackManifestVersion1_1, artifactType,
		oras.PackManifestOptions{
			Layers: layers,
			ManifestAnnotations: map[string]string{
				ocispec.AnnotationTitle:       "tablevet data docs",
				ocispec.AnnotationDescription: "static validation report site",
			},
		})
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeInternal, "cannot pack artifact manifest", err)
	}

	if err := fileStore.Tag(ctx, manifest, ref); err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeInternal,
			fmt.Sprintf("cannot tag artifact %q", ref), err)
	}

	layout, err := ocistore.New(storePath)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot create OCI layout at %q", storePath), err)
	}

	if _, err := oras.Copy(ctx, fileStore, ref, layout, ref, oras.DefaultCopyOptions); err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot copy artifact into layout %q", storePath), err)
	}

	slog.Debug("artifact packaged",
		"reference", ref,
		"digest", manifest.Digest.String(),
		"layers", len(layers),
		"store", storePath,
	)

	return &PackageResult{
		Reference: ref,
		Digest:    manifest.Digest.String(),
		StorePath: storePath,
		FileCount: len(layers),
	}, nil
}

// PushFromStore pushes a previously packaged artifact from a local OCI
// layout to the registry.
func PushFromStore(ctx context.Context, storePath string, opts PushOptions) (*PushResult, error) {
	if err := ValidateRegistryReference(opts.Registry, opts.Repository); err != nil {
		return nil, err
	}
	tag := opts.Tag
	if tag == "" {
		tag = DefaultTag
	}
	ref := fullReference(opts.Registry, opts.Repository, tag)

	layout, err := ocistore.New(storePath)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot open OCI layout at %q", storePath), err)
	}

	repo, err := remote.NewRepository(opts.Registry + "/" + opts.Repository)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid repository %q", opts.Registry+"/"+opts.Repository), err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = newRegistryClient(opts.InsecureTLS)

	desc, err := oras.Copy(ctx, layout, ref, repo, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeUnavailable,
			fmt.Sprintf("cannot push %q", ref), err)
	}

	slog.Debug("artifact pushed",
		"reference", ref,
		"digest", desc.Digest.String(),
	)

	return &PushResult{
		Reference: ref,
		Digest:    desc.Digest.String(),
	}, nil
}

// addSiteFiles adds every regular file under sourceDir to the store as a
// layer. The local OCI layout and dot files are skipped.
func addSiteFiles(ctx context.Context, store *file.Store, sourceDir, storePath string) ([]ocispec.Descriptor, error) {
	var layers []ocispec.Descriptor

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == storePath {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		desc, err := store.Add(ctx, filepath.ToSlash(rel), layerMediaType, path)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}
		layers = append(layers, desc)
		return nil
	})
	if err != nil {
		return nil, tverrors.Wrap(tverrors.ErrCodeIOFailure,
			fmt.Sprintf("cannot collect files from %q", sourceDir), err)
	}
	return layers, nil
}

func newRegistryClient(insecureTLS bool) *auth.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: retry.NewTransport(transport)},
		Cache:  auth.NewCache(),
	}
	client.SetUserAgent(userAgent)
	return client
}

func fullReference(registry, repository, tag string) string {
	if tag == "" {
		tag = DefaultTag
	}
	return fmt.Sprintf("%s/%s:%s", registry, repository, tag)
}
