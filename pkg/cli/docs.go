/*
Copyright © 2026 The Tablevet Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tablevet/tablevet/pkg/oci"
)

// ociScheme prefixes --output values that target an OCI registry.
const ociScheme = "oci://"

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "docs",
		EnableShellCompletion: true,
		Usage:                 "Build and publish the data docs site",
		Description: `Builds a static HTML site from the stored validation reports: an index page
listing every run plus one page per run with the rule-level outcomes.

The site can be exported to a local directory or packaged as an OCI
artifact and pushed to a registry, so data docs ship through the same
infrastructure as container images.`,
		Commands: []*cli.Command{
			docsBuildCmd(),
			docsPublishCmd(),
		},
	}
}

func docsBuildCmd() *cli.Command {
	return &cli.Command{
		Name:                  "build",
		EnableShellCompletion: true,
		Usage:                 "Render the data docs site from stored reports",
		Action: func(ctx context.Context, _ *cli.Command) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}

			doc, err := eng.BuildDataDocs(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Data docs built: %s\n", doc.Summary())
			fmt.Printf("Open %s\n", filepath.Join(eng.DocsDir(), "index.html"))
			return nil
		},
	}
}

func docsPublishCmd() *cli.Command {
	return &cli.Command{
		Name:                  "publish",
		EnableShellCompletion: true,
		Usage:                 "Rebuild the data docs site and publish it",
		Description: `Rebuilds the data docs site from the stored reports and publishes it to
the --output target.

# Output Targets

A local directory:
  tablevet docs publish --output ./public

An OCI registry reference (oci://registry/repository[:tag], tag defaults
to latest):
  tablevet docs publish --output oci://ghcr.io/acme/data-docs:v1.0.0
  tablevet docs publish --output oci://localhost:5000/acme/data-docs --plain-http

The pushed artifact carries one layer per site file and can be fetched
with any OCI-capable client, e.g.:
  oras pull ghcr.io/acme/data-docs:v1.0.0`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Required: true,
				Usage:    "Publish target: oci://registry/repository[:tag] or a local directory",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			isOCI, registry, repository, tag, dir, err := parseOutputTarget(cmd.String("output"))
			if err != nil {
				return fmt.Errorf("invalid --output: %w", err)
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}

			doc, err := eng.BuildDataDocs(ctx)
			if err != nil {
				return err
			}
			siteDir := eng.DocsDir()

			if !isOCI {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory %q: %w", dir, err)
				}
				if err := copyFS(dir, os.DirFS(siteDir)); err != nil {
					return fmt.Errorf("failed to export site to %q: %w", dir, err)
				}
				fmt.Printf("Data docs exported: %s\n", doc.Summary())
				fmt.Printf("Open %s\n", filepath.Join(dir, "index.html"))
				return nil
			}

			tmpDir, err := os.MkdirTemp("", "tablevet-oci-*")
			if err != nil {
				return fmt.Errorf("failed to create staging directory: %w", err)
			}
			defer os.RemoveAll(tmpDir)

			slog.Info("packaging data docs",
				"registry", registry,
				"repository", repository,
				"tag", tag,
			)

			pkg, err := oci.Package(ctx, oci.PackageOptions{
				SourceDir:  siteDir,
				OutputDir:  tmpDir,
				Registry:   registry,
				Repository: repository,
				Tag:        tag,
			})
			if err != nil {
				return fmt.Errorf("failed to package OCI artifact: %w", err)
			}

			slog.Info("OCI artifact packaged locally",
				"reference", pkg.Reference,
				"digest", pkg.Digest,
				"files", pkg.FileCount,
			)

			push, err := oci.PushFromStore(ctx, pkg.StorePath, oci.PushOptions{
				Registry:    registry,
				Repository:  repository,
				Tag:         tag,
				PlainHTTP:   cmd.Bool("plain-http"),
				InsecureTLS: cmd.Bool("insecure-tls"),
			})
			if err != nil {
				return fmt.Errorf("failed to push OCI artifact to registry: %w", err)
			}

			fmt.Printf("\nData docs published!\n")
			fmt.Printf("Reference: %s\n", push.Reference)
			fmt.Printf("Digest: %s\n", push.Digest)
			fmt.Printf("\nTo pull:\n  oras pull %s\n", push.Reference)
			return nil
		},
	}
}

// parseOutputTarget interprets a --output value as either an OCI registry
// reference or a local directory path.
//
// oci://ghcr.io/acme/data-docs:v1 yields registry ghcr.io, repository
// acme/data-docs and tag v1; the tag defaults to latest. Values without the
// oci:// scheme are local directories.
func parseOutputTarget(output string) (isOCI bool, registry, repository, tag, dir string, err error) {
	if !strings.HasPrefix(output, ociScheme) {
		return false, "", "", "", output, nil
	}

	ref := strings.TrimPrefix(output, ociScheme)
	if ref == "" {
		return false, "", "", "", "",
			fmt.Errorf("invalid OCI reference %q: expected oci://registry/repository[:tag]", output)
	}

	// Split the tag off the last path segment. A colon before the first
	// slash is a registry port, not a tag.
	tag = "latest"
	if idx := strings.LastIndex(ref, ":"); idx > strings.LastIndex(ref, "/") {
		tag = ref[idx+1:]
		ref = ref[:idx]
	}

	registry, repository, ok := strings.Cut(ref, "/")
	if !ok || registry == "" || repository == "" {
		return false, "", "", "", "",
			fmt.Errorf("invalid OCI reference %q: expected oci://registry/repository[:tag]", output)
	}

	if err := oci.ValidateRegistryReference(registry, repository); err != nil {
		return false, "", "", "", "", err
	}

	return true, registry, repository, tag, "", nil
}
