// Package renderer turns validation reports into human-facing documents.
//
// Two renderers implement the same [Renderer] interface:
//   - [ConsoleRenderer] produces a plain-text terminal summary with the
//     overall result, per-suite counters and one block per failed rule.
//   - [SiteRenderer] produces a static HTML "data docs" site with an index
//     of all runs and one page per run.
//
// # Site Structure
//
// The generated site lives under <root>/data_docs:
//   - index.html: run listing, newest first
//   - runs/<runID>.html: per-run outcome detail
//   - static/style.css: stylesheet
//   - checksums.txt: SHA256 checksums for verification
//
// # Documents
//
// Every render pass returns a [Document] accounting for what was produced:
// console text, or the list of files written with their combined size. The
// document records non-fatal errors and is marked successful only when the
// pass completed.
//
// # Templates
//
// Site templates are embedded in the binary using go:embed and rendered with
// Go's html/template package, so arbitrary cell values quoted in violation
// samples cannot inject markup. Large row counts are grouped with
// golang.org/x/text message formatting.
//
// # Usage
//
//	site := renderer.NewSiteRenderer(root)
//	doc, err := site.Build(ctx, reports)
//	if err != nil {
//		return err
//	}
//	fmt.Println(doc.Summary())
package renderer
