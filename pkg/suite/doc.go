// Package suite defines validation suites: named, ordered lists of rules
// applied to a tabular input as one unit.
//
// # Overview
//
// A Suite pairs a stable name with the rules to evaluate, in the order they
// were declared. Suites are the unit of persistence and of evaluation: the
// store saves them by name, the evaluator runs them, and reports echo their
// rule order back.
//
// # Core Types
//
// Suite: Named, ordered rule list with a resource header
//
//	type Suite struct {
//	    header.Header        // kind, apiVersion, metadata
//	    Name   string        // store key, restricted charset
//	    Rules  []rule.Rule   // evaluated in declaration order
//	}
//
// Builder: Assembles validated suites
//
//	type Builder struct {
//	    Version string  // recorded in suite metadata
//	}
//
// # Usage
//
// Assemble a suite from rules:
//
//	s, err := suite.BuildSuite(ctx, "nba_player_stats", []rule.Rule{
//	    rule.ColumnExists("player_id"),
//	    rule.ValuesBetween("points", 0, 100),
//	})
//
// Load an embedded preset with parameter overrides:
//
//	overrides, err := suite.ParseRuleOverrides([]string{"points:max=120"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := suite.NewBuilder(suite.WithVersion("v1.0.0"))
//	s, err := b.BuildPreset(ctx, "nba_player_stats", overrides)
//
// # Preset Data
//
// Preset suites are embedded at build time from suite/assets/*.yaml and
// parsed once on first use (singleton pattern). Preset lookups by unknown
// name return NOT_FOUND with a nearest-name suggestion when one is close.
//
// # Overrides
//
// ParseRuleOverrides accepts --set style flags in the form
// column:param=value, e.g. "points:max=120" or "game_date:mostly=0.95".
// ApplyOverrides rewrites the matching rules in place; an override that
// matches no rule is an INVALID_INPUT error so typos surface early.
package suite
