// Package engine coordinates the validation workflow end to end.
//
// # Overview
//
// The Engine is the single owner of the document store, the data-docs
// renderer and the evaluator configuration. The CLI and the HTTP API hold
// one Engine and borrow these pieces through it instead of wiring their
// own.
//
// # Run Lifecycle
//
// A validation run loads the named suite, opens the data reference as a
// streaming row source, evaluates every rule in one pass, stamps the report
// with a fresh run ID and persists it. Failing rules produce a failing
// report, not a Go error; only infrastructure problems (unknown suite,
// unreadable source, failed save) surface as errors. When several data
// references are validated together, the runs execute in parallel and one
// run's failure never aborts its siblings.
//
// # Usage
//
//	eng, err := engine.New()
//	if err != nil {
//		return err
//	}
//	rep, err := eng.Validate(ctx, "nba_player_stats", "games.csv")
//	if err != nil {
//		return err
//	}
//	if !rep.Success {
//		// inspect rep.FailedOutcomes()
//	}
package engine
