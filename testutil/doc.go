/*
Package testutil provides testing utilities for the secure aggregation packages.

# Configuration Generators

	// Create default test config
	config := testutil.NewTestConfig()

	// Create custom config with specific options
	customConfig := testutil.NewTestConfig(
	    testutil.WithCurve(crypto.CurveRistretto255),
	    testutil.WithVocabularySize(2),
	    testutil.WithParallelism(4),
	)

# Group Generators

	tg := testutil.NewTestGroup(t, params, 5)
	info := tg.RoundInfo(7)

# Aggregation Simulation

SumVectors plays the server's part: it adds masked vectors of all members
mod n. When every member of a group has contributed, the result equals
SumCounters of their plain vectors.

	sums := testutil.SumDecimalVectors(t, params.Field, encA, encB, encC)

This package is intended for testing purposes only and should not be used in
production code.
*/
package testutil
