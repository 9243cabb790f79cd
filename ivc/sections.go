// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ivc defines the component-share reports for the ClientIVC
// benchmark and evaluates them against a benchmark record.
package ivc

import "golang.org/x/ivcshare/share"

const (
	// DefaultPath is where the op-count-time build writes the
	// ClientIVC benchmark results.
	DefaultPath = "build-op-count-time/client_ivc_bench.json"

	// DefaultBenchmark is the benchmark analyzed by default.
	DefaultBenchmark = "ClientIVCBench/Full/6"

	// TotalLabel holds a benchmark's total measured time.
	TotalLabel = "real_time"

	// FoldLabel is the total time of Protogalaxy folding.
	FoldLabel = "ProtogalaxyProver::fold_instances(t)"
)

// Kept is an independent set of functions that account for most of
// a full ClientIVC run.
var Kept = []string{
	"construct_circuits(t)",
	"ProverInstance(Circuit&)(t)",
	FoldLabel,
	"Decider::construct_proof(t)",
	"ECCVMProver(CircuitBuilder&)(t)",
	"ECCVMProver::construct_proof(t)",
	"TranslatorProver::construct_proof(t)",
	"Goblin::merge(t)",
}

// MajorContributors are lower-level functions that dominate Kept.
// They overlap Kept, so they are reported against Kept's sum.
var MajorContributors = []string{
	"commit(t)",
	"compute_combiner(t)",
	"compute_perturbator(t)",
	"compute_univariate(t)",
}

// FoldRounds are the rounds of Protogalaxy folding.
var FoldRounds = []string{
	"ProtoGalaxyProver_::preparation_round(t)",
	"ProtoGalaxyProver_::perturbator_round(t)",
	"ProtoGalaxyProver_::combiner_quotient_round(t)",
	"ProtoGalaxyProver_::accumulator_update_round(t)",
}

// Relations are the relation accumulators. They are timed inside a
// hot loop, so their absolute times are inflated, but they are
// meaningful relative to one another.
var Relations = []string{
	"Arithmetic::accumulate(t)",
	"Permutation::accumulate(t)",
	"Lookup::accumulate(t)",
	"DeltaRange::accumulate(t)",
	"Elliptic::accumulate(t)",
	"Auxiliary::accumulate(t)",
	"EccOp::accumulate(t)",
	"DatabusRead::accumulate(t)",
	"PoseidonExt::accumulate(t)",
	"PoseidonInt::accumulate(t)",
}

// Sections returns the ClientIVC report sections in print order.
func Sections() []Section {
	return []Section{
		{
			Name:   "kept",
			Labels: Kept,
			Basis:  OwnSum(),
			Layout: share.Standard,
			Totals: true,
		},
		{
			Name:      "major",
			Title:     "Major contributors:",
			Labels:    MajorContributors,
			Basis:     SumOf(Kept),
			Layout:    share.Compact,
			WidthFrom: Kept,
		},
		{
			Name:   "fold",
			Title:  "Breakdown of ProtogalaxyProver::fold_instances:",
			Labels: FoldRounds,
			Basis:  LabelValue(FoldLabel),
			Layout: share.Bare,
		},
		{
			Name:   "relations",
			Title:  "Relation contributions (times to be interpreted relatively):",
			Labels: Relations,
			Basis:  OwnSum(),
			Layout: share.Standard,
		},
	}
}
