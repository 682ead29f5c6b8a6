// Package batch applies one source material across a whole target set.
//
// A run converts every target independently with a bounded worker
// pool. Engine calls share no state, so targets convert in parallel;
// outcomes are reported in input order regardless of completion order.
// Each run is stamped with a random run ID that appears in logs and in
// the summary, so interleaved runs can be told apart.
package batch
