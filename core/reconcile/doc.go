// Package reconcile maps texture paths from a source material onto the
// slot layout of a target material. The source's sampler order is the
// author's intent and wins every tie; matching, local adjustment, and
// the final order repair all preserve it as far as the slot types
// allow.
//
// # Pipeline
//
// A Replace call runs the following phases:
//
//  1. Sort: source samplers with a path and all target samplers are
//     ordered by (slot index, original position).
//
//  2. Match: each source sampler scans the sorted targets from the
//     beginning in three steps: exact index and type, type onto a slot
//     that already carries a path, then any free slot of the type.
//
//  3. Local adjustment: when every step fails, or a perfect slot is
//     contested, an occupant may be relocated to a free slot of the
//     same type. All adjustments share one budget per call.
//
//  4. Restore: results are reordered to the original source order.
//     Samplers without a path become EMPTY entries.
//
//  5. Order repair: adjacent matches that invert the source order are
//     swapped when their slot types permit, up to three swaps.
//
// Target slots that keep a path no source covers are reported as
// warnings. The engine never fails: unmatched samplers are ordinary
// results, not errors.
//
// # Legacy materials
//
// A source containing legacy samplers (the fixed g_ names decoded by
// package sampler) bypasses the pipeline entirely. Legacy samplers
// match same-named legacy targets first, then fall back to the declared
// cross-generation candidates when the target carries modern slots.
//
// # Usage
//
//	engine := reconcile.NewEngine(material.DefaultOptions(), logger)
//	result := engine.Replace(source, target)
//	for _, r := range result.Results {
//		fmt.Println(r.Status.Icon(), r.Reason)
//	}
//	merged := reconcile.Apply(result)
//
// Replace keeps all scratch state call-scoped, so one engine value may
// be reused across calls.
package reconcile
