// Package lap solves the linear assignment problem on one dense cost matrix.
//
// 🚀 What is the linear assignment problem?
//
//	Given an R×C cost matrix, pick at most one column per row and at most
//	one row per column so that min(R, C) pairs are matched and the total
//	cost is minimal (or maximal). Typical uses:
//	  • Tracking: associate detections with existing tracks
//	  • Set prediction losses: match predictions to ground truth
//	  • Scheduling: workers ↔ jobs, tasks ↔ machines
//
// ✨ Key features:
//   - successive shortest augmenting paths with dual potentials (u, v):
//     exact, O(min(R,C)·R·C) time, O(R+C) scratch
//   - rectangular inputs (R < C and R > C) with Unmatched (−1) sentinels
//   - forbidden pairs via ±Inf (or the batch's forbidden threshold)
//   - minimize or maximize (maximize negates costs before solving)
//   - deterministic tie-breaking: lowest column index wins
//   - optimality certificate: dual feasibility and complementary slackness
//     are checked with an epsilon tolerance; violations surface as
//     ErrNumericInstability, never as infeasibility
//   - SolveGroup: the same algorithm executed cooperatively by the lanes of
//     a device execution group (see package device)
//
// ⚙️ Usage:
//
//	bt, _ := matrix.StackBatch([][][]float64{{{1, 2}, {2, 1}}})
//	view, _ := bt.Element(0)
//	a, err := lap.Solve(view, lap.WithObjective(lap.Minimize))
//	// a.RowToCol == [0 1], a.Cost == 2
//
// Performance:
//
//   - Time:   O(min(R,C)·R·C)
//   - Memory: O(R+C) per solve (State), the cost matrix is never copied
package lap
