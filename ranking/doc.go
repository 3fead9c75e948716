// Package ranking maintains the capped, score-ordered leaderboard.
//
// The Table keeps at most Cap() entries sorted by score, highest first. Among
// equal scores the most recently inserted entry ranks first. When the table is
// full, a score at or below the current floor is rejected before any work is
// done, so the common case of a low-scoring update costs a single comparison.
package ranking
