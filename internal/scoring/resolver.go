package scoring

import (
	"cmp"
	"math"
	"slices"

	"github.com/scottwarrens/challengeboard/models"
)

// RankedResult is one line of a resolved challenge before it is persisted.
type RankedResult struct {
	PlayerId string
	Rank     int
	Score    float64
	Points   int
}

// Resolve orders a challenge's submissions by its scoring type and assigns
// dense ranks 1..N with points scaled off the roster size: rank 1 earns
// rosterSlots points, the last roster slot earns 1.
//
// Ties on the sort key break by earlier submission time, then player id, so
// the same ledger always resolves to the same sequence. Pure, no I/O.
func Resolve(submissions []models.Submission, scoringType models.ScoringType, target float64, rosterSlots int) []RankedResult {
	if len(submissions) == 0 {
		return nil
	}

	sorted := make([]models.Submission, len(submissions))
	copy(sorted, submissions)

	slices.SortFunc(sorted, func(a, b models.Submission) int {
		if c := cmp.Compare(sortKey(a.Score, scoringType, target), sortKey(b.Score, scoringType, target)); c != 0 {
			return c
		}
		if c := a.SubmittedAt.Compare(b.SubmittedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerId, b.PlayerId)
	})

	results := make([]RankedResult, len(sorted))
	for i, sub := range sorted {
		rank := i + 1
		results[i] = RankedResult{
			PlayerId: sub.PlayerId,
			Rank:     rank,
			Score:    sub.Score,
			Points:   rosterSlots - (rank - 1),
		}
	}

	return results
}

// sortKey maps a raw score to an ascending-is-better key for the given
// scoring type.
func sortKey(score float64, scoringType models.ScoringType, target float64) float64 {
	switch scoringType {
	case models.HighestWins:
		return -score
	case models.ClosestWins:
		return math.Abs(score - target)
	default:
		// lowest-wins and fastest-wins: lower raw value is better
		return score
	}
}
