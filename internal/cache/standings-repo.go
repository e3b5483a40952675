package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/scottwarrens/challengeboard/models"
)

// StandingsRepo mirrors the computed leaderboard into redis sorted sets so
// external consumers can read totals without touching the engine. The engine
// itself always recomputes standings from completed challenges; the mirror
// is disposable.
type StandingsRepo struct {
	client *redis.Client
}

func NewStandingsRepo(client *redis.Client) *StandingsRepo {
	return &StandingsRepo{client: client}
}

// Key Generation Helpers

func fullKey() string {
	return "standings:full"
}

func soLuckyKey() string {
	return "standings:solucky"
}

func standingsKey(excludeTurns bool) string {
	if excludeTurns {
		return soLuckyKey()
	}
	return fullKey()
}

// UpdateStandings replaces the sorted set for the given leaderboard variant
// with the freshly computed rows.
func (r *StandingsRepo) UpdateStandings(ctx context.Context, excludeTurns bool, rows []models.StandingsRow) error {
	key := standingsKey(excludeTurns)

	members := make([]redis.Z, 0, len(rows))
	for _, row := range rows {
		members = append(members, redis.Z{
			Score:  float64(row.Points),
			Member: row.PlayerId,
		})
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	if len(members) > 0 {
		pipe.ZAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
