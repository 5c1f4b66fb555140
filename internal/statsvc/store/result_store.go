package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenside/wager-services/internal/comm"
)

const collectionName = "game_results"

// ResultStore archives finalized game results for career stats. Documents
// are keyed (game_id, user_id) and upserted, so replays of the same event
// never double-count a game.
type ResultStore struct {
	db *mongo.Database
}

func NewResultStore(db *mongo.Database) *ResultStore {
	return &ResultStore{db: db}
}

// EnsureIndexes creates the unique archive key; safe to call on startup.
func (s *ResultStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "game_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *ResultStore) ArchiveResults(ctx context.Context, results comm.RoundResults) error {
	coll := s.db.Collection(collectionName)

	for _, r := range results.GameResults {
		filter := bson.M{"game_id": r.GameID, "user_id": r.UserID}
		update := bson.M{"$set": bson.M{
			"round_id":     r.RoundID,
			"game_id":      r.GameID,
			"user_id":      r.UserID,
			"game_type":    r.GameType,
			"net_amount":   r.NetAmount,
			"finalized_at": results.FinalizedAt,
			"archived_at":  time.Now().UTC(),
		}}
		_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to archive result for game %d user %d: %w", r.GameID, r.UserID, err)
		}
	}
	return nil
}

// PlayerStats is a golfer's career line across all finalized games.
type PlayerStats struct {
	UserID     int64            `json:"user_id"`
	GameCount  int64            `json:"game_count"`
	ByGameType map[string]int64 `json:"by_game_type"`
}

func (s *ResultStore) GetPlayerStats(ctx context.Context, userID int64) (*PlayerStats, error) {
	coll := s.db.Collection(collectionName)

	cursor, err := coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$game_type", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats for user %d: %w", userID, err)
	}
	defer cursor.Close(ctx)

	stats := &PlayerStats{UserID: userID, ByGameType: map[string]int64{}}
	for cursor.Next(ctx) {
		var row struct {
			GameType string `bson:"_id"`
			Count    int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		stats.ByGameType[row.GameType] = row.Count
		stats.GameCount += row.Count
	}
	return stats, cursor.Err()
}
