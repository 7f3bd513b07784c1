package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tunedeck/music-system/internal/core/domain"
)

const (
	recentlyPlayedCollection = "recently_played"
	defaultRecentLimit       = 10
)

type RecentlyPlayedRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewRecentlyPlayedRepository(db *mongo.Database) *RecentlyPlayedRepository {
	return &RecentlyPlayedRepository{db: db, coll: db.Collection(recentlyPlayedCollection)}
}

type mongoRecent struct {
	ID       int64 `bson:"_id"`
	UserID   int64 `bson:"user_id"`
	TrackID  int64 `bson:"track_id"`
	PlayedAt int64 `bson:"played_at"`
}

func (mr mongoRecent) toDomain() *domain.RecentlyPlayed {
	return &domain.RecentlyPlayed{
		ID:       mr.ID,
		UserID:   mr.UserID,
		TrackID:  mr.TrackID,
		PlayedAt: unixToTime(mr.PlayedAt),
	}
}

// Upsert keeps at most one row per (user, track): replaying a track
// overwrites its timestamp instead of growing the history.
func (r *RecentlyPlayedRepository) Upsert(ctx context.Context, entry *domain.RecentlyPlayed) (*domain.RecentlyPlayed, error) {
	filter := bson.M{"user_id": entry.UserID, "track_id": entry.TrackID}

	var existing mongoRecent
	err := r.coll.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": bson.M{"played_at": entry.PlayedAt.Unix()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&existing)
	if err == nil {
		return existing.toDomain(), nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("upsert recently played: %w", err)
	}

	id, err := nextID(ctx, r.db, recentlyPlayedCollection)
	if err != nil {
		return nil, err
	}
	doc := mongoRecent{
		ID:       id,
		UserID:   entry.UserID,
		TrackID:  entry.TrackID,
		PlayedAt: entry.PlayedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recently played: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecentlyPlayedRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]*domain.RecentlyPlayed, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "played_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list recently played: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.RecentlyPlayed
	for cur.Next(ctx) {
		var mr mongoRecent
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode recently played: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list recently played: %w", err)
	}
	return out, nil
}
