package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

const tracksCollection = "tracks"

type TrackRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTrackRepository(db *mongo.Database) *TrackRepository {
	return &TrackRepository{db: db, coll: db.Collection(tracksCollection)}
}

type mongoTrack struct {
	ID        int64  `bson:"_id"`
	Title     string `bson:"title"`
	Artist    string `bson:"artist,omitempty"`
	Album     string `bson:"album,omitempty"`
	Duration  int    `bson:"duration,omitempty"`
	FilePath  string `bson:"file_path"`
	Genre     string `bson:"genre,omitempty"`
	Year      string `bson:"year,omitempty"`
	AlbumArt  string `bson:"album_art,omitempty"`
	UserID    int64  `bson:"user_id,omitempty"`
	AddedAt   int64  `bson:"added_at"`
	IsPremium bool   `bson:"is_premium"`
	Quality   string `bson:"quality"`
}

func toMongoTrack(t *domain.Track) mongoTrack {
	return mongoTrack{
		ID:        t.ID,
		Title:     t.Title,
		Artist:    t.Artist,
		Album:     t.Album,
		Duration:  t.Duration,
		FilePath:  t.FilePath,
		Genre:     t.Genre,
		Year:      t.Year,
		AlbumArt:  t.AlbumArt,
		UserID:    t.UserID,
		AddedAt:   t.AddedAt.Unix(),
		IsPremium: t.IsPremium,
		Quality:   t.Quality,
	}
}

func (mt mongoTrack) toDomain() *domain.Track {
	return &domain.Track{
		ID:        mt.ID,
		Title:     mt.Title,
		Artist:    mt.Artist,
		Album:     mt.Album,
		Duration:  mt.Duration,
		FilePath:  mt.FilePath,
		Genre:     mt.Genre,
		Year:      mt.Year,
		AlbumArt:  mt.AlbumArt,
		UserID:    mt.UserID,
		AddedAt:   unixToTime(mt.AddedAt),
		IsPremium: mt.IsPremium,
		Quality:   mt.Quality,
	}
}

func (r *TrackRepository) Create(ctx context.Context, track *domain.Track) (*domain.Track, error) {
	id, err := nextID(ctx, r.db, tracksCollection)
	if err != nil {
		return nil, err
	}

	doc := toMongoTrack(track)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert track: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TrackRepository) FindByID(ctx context.Context, id int64) (*domain.Track, error) {
	var mt mongoTrack
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTrackNotFound
		}
		return nil, fmt.Errorf("find track: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TrackRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Track, error) {
	return r.list(ctx, visibleTo(userID))
}

func (r *TrackRepository) ListByArtist(ctx context.Context, artist string, userID int64) ([]*domain.Track, error) {
	return r.listByField(ctx, "artist", artist, userID)
}

func (r *TrackRepository) ListByAlbum(ctx context.Context, album string, userID int64) ([]*domain.Track, error) {
	return r.listByField(ctx, "album", album, userID)
}

func (r *TrackRepository) ListByGenre(ctx context.Context, genre string, userID int64) ([]*domain.Track, error) {
	return r.listByField(ctx, "genre", genre, userID)
}

func (r *TrackRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *TrackRepository) ListPremium(ctx context.Context) ([]*domain.Track, error) {
	return r.list(ctx, bson.M{"is_premium": true})
}

func (r *TrackRepository) Update(ctx context.Context, id int64, upd ports.TrackUpdate) (*domain.Track, error) {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Artist != nil {
		set["artist"] = *upd.Artist
	}
	if upd.Album != nil {
		set["album"] = *upd.Album
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	if upd.FilePath != nil {
		set["file_path"] = *upd.FilePath
	}
	if upd.Genre != nil {
		set["genre"] = *upd.Genre
	}
	if upd.Year != nil {
		set["year"] = *upd.Year
	}
	if upd.AlbumArt != nil {
		set["album_art"] = *upd.AlbumArt
	}
	if upd.UserID != nil {
		set["user_id"] = *upd.UserID
	}
	if upd.IsPremium != nil {
		set["is_premium"] = *upd.IsPremium
	}
	if upd.Quality != nil {
		set["quality"] = *upd.Quality
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update track: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTrackNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes only the track document. Playlist junction rows referencing
// it stay behind and are filtered out of joined reads.
func (r *TrackRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTrackNotFound
	}
	return nil
}

func (r *TrackRepository) list(ctx context.Context, filter bson.M) ([]*domain.Track, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Track
	for cur.Next(ctx) {
		var mt mongoTrack
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode track: %w", err)
		}
		out = append(out, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	return out, nil
}

// listByField matches the metadata field case-insensitively but exactly, and
// never matches documents where the field is absent or empty.
func (r *TrackRepository) listByField(ctx context.Context, field, value string, userID int64) ([]*domain.Track, error) {
	if value == "" {
		return nil, nil
	}
	filter := visibleTo(userID)
	filter[field] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
	return r.list(ctx, filter)
}

// visibleTo scopes a filter to tracks owned by userID or ownerless ones.
func visibleTo(userID int64) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"user_id": userID},
		bson.M{"user_id": bson.M{"$exists": false}},
		bson.M{"user_id": int64(0)},
	}}
}
