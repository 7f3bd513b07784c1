package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

const (
	playlistsCollection      = "playlists"
	playlistTracksCollection = "playlist_tracks"
)

type PlaylistRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
	rows *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{
		db:   db,
		coll: db.Collection(playlistsCollection),
		rows: db.Collection(playlistTracksCollection),
	}
}

type mongoPlaylist struct {
	ID        int64  `bson:"_id"`
	Name      string `bson:"name"`
	UserID    int64  `bson:"user_id"`
	CreatedAt int64  `bson:"created_at"`
	CoverArt  string `bson:"cover_art,omitempty"`
	IsPublic  bool   `bson:"is_public"`
}

func (mp mongoPlaylist) toDomain() *domain.Playlist {
	return &domain.Playlist{
		ID:        mp.ID,
		Name:      mp.Name,
		UserID:    mp.UserID,
		CreatedAt: unixToTime(mp.CreatedAt),
		CoverArt:  mp.CoverArt,
		IsPublic:  mp.IsPublic,
	}
}

type mongoPlaylistTrack struct {
	ID         int64 `bson:"_id"`
	PlaylistID int64 `bson:"playlist_id"`
	TrackID    int64 `bson:"track_id"`
	Position   int   `bson:"position"`
}

func (mr mongoPlaylistTrack) toDomain() *domain.PlaylistTrack {
	return &domain.PlaylistTrack{
		ID:         mr.ID,
		PlaylistID: mr.PlaylistID,
		TrackID:    mr.TrackID,
		Position:   mr.Position,
	}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	id, err := nextID(ctx, r.db, playlistsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoPlaylist{
		ID:        id,
		Name:      playlist.Name,
		UserID:    playlist.UserID,
		CreatedAt: playlist.CreatedAt.Unix(),
		CoverArt:  playlist.CoverArt,
		IsPublic:  playlist.IsPublic,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlaylistRepository) FindByID(ctx context.Context, id int64) (*domain.Playlist, error) {
	var mp mongoPlaylist
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("find playlist: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PlaylistRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Playlist, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *PlaylistRepository) ListPublic(ctx context.Context) ([]*domain.Playlist, error) {
	return r.list(ctx, bson.M{"is_public": true})
}

func (r *PlaylistRepository) Update(ctx context.Context, id int64, upd ports.PlaylistUpdate) (*domain.Playlist, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.CoverArt != nil {
		set["cover_art"] = *upd.CoverArt
	}
	if upd.IsPublic != nil {
		set["is_public"] = *upd.IsPublic
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update playlist: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPlaylistNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete cascades: junction rows go first, then the playlist itself.
func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.rows.DeleteMany(ctx, bson.M{"playlist_id": id}); err != nil {
		return fmt.Errorf("delete playlist tracks: %w", err)
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func (r *PlaylistRepository) AddTrack(ctx context.Context, row *domain.PlaylistTrack) (*domain.PlaylistTrack, error) {
	id, err := nextID(ctx, r.db, playlistTracksCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoPlaylistTrack{
		ID:         id,
		PlaylistID: row.PlaylistID,
		TrackID:    row.TrackID,
		Position:   row.Position,
	}
	if _, err := r.rows.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert playlist track: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlaylistRepository) TracksFor(ctx context.Context, playlistID int64) ([]*domain.PlaylistTrack, error) {
	cur, err := r.rows.Find(ctx,
		bson.M{"playlist_id": playlistID},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list playlist tracks: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.PlaylistTrack
	for cur.Next(ctx) {
		var mr mongoPlaylistTrack
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode playlist track: %w", err)
		}
		out = append(out, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list playlist tracks: %w", err)
	}
	return out, nil
}

// RemoveTrack deletes one row matching (playlistID, trackID); duplicate rows
// for the same track are removed one call at a time.
func (r *PlaylistRepository) RemoveTrack(ctx context.Context, playlistID, trackID int64) error {
	res, err := r.rows.DeleteOne(ctx, bson.M{"playlist_id": playlistID, "track_id": trackID})
	if err != nil {
		return fmt.Errorf("remove playlist track: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaylistTrackNotFound
	}
	return nil
}

func (r *PlaylistRepository) UpdateTrackPosition(ctx context.Context, id int64, position int) (*domain.PlaylistTrack, error) {
	var mr mongoPlaylistTrack
	err := r.rows.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"position": position}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPlaylistTrackNotFound
		}
		return nil, fmt.Errorf("move playlist track: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *PlaylistRepository) list(ctx context.Context, filter bson.M) ([]*domain.Playlist, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Playlist
	for cur.Next(ctx) {
		var mp mongoPlaylist
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode playlist: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return out, nil
}
