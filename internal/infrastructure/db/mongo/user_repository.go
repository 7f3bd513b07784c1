package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tunedeck/music-system/internal/core/domain"
	"github.com/tunedeck/music-system/internal/core/ports"
)

const usersCollection = "users"

type UserRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db, coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID             int64  `bson:"_id"`
	Username       string `bson:"username"`
	Email          string `bson:"email"`
	PasswordHash   string `bson:"password_hash"`
	UserType       string `bson:"user_type"`
	PremiumExpiry  *int64 `bson:"premium_expiry,omitempty"`
	RegisteredAt   int64  `bson:"registered_at"`
	LastLoginAt    *int64 `bson:"last_login_at,omitempty"`
	ProfilePicture string `bson:"profile_picture,omitempty"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		UserType:       u.UserType,
		PremiumExpiry:  timePtrToUnix(u.PremiumExpiry),
		RegisteredAt:   u.RegisteredAt.Unix(),
		LastLoginAt:    timePtrToUnix(u.LastLoginAt),
		ProfilePicture: u.ProfilePicture,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:             mu.ID,
		Username:       mu.Username,
		Email:          mu.Email,
		PasswordHash:   mu.PasswordHash,
		UserType:       mu.UserType,
		PremiumExpiry:  unixToTimePtr(mu.PremiumExpiry),
		RegisteredAt:   unixToTime(mu.RegisteredAt),
		LastLoginAt:    unixToTimePtr(mu.LastLoginAt),
		ProfilePicture: mu.ProfilePicture,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	// Uniqueness is enforced here as well as by the indexes so behaviour
	// matches the in-memory store even before indexes are built.
	for _, filter := range []bson.M{{"username": user.Username}, {"email": user.Email}} {
		n, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("check user uniqueness: %w", err)
		}
		if n > 0 {
			return nil, domain.ErrUserExists
		}
	}

	id, err := nextID(ctx, r.db, usersCollection)
	if err != nil {
		return nil, err
	}

	doc := toMongoUser(user)
	doc.ID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) Update(ctx context.Context, id int64, upd ports.UserUpdate) (*domain.User, error) {
	set := bson.M{}
	unset := bson.M{}

	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.PasswordHash != nil {
		set["password_hash"] = *upd.PasswordHash
	}
	if upd.UserType != nil {
		set["user_type"] = *upd.UserType
	}
	if upd.PremiumExpiry != nil {
		if *upd.PremiumExpiry == nil {
			unset["premium_expiry"] = ""
		} else {
			set["premium_expiry"] = (*upd.PremiumExpiry).Unix()
		}
	}
	if upd.LastLoginAt != nil {
		set["last_login_at"] = upd.LastLoginAt.Unix()
	}
	if upd.ProfilePicture != nil {
		set["profile_picture"] = *upd.ProfilePicture
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return r.FindByID(ctx, id)
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func timePtrToUnix(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ts := t.Unix()
	return &ts
}

func unixToTimePtr(ts *int64) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t
}
