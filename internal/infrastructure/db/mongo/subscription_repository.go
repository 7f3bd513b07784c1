package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tunedeck/music-system/internal/core/domain"
)

const subscriptionsCollection = "premium_subscriptions"

type SubscriptionRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, coll: db.Collection(subscriptionsCollection)}
}

type mongoSubscription struct {
	ID        int64  `bson:"_id"`
	UserID    int64  `bson:"user_id"`
	StartDate int64  `bson:"start_date"`
	EndDate   int64  `bson:"end_date"`
	Amount    string `bson:"amount"`
	Status    string `bson:"status"`
	CreatedAt int64  `bson:"created_at"`
}

func (ms mongoSubscription) toDomain() *domain.PremiumSubscription {
	return &domain.PremiumSubscription{
		ID:        ms.ID,
		UserID:    ms.UserID,
		StartDate: unixToTime(ms.StartDate),
		EndDate:   unixToTime(ms.EndDate),
		Amount:    ms.Amount,
		Status:    ms.Status,
		CreatedAt: unixToTime(ms.CreatedAt),
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.PremiumSubscription) (*domain.PremiumSubscription, error) {
	id, err := nextID(ctx, r.db, subscriptionsCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoSubscription{
		ID:        id,
		UserID:    sub.UserID,
		StartDate: sub.StartDate.Unix(),
		EndDate:   sub.EndDate.Unix(),
		Amount:    sub.Amount,
		Status:    sub.Status,
		CreatedAt: sub.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id int64) (*domain.PremiumSubscription, error) {
	var ms mongoSubscription
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubscriptionRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.PremiumSubscription, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.PremiumSubscription
	for cur.Next(ctx) {
		var ms mongoSubscription
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		out = append(out, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return out, nil
}

func (r *SubscriptionRepository) FindActive(ctx context.Context, userID int64) (*domain.PremiumSubscription, error) {
	var ms mongoSubscription
	err := r.coll.FindOne(ctx, bson.M{
		"user_id":  userID,
		"status":   domain.SubscriptionActive,
		"end_date": bson.M{"$gt": time.Now().Unix()},
	}).Decode(&ms)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find active subscription: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id int64, status string) (*domain.PremiumSubscription, error) {
	var ms mongoSubscription
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("update subscription status: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}
