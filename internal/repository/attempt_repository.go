package repository

import (
	"context"
	"time"

	"ecg-quiz-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("quiz_attempts")}
}

// Create inserts the attempt with all embedded question attempts in a single
// write, so a graded attempt becomes visible atomically or not at all.
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&attempt)
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindByUser(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	return r.find(ctx, bson.M{"user_id": userID}, nil)
}

func (r *AttemptRepository) FindAll(ctx context.Context) ([]models.QuizAttempt, error) {
	return r.find(ctx, bson.M{}, nil)
}

// FindByUserWindow returns the user's attempts, completed or not, optionally
// bounded to those started at or after since and limited to the most recent
// limit. Statistics use this wider window.
func (r *AttemptRepository) FindByUserWindow(ctx context.Context, userID string, since *time.Time, limit int) ([]models.QuizAttempt, error) {
	filter := bson.M{"user_id": userID}
	if since != nil {
		filter["started_at"] = bson.M{"$gte": *since}
	}
	opts := options.Find().SetSort(bson.M{"started_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

// FindCompletedByUser returns the user's completed attempts, optionally
// bounded to those started at or after since, newest first, optionally
// limited to the most recent n.
func (r *AttemptRepository) FindCompletedByUser(ctx context.Context, userID string, since *time.Time, limit int) ([]models.QuizAttempt, error) {
	filter := bson.M{
		"user_id":      userID,
		"completed_at": bson.M{"$ne": nil},
	}
	if since != nil {
		filter["started_at"] = bson.M{"$gte": *since}
	}
	opts := options.Find().SetSort(bson.M{"started_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *AttemptRepository) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{
		"user_id":      userID,
		"completed_at": bson.M{"$ne": nil},
	})
	return int(n), err
}

func (r *AttemptRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.QuizAttempt, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.Col.Find(ctx, filter, opts)
	} else {
		cur, err = r.Col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.QuizAttempt
	for cur.Next(ctx) {
		var a models.QuizAttempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}
