package repository

import (
	"context"

	"ecg-quiz-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type LabelRepository struct {
	Col *mongo.Collection
}

func NewLabelRepository(db *mongo.Database) *LabelRepository {
	return &LabelRepository{Col: db.Collection("labels")}
}

func (r *LabelRepository) FindAll(ctx context.Context) ([]models.DiagnosticLabel, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var labels []models.DiagnosticLabel
	for cur.Next(ctx) {
		var l models.DiagnosticLabel
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}

func (r *LabelRepository) FindByID(ctx context.Context, id string) (*models.DiagnosticLabel, error) {
	var label models.DiagnosticLabel
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&label)
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *LabelRepository) Create(ctx context.Context, label *models.DiagnosticLabel) error {
	_, err := r.Col.InsertOne(ctx, label)
	return err
}
