package repository

import (
	"context"

	"ecg-quiz-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SampleRepository struct {
	Col *mongo.Collection
}

func NewSampleRepository(db *mongo.Database) *SampleRepository {
	return &SampleRepository{Col: db.Collection("samples")}
}

func (r *SampleRepository) FindAll(ctx context.Context) ([]models.EcgSample, error) {
	return r.find(ctx, bson.M{})
}

// FindEligible returns samples with at least one associated label. Samples
// without labels can never be quizzed on.
func (r *SampleRepository) FindEligible(ctx context.Context) ([]models.EcgSample, error) {
	return r.find(ctx, bson.M{"label_ids.0": bson.M{"$exists": true}})
}

func (r *SampleRepository) find(ctx context.Context, filter bson.M) ([]models.EcgSample, error) {
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var samples []models.EcgSample
	for cur.Next(ctx) {
		var s models.EcgSample
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func (r *SampleRepository) FindByID(ctx context.Context, id string) (*models.EcgSample, error) {
	var sample models.EcgSample
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&sample)
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *SampleRepository) Create(ctx context.Context, sample *models.EcgSample) error {
	_, err := r.Col.InsertOne(ctx, sample)
	return err
}

// AddLabel associates a label with a sample. The association order is
// preserved; a label already present is not appended twice.
func (r *SampleRepository) AddLabel(ctx context.Context, sampleID, labelID string) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": sampleID},
		bson.M{"$addToSet": bson.M{"label_ids": labelID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
