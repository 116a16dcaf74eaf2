package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"riskcompass/internal/model"
	"riskcompass/internal/risk"
)

// QuestionnaireRepo handles MongoDB operations for submitted questionnaires
type QuestionnaireRepo interface {
	Create(ctx context.Context, q *model.Questionnaire) (string, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Questionnaire, error)
	LatestByUser(ctx context.Context, userID string) (*model.Questionnaire, error)
	ListForTraining(ctx context.Context) ([]model.TrainingRecord, error)
	BenchmarkByIndustry(ctx context.Context, industry string) (*model.Benchmark, error)
	EnsureIndexes(ctx context.Context) error
}

type questionnaireRepo struct {
	collection *mongo.Collection
}

// NewQuestionnaireRepo creates a new questionnaire repository
func NewQuestionnaireRepo(db *mongo.Database, collection string) QuestionnaireRepo {
	return &questionnaireRepo{
		collection: db.Collection(collection),
	}
}

func (r *questionnaireRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "answers." + risk.IndustryKey, Value: 1}}},
	})
	return err
}

func (r *questionnaireRepo) Create(ctx context.Context, q *model.Questionnaire) (string, error) {
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, q)
	if err != nil {
		return "", err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		q.ID = oid.Hex()
	}
	return q.ID, nil
}

func (r *questionnaireRepo) ListByUser(ctx context.Context, userID string) ([]*model.Questionnaire, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questionnaires := []*model.Questionnaire{}
	if err := cursor.All(ctx, &questionnaires); err != nil {
		return nil, err
	}
	return questionnaires, nil
}

func (r *questionnaireRepo) LatestByUser(ctx context.Context, userID string) (*model.Questionnaire, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var q model.Questionnaire
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListForTraining returns every document that has an answers field. Only
// _id and answers are projected; stored profiles are never read back.
func (r *questionnaireRepo) ListForTraining(ctx context.Context) ([]model.TrainingRecord, error) {
	opts := options.Find().
		SetProjection(bson.M{"answers": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"answers": bson.M{"$exists": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.TrainingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *questionnaireRepo) BenchmarkByIndustry(ctx context.Context, industry string) (*model.Benchmark, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"answers." + risk.IndustryKey: industry}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$answers." + risk.IndustryKey,
			"count":        bson.M{"$sum": 1},
			"avgOverall":   bson.M{"$avg": "$riskProfile.overallScore"},
			"avgMarket":    bson.M{"$avg": "$riskProfile.riskBreakdown.marketRisk"},
			"avgFinancial": bson.M{"$avg": "$riskProfile.riskBreakdown.financialRisk"},
			"avgProduct":   bson.M{"$avg": "$riskProfile.riskBreakdown.productRisk"},
			"avgTeam":      bson.M{"$avg": "$riskProfile.riskBreakdown.teamRisk"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []model.Benchmark
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}
