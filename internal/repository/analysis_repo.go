package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"samvad/internal/model"
)

// AnalysisRepo handles MongoDB operations for dialogue analyses
type AnalysisRepo interface {
	Save(ctx context.Context, record *model.AnalysisRecord) (string, error)
	GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error)
	GetRecent(ctx context.Context, limit int64) ([]model.AnalysisSummary, error)
	CountAnalyses(ctx context.Context) (int64, error)
	CountAgreements(ctx context.Context) (int64, error)
}

type analysisRepo struct {
	analyses   *mongo.Collection
	agreements *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		analyses:   db.Collection("dialogue_analyses"),
		agreements: db.Collection("hidden_agreements"),
	}
}

// Save stores the analysis record plus one document per detected agreement,
// assigning the durable analysis ID.
func (r *analysisRepo) Save(ctx context.Context, record *model.AnalysisRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if _, err := r.analyses.InsertOne(ctx, record); err != nil {
		return "", err
	}

	for _, agreement := range record.Result.Agreements {
		stored := model.StoredAgreement{
			ID:                uuid.New().String(),
			AnalysisID:        record.ID,
			CreatedAt:         record.CreatedAt,
			PersonA:           agreement.PersonA,
			PersonB:           agreement.PersonB,
			SharedValues:      agreement.SharedValues,
			AgreementStrength: agreement.AgreementStrength,
			Insight:           agreement.Insight,
		}
		if _, err := r.agreements.InsertOne(ctx, stored); err != nil {
			return "", err
		}
	}

	return record.ID, nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	var record model.AnalysisRecord
	err := r.analyses.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *analysisRepo) GetRecent(ctx context.Context, limit int64) ([]model.AnalysisSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{
			"_id":           1,
			"createdAt":     1,
			"numSpeakers":   1,
			"numAgreements": 1,
			"sourceType":    1,
		})

	cursor, err := r.analyses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []model.AnalysisSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *analysisRepo) CountAnalyses(ctx context.Context) (int64, error) {
	return r.analyses.CountDocuments(ctx, bson.M{})
}

func (r *analysisRepo) CountAgreements(ctx context.Context) (int64, error) {
	return r.agreements.CountDocuments(ctx, bson.M{})
}
