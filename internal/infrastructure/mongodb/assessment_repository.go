package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type assessmentDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Candidate bson.ObjectID `bson:"candidate"`
	Title     string        `bson:"title"`
	FileURL   string        `bson:"fileUrl"`
	Remarks   string        `bson:"remarks,omitempty"`
	Score     float64       `bson:"score"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *assessmentDoc) toEntity() entity.Assessment {
	return entity.Assessment{
		ID:          d.ID.Hex(),
		CandidateID: d.Candidate.Hex(),
		Title:       d.Title,
		FileURL:     d.FileURL,
		Remarks:     d.Remarks,
		Score:       d.Score,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type AssessmentRepository struct {
	collection *mongo.Collection
}

func NewAssessmentRepository(s *Store) *AssessmentRepository {
	return &AssessmentRepository{collection: s.DB.Collection(colAssessments)}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *entity.Assessment) error {
	cid, ok := parseID(a.CandidateID)
	if !ok {
		return mongo.ErrNoDocuments
	}
	now := time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, assessmentDoc{
		Candidate: cid,
		Title:     a.Title,
		FileURL:   a.FileURL,
		Remarks:   a.Remarks,
		Score:     a.Score,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(bson.ObjectID).Hex()
	a.CreatedAt, a.UpdatedAt = now, now
	return nil
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*entity.Assessment, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	doc, err := findOne[assessmentDoc](ctx, r.collection, bson.M{"_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	a := doc.toEntity()
	return &a, nil
}

func (r *AssessmentRepository) list(ctx context.Context, filter bson.M) ([]entity.Assessment, error) {
	docs, err := findAll[assessmentDoc](ctx, r.collection, filter, newestFirst("createdAt"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Assessment, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *AssessmentRepository) ListByCandidate(ctx context.Context, candidateID string) ([]entity.Assessment, error) {
	cid, ok := parseID(candidateID)
	if !ok {
		return []entity.Assessment{}, nil
	}
	return r.list(ctx, bson.M{"candidate": cid})
}

func (r *AssessmentRepository) ListByIDs(ctx context.Context, ids []string) ([]entity.Assessment, error) {
	return r.list(ctx, bson.M{"_id": bson.M{"$in": parseIDs(ids)}})
}
