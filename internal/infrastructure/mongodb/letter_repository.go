package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type letterDoc struct {
	ID                 bson.ObjectID `bson:"_id,omitempty"`
	Candidate          bson.ObjectID `bson:"candidate"`
	TemplateType       string        `bson:"templateType"`
	Position           string        `bson:"position,omitempty"`
	Technology         string        `bson:"technology,omitempty"`
	StartingDate       *time.Time    `bson:"startingDate,omitempty"`
	Salary             float64       `bson:"salary,omitempty"`
	ProbationDate      *time.Time    `bson:"probationDate,omitempty"`
	AcceptanceDeadline *time.Time    `bson:"acceptanceDeadline,omitempty"`
	SentTo             string        `bson:"sentTo"`
	SentAt             *time.Time    `bson:"sentAt,omitempty"`
	CreatedAt          time.Time     `bson:"createdAt"`
	UpdatedAt          time.Time     `bson:"updatedAt"`
}

func (d *letterDoc) toEntity() entity.Letter {
	return entity.Letter{
		ID:                 d.ID.Hex(),
		CandidateID:        d.Candidate.Hex(),
		TemplateType:       entity.LetterType(d.TemplateType),
		Position:           d.Position,
		Technology:         d.Technology,
		StartingDate:       d.StartingDate,
		Salary:             d.Salary,
		ProbationDate:      d.ProbationDate,
		AcceptanceDeadline: d.AcceptanceDeadline,
		SentTo:             d.SentTo,
		SentAt:             d.SentAt,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type LetterRepository struct {
	collection *mongo.Collection
}

func NewLetterRepository(s *Store) *LetterRepository {
	return &LetterRepository{collection: s.DB.Collection(colLetters)}
}

func (r *LetterRepository) Create(ctx context.Context, l *entity.Letter) error {
	cid, ok := parseID(l.CandidateID)
	if !ok {
		return mongo.ErrNoDocuments
	}
	now := time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, letterDoc{
		Candidate:          cid,
		TemplateType:       string(l.TemplateType),
		Position:           l.Position,
		Technology:         l.Technology,
		StartingDate:       l.StartingDate,
		Salary:             l.Salary,
		ProbationDate:      l.ProbationDate,
		AcceptanceDeadline: l.AcceptanceDeadline,
		SentTo:             l.SentTo,
		SentAt:             l.SentAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return err
	}
	l.ID = res.InsertedID.(bson.ObjectID).Hex()
	l.CreatedAt, l.UpdatedAt = now, now
	return nil
}

func (r *LetterRepository) GetForCandidate(ctx context.Context, candidateID, letterID string) (*entity.Letter, error) {
	cid, ok := parseID(candidateID)
	lid, ok2 := parseID(letterID)
	if !ok || !ok2 {
		return nil, nil
	}
	doc, err := findOne[letterDoc](ctx, r.collection, bson.M{"_id": lid, "candidate": cid})
	if err != nil || doc == nil {
		return nil, err
	}
	l := doc.toEntity()
	return &l, nil
}

func (r *LetterRepository) list(ctx context.Context, filter bson.M) ([]entity.Letter, error) {
	docs, err := findAll[letterDoc](ctx, r.collection, filter, newestFirst("createdAt"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Letter, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *LetterRepository) ListByCandidate(ctx context.Context, candidateID string, typ entity.LetterType) ([]entity.Letter, error) {
	cid, ok := parseID(candidateID)
	if !ok {
		return []entity.Letter{}, nil
	}
	filter := bson.M{"candidate": cid}
	if typ != "" {
		filter["templateType"] = string(typ)
	}
	return r.list(ctx, filter)
}

func (r *LetterRepository) ListByIDs(ctx context.Context, ids []string) ([]entity.Letter, error) {
	return r.list(ctx, bson.M{"_id": bson.M{"$in": parseIDs(ids)}})
}

func (r *LetterRepository) Update(ctx context.Context, l *entity.Letter) error {
	oid, ok := parseID(l.ID)
	if !ok {
		return mongo.ErrNoDocuments
	}
	l.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"sentTo":    l.SentTo,
		"sentAt":    l.SentAt,
		"updatedAt": l.UpdatedAt,
	}})
	return err
}

func (r *LetterRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
