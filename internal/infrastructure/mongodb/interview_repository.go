package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type interviewDoc struct {
	ID               bson.ObjectID `bson:"_id,omitempty"`
	Candidate        bson.ObjectID `bson:"candidate"`
	PipelineStage    string        `bson:"pipelineStage"`
	InterviewerEmail string        `bson:"interviewerEmail"`
	Date             time.Time     `bson:"date"`
	MeetLink         string        `bson:"meetLink"`
	CreatedAt        time.Time     `bson:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt"`
}

// populatedInterview is an interview joined with its candidate through $lookup.
type populatedInterview struct {
	interviewDoc `bson:",inline"`
	Joined       []candidateDoc `bson:"joined"`
}

func (p *populatedInterview) toEntity() entity.Interview {
	iv := entity.Interview{
		ID:               p.ID.Hex(),
		CandidateID:      p.Candidate.Hex(),
		PipelineStage:    entity.InterviewStage(p.PipelineStage),
		InterviewerEmail: p.InterviewerEmail,
		Date:             p.Date,
		MeetLink:         p.MeetLink,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if len(p.Joined) > 0 {
		c := p.Joined[0]
		iv.Candidate = &entity.CandidateRef{ID: c.ID.Hex(), Name: c.Name, Email: c.Email}
	}
	return iv
}

type InterviewRepository struct {
	collection *mongo.Collection
}

func NewInterviewRepository(s *Store) *InterviewRepository {
	return &InterviewRepository{collection: s.DB.Collection(colInterviews)}
}

func (r *InterviewRepository) Create(ctx context.Context, iv *entity.Interview) error {
	cid, ok := parseID(iv.CandidateID)
	if !ok {
		return mongo.ErrNoDocuments
	}
	now := time.Now().UTC()
	doc := interviewDoc{
		Candidate:        cid,
		PipelineStage:    string(iv.PipelineStage),
		InterviewerEmail: iv.InterviewerEmail,
		Date:             iv.Date.UTC(),
		MeetLink:         iv.MeetLink,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	iv.ID = res.InsertedID.(bson.ObjectID).Hex()
	iv.CreatedAt, iv.UpdatedAt = now, now
	return nil
}

func (r *InterviewRepository) aggregate(ctx context.Context, match bson.D) ([]entity.Interview, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colCandidates},
			{Key: "localField", Value: "candidate"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "joined"},
		}}},
	}
	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []populatedInterview
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.Interview, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*entity.Interview, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	rows, err := r.aggregate(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (r *InterviewRepository) List(ctx context.Context) ([]entity.Interview, error) {
	return r.aggregate(ctx, bson.D{})
}

func (r *InterviewRepository) Update(ctx context.Context, iv *entity.Interview) error {
	oid, ok := parseID(iv.ID)
	cid, ok2 := parseID(iv.CandidateID)
	if !ok || !ok2 {
		return mongo.ErrNoDocuments
	}
	iv.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"candidate":        cid,
		"pipelineStage":    string(iv.PipelineStage),
		"interviewerEmail": iv.InterviewerEmail,
		"date":             iv.Date.UTC(),
		"meetLink":         iv.MeetLink,
		"updatedAt":        iv.UpdatedAt,
	}})
	return err
}

func (r *InterviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.collection, id)
}

// CountBetween counts interviews dated in [from, to).
func (r *InterviewRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"date": bson.M{"$gte": from, "$lt": to}})
}
