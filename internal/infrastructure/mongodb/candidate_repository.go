package mongodb

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type candidateDoc struct {
	ID                bson.ObjectID   `bson:"_id,omitempty"`
	Name              string          `bson:"name"`
	Email             string          `bson:"email"`
	Phone             string          `bson:"phone,omitempty"`
	References        string          `bson:"references,omitempty"`
	Technology        string          `bson:"technology"`
	Level             string          `bson:"level"`
	SalaryExpectation *float64        `bson:"salaryExpectation,omitempty"`
	Experience        *float64        `bson:"experience,omitempty"`
	CVURL             string          `bson:"cvUrl"`
	Status            string          `bson:"status"`
	Skills            []string        `bson:"skills"`
	ResumeScore       int             `bson:"resumeScore"`
	Letters           []bson.ObjectID `bson:"letters"`
	Assessments       []bson.ObjectID `bson:"assessments"`
	CreatedAt         time.Time       `bson:"createdAt"`
	UpdatedAt         time.Time       `bson:"updatedAt"`
}

func (d *candidateDoc) toEntity() entity.Candidate {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return entity.Candidate{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Email:             d.Email,
		Phone:             d.Phone,
		References:        d.References,
		Technology:        d.Technology,
		Level:             d.Level,
		SalaryExpectation: d.SalaryExpectation,
		Experience:        d.Experience,
		CVURL:             d.CVURL,
		Status:            entity.CandidateStatus(d.Status),
		Skills:            skills,
		ResumeScore:       d.ResumeScore,
		Letters:           hexIDs(d.Letters),
		Assessments:       hexIDs(d.Assessments),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type CandidateRepository struct {
	collection *mongo.Collection
}

func NewCandidateRepository(s *Store) *CandidateRepository {
	return &CandidateRepository{collection: s.DB.Collection(colCandidates)}
}

func (r *CandidateRepository) Create(ctx context.Context, c *entity.Candidate) error {
	now := time.Now().UTC()
	if c.Status == "" {
		c.Status = entity.StatusShortlisted
	}
	doc := candidateDoc{
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		References:        c.References,
		Technology:        c.Technology,
		Level:             c.Level,
		SalaryExpectation: c.SalaryExpectation,
		Experience:        c.Experience,
		CVURL:             c.CVURL,
		Status:            string(c.Status),
		Skills:            c.Skills,
		ResumeScore:       c.ResumeScore,
		Letters:           []bson.ObjectID{},
		Assessments:       []bson.ObjectID{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return mapWriteErr(err)
	}
	c.ID = res.InsertedID.(bson.ObjectID).Hex()
	c.Letters, c.Assessments = []string{}, []string{}
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id string) (*entity.Candidate, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	doc, err := findOne[candidateDoc](ctx, r.collection, bson.M{"_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	c := doc.toEntity()
	return &c, nil
}

func candidateFilter(f entity.CandidateFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}
	if f.Technology != "" {
		filter["technology"] = f.Technology
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.IDs != nil {
		filter["_id"] = bson.M{"$in": parseIDs(f.IDs)}
	}
	return filter
}

func (r *CandidateRepository) List(ctx context.Context, f entity.CandidateFilter) ([]entity.Candidate, error) {
	docs, err := findAll[candidateDoc](ctx, r.collection, candidateFilter(f), newestFirst("createdAt"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Candidate, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *CandidateRepository) Update(ctx context.Context, c *entity.Candidate) error {
	oid, ok := parseID(c.ID)
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"name":              c.Name,
		"email":             c.Email,
		"phone":             c.Phone,
		"references":        c.References,
		"technology":        c.Technology,
		"level":             c.Level,
		"salaryExpectation": c.SalaryExpectation,
		"experience":        c.Experience,
		"cvUrl":             c.CVURL,
		"status":            string(c.Status),
		"updatedAt":         c.UpdatedAt,
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	return mapWriteErr(err)
}

func (r *CandidateRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.collection, id)
}

func (r *CandidateRepository) push(ctx context.Context, id, field, refID string) error {
	oid, ok := parseID(id)
	ref, ok2 := parseID(refID)
	if !ok || !ok2 {
		return mongo.ErrNoDocuments
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{field: ref},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

func (r *CandidateRepository) PushLetter(ctx context.Context, id, letterID string) error {
	return r.push(ctx, id, "letters", letterID)
}

func (r *CandidateRepository) PushAssessment(ctx context.Context, id, assessmentID string) error {
	return r.push(ctx, id, "assessments", assessmentID)
}

func (r *CandidateRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *CandidateRepository) CountByStatus(ctx context.Context, status entity.CandidateStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": string(status)})
}

func (r *CandidateRepository) HireSpans(ctx context.Context, since time.Time) ([]entity.HireSpan, error) {
	filter := bson.M{"status": string(entity.StatusHired)}
	if !since.IsZero() {
		filter["updatedAt"] = bson.M{"$gte": since}
	}
	opts := options.Find().SetProjection(bson.M{"createdAt": 1, "updatedAt": 1})
	docs, err := findAll[candidateDoc](ctx, r.collection, filter, opts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.HireSpan, 0, len(docs))
	for _, d := range docs {
		if d.CreatedAt.IsZero() || d.UpdatedAt.IsZero() {
			continue
		}
		out = append(out, entity.HireSpan{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt})
	}
	return out, nil
}

func (r *CandidateRepository) CountByTechnology(ctx context.Context) ([]entity.TechCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$technology"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Technology string `bson:"_id"`
		Count      int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.TechCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.TechCount{Technology: row.Technology, Count: row.Count})
	}
	return out, nil
}
