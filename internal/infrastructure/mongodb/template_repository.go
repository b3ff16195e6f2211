package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type templateDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Subject   string        `bson:"subject"`
	Body      string        `bson:"body"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d *templateDoc) toEntity() entity.OfferTemplate {
	return entity.OfferTemplate{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Subject:   d.Subject,
		Body:      d.Body,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type OfferTemplateRepository struct {
	collection *mongo.Collection
}

func NewOfferTemplateRepository(s *Store) *OfferTemplateRepository {
	return &OfferTemplateRepository{collection: s.DB.Collection(colTemplates)}
}

func (r *OfferTemplateRepository) Create(ctx context.Context, t *entity.OfferTemplate) error {
	now := time.Now().UTC()
	res, err := r.collection.InsertOne(ctx, templateDoc{
		Name:      t.Name,
		Subject:   t.Subject,
		Body:      t.Body,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	t.ID = res.InsertedID.(bson.ObjectID).Hex()
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

func (r *OfferTemplateRepository) GetByID(ctx context.Context, id string) (*entity.OfferTemplate, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	doc, err := findOne[templateDoc](ctx, r.collection, bson.M{"_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	t := doc.toEntity()
	return &t, nil
}

func (r *OfferTemplateRepository) List(ctx context.Context) ([]entity.OfferTemplate, error) {
	docs, err := findAll[templateDoc](ctx, r.collection, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]entity.OfferTemplate, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *OfferTemplateRepository) Update(ctx context.Context, t *entity.OfferTemplate) error {
	oid, ok := parseID(t.ID)
	if !ok {
		return mongo.ErrNoDocuments
	}
	t.UpdatedAt = time.Now().UTC()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":      t.Name,
		"subject":   t.Subject,
		"body":      t.Body,
		"updatedAt": t.UpdatedAt,
	}})
	return err
}

func (r *OfferTemplateRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.collection, id)
}
