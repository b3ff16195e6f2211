package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type offerDoc struct {
	ID           bson.ObjectID     `bson:"_id,omitempty"`
	Candidate    bson.ObjectID     `bson:"candidate"`
	Template     bson.ObjectID     `bson:"template"`
	Placeholders map[string]string `bson:"placeholders"`
	Subject      string            `bson:"subject"`
	Body         string            `bson:"body"`
	SentTo       string            `bson:"sentTo"`
	Date         time.Time         `bson:"date"`
	CreatedAt    time.Time         `bson:"createdAt"`
	UpdatedAt    time.Time         `bson:"updatedAt"`
}

func (d *offerDoc) toEntity() entity.Offer {
	ph := d.Placeholders
	if ph == nil {
		ph = map[string]string{}
	}
	return entity.Offer{
		ID:           d.ID.Hex(),
		CandidateID:  d.Candidate.Hex(),
		TemplateID:   d.Template.Hex(),
		Placeholders: ph,
		Subject:      d.Subject,
		Body:         d.Body,
		SentTo:       d.SentTo,
		Date:         d.Date,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type OfferRepository struct {
	collection *mongo.Collection
}

func NewOfferRepository(s *Store) *OfferRepository {
	return &OfferRepository{collection: s.DB.Collection(colOffers)}
}

func (r *OfferRepository) Create(ctx context.Context, o *entity.Offer) error {
	cid, ok := parseID(o.CandidateID)
	tid, ok2 := parseID(o.TemplateID)
	if !ok || !ok2 {
		return mongo.ErrNoDocuments
	}
	now := time.Now().UTC()
	if o.Date.IsZero() {
		o.Date = now
	}
	res, err := r.collection.InsertOne(ctx, offerDoc{
		Candidate:    cid,
		Template:     tid,
		Placeholders: o.Placeholders,
		Subject:      o.Subject,
		Body:         o.Body,
		SentTo:       o.SentTo,
		Date:         o.Date,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(bson.ObjectID).Hex()
	o.CreatedAt, o.UpdatedAt = now, now
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	doc, err := findOne[offerDoc](ctx, r.collection, bson.M{"_id": oid})
	if err != nil || doc == nil {
		return nil, err
	}
	o := doc.toEntity()
	return &o, nil
}

func (r *OfferRepository) ListByCandidate(ctx context.Context, candidateID string) ([]entity.Offer, error) {
	cid, ok := parseID(candidateID)
	if !ok {
		return []entity.Offer{}, nil
	}
	docs, err := findAll[offerDoc](ctx, r.collection, bson.M{"candidate": cid}, newestFirst("date"))
	if err != nil {
		return nil, err
	}
	out := make([]entity.Offer, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

func (r *OfferRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
