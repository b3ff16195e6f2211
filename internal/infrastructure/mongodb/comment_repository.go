package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
)

type commentDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Candidate  bson.ObjectID `bson:"candidate"`
	User       bson.ObjectID `bson:"user"`
	AuthorName string        `bson:"authorName,omitempty"`
	Content    string        `bson:"content"`
	Datetime   time.Time     `bson:"datetime"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

type CommentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(s *Store) *CommentRepository {
	return &CommentRepository{collection: s.DB.Collection(colComments)}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	cid, ok := parseID(c.CandidateID)
	uid, ok2 := parseID(c.UserID)
	if !ok || !ok2 {
		return mongo.ErrNoDocuments
	}
	now := time.Now().UTC()
	if c.Datetime.IsZero() {
		c.Datetime = now
	}
	res, err := r.collection.InsertOne(ctx, commentDoc{
		Candidate:  cid,
		User:       uid,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		Datetime:   c.Datetime,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(bson.ObjectID).Hex()
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

// ListByCandidate returns comments oldest first.
func (r *CommentRepository) ListByCandidate(ctx context.Context, candidateID string) ([]entity.Comment, error) {
	cid, ok := parseID(candidateID)
	if !ok {
		return []entity.Comment{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}})
	docs, err := findAll[commentDoc](ctx, r.collection, bson.M{"candidate": cid}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Comment, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.Comment{
			ID:          d.ID.Hex(),
			CandidateID: d.Candidate.Hex(),
			UserID:      d.User.Hex(),
			AuthorName:  d.AuthorName,
			Content:     d.Content,
			Datetime:    d.Datetime,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return out, nil
}
