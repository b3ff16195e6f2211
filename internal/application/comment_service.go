package application

import (
	"context"
	"strings"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
)

type CommentService struct {
	Comments   repo.CommentRepository
	Candidates repo.CandidateRepository
	Users      repo.UserRepository
}

func NewCommentService(comments repo.CommentRepository, candidates repo.CandidateRepository, users repo.UserRepository) *CommentService {
	return &CommentService{Comments: comments, Candidates: candidates, Users: users}
}

// Add records a comment by the signed-in user on an existing candidate.
func (s *CommentService) Add(ctx context.Context, candidateID, userID, content string) (*entity.Comment, error) {
	c, err := s.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCandidateNotFound
	}
	cm := &entity.Comment{
		CandidateID: c.ID,
		UserID:      userID,
		Content:     strings.TrimSpace(content),
	}
	if u, err := s.Users.GetByID(ctx, userID); err == nil && u != nil {
		cm.AuthorName = u.Name
	}
	if err := s.Comments.Create(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// List returns a candidate's comments, oldest first.
func (s *CommentService) List(ctx context.Context, candidateID string) ([]entity.Comment, error) {
	return s.Comments.ListByCandidate(ctx, candidateID)
}
