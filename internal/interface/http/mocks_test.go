package handlers

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/resume"
	"github.com/nexcruit/ats-backend/pkg/upload"
	"github.com/nexcruit/ats-backend/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) UpsertVerified(ctx context.Context, u *entity.User) (*entity.User, error) {
	args := m.Called(ctx, u)
	out, _ := args.Get(0).(*entity.User)
	return out, args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockCandidates struct{ mock.Mock }

func (m *mockCandidates) Create(ctx context.Context, c *entity.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCandidates) GetByID(ctx context.Context, id string) (*entity.Candidate, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Candidate)
	return c, args.Error(1)
}

func (m *mockCandidates) List(ctx context.Context, f entity.CandidateFilter) ([]entity.Candidate, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]entity.Candidate)
	return list, args.Error(1)
}

func (m *mockCandidates) Update(ctx context.Context, c *entity.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCandidates) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCandidates) PushLetter(ctx context.Context, id, letterID string) error {
	return m.Called(ctx, id, letterID).Error(0)
}

func (m *mockCandidates) PushAssessment(ctx context.Context, id, assessmentID string) error {
	return m.Called(ctx, id, assessmentID).Error(0)
}

func (m *mockCandidates) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCandidates) CountByStatus(ctx context.Context, status entity.CandidateStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCandidates) HireSpans(ctx context.Context, since time.Time) ([]entity.HireSpan, error) {
	args := m.Called(ctx, since)
	spans, _ := args.Get(0).([]entity.HireSpan)
	return spans, args.Error(1)
}

func (m *mockCandidates) CountByTechnology(ctx context.Context) ([]entity.TechCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]entity.TechCount)
	return counts, args.Error(1)
}

type stubParser struct{}

func (stubParser) Parse(_ context.Context, r io.Reader, _ string) (resume.Summary, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return resume.Summary{}, err
	}
	return resume.Summarize(string(b)), nil
}

type stubStorage struct{}

func (stubStorage) Save(_ context.Context, folder string, f *upload.File) (string, error) {
	return "/uploads/" + folder + "/" + f.Name, nil
}

func (stubStorage) Delete(context.Context, string) error { return nil }

func errDuplicate() error { return repo.ErrDuplicate }
