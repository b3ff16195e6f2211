package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/domain/entity"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/mailer"
	"github.com/nexcruit/ats-backend/pkg/resume"
	"github.com/nexcruit/ats-backend/pkg/upload"
)

func newID() string { return uuid.NewString() }

func testConfig() *config.Config {
	return &config.Config{
		AppName:                    "ats-test",
		CompanyName:                "NEXCRUIT",
		VerifyEmailURL:             "http://app/verify",
		ResetPasswordURL:           "http://app/reset",
		EmailChangeVerificationURL: "http://app/change",
		VerifyTokenTTL:             time.Hour,
		ResetTokenTTL:              30 * time.Minute,
		ReminderLead:               24 * time.Hour,
		ReminderSweepInterval:      time.Minute,
		ReminderLease:              2 * time.Minute,
		ReminderRetryDelay:         5 * time.Minute,
		ReminderMaxAttempts:        3,
	}
}

func testLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func testJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access", "refresh", "action", time.Hour, 24*time.Hour)
}

// users

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) clone(u *entity.User) *entity.User { c := *u; return &c }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	u.ID = newID()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	m.byID[u.ID] = m.clone(u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return m.clone(u), nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return m.clone(u), nil
		}
	}
	return nil, nil
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *memUsers) UpsertVerified(ctx context.Context, u *entity.User) (*entity.User, error) {
	existing, _ := m.GetByEmail(ctx, u.Email)
	if existing == nil {
		u.IsVerified = true
		if err := m.Create(ctx, u); err != nil {
			return nil, err
		}
		return m.clone(u), nil
	}
	existing.Name, existing.Password, existing.IsVerified = u.Name, u.Password, true
	return existing, m.Update(ctx, existing)
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[u.ID]
	if !ok {
		return errors.New("no user")
	}
	for id, x := range m.byID {
		if id != u.ID && x.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	next := m.clone(u)
	if next.Password == "" {
		next.Password = cur.Password
	}
	if next.GoogleID == "" {
		next.GoogleID = cur.GoogleID
	}
	m.byID[u.ID] = next
	return nil
}

// candidates

type memCandidates struct {
	mu   sync.Mutex
	byID map[string]*entity.Candidate
	seq  int
}

func newMemCandidates() *memCandidates { return &memCandidates{byID: map[string]*entity.Candidate{}} }

func cloneCandidate(c *entity.Candidate) *entity.Candidate {
	x := *c
	x.Letters = append([]string{}, c.Letters...)
	x.Assessments = append([]string{}, c.Assessments...)
	return &x
}

func (m *memCandidates) Create(_ context.Context, c *entity.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == c.Email {
			return repo.ErrDuplicate
		}
	}
	m.seq++
	c.ID = newID()
	if c.Status == "" {
		c.Status = entity.StatusShortlisted
	}
	c.Letters, c.Assessments = []string{}, []string{}
	c.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	c.UpdatedAt = c.CreatedAt
	m.byID[c.ID] = cloneCandidate(c)
	return nil
}

// put stores c as-is, for tests that need exact timestamps.
func (m *memCandidates) put(c entity.Candidate) *entity.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	m.byID[c.ID] = cloneCandidate(&c)
	return &c
}

func (m *memCandidates) GetByID(_ context.Context, id string) (*entity.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok {
		return cloneCandidate(c), nil
	}
	return nil, nil
}

func (m *memCandidates) List(_ context.Context, f entity.CandidateFilter) ([]entity.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids map[string]bool
	if f.IDs != nil {
		ids = map[string]bool{}
		for _, id := range f.IDs {
			ids[id] = true
		}
	}
	out := []entity.Candidate{}
	for _, c := range m.byID {
		if f.Technology != "" && c.Technology != f.Technology {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Search != "" && !containsFold(c.Name, f.Search) {
			continue
		}
		if ids != nil && !ids[c.ID] {
			continue
		}
		out = append(out, *cloneCandidate(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memCandidates) Update(_ context.Context, c *entity.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, x := range m.byID {
		if id != c.ID && x.Email == c.Email {
			return repo.ErrDuplicate
		}
	}
	c.UpdatedAt = time.Now()
	m.byID[c.ID] = cloneCandidate(c)
	return nil
}

func (m *memCandidates) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byID[id]
	delete(m.byID, id)
	return ok, nil
}

func (m *memCandidates) PushLetter(_ context.Context, id, letterID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].Letters = append(m.byID[id].Letters, letterID)
	return nil
}

func (m *memCandidates) PushAssessment(_ context.Context, id, assessmentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[id].Assessments = append(m.byID[id].Assessments, assessmentID)
	return nil
}

func (m *memCandidates) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}

func (m *memCandidates) CountByStatus(_ context.Context, status entity.CandidateStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.byID {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memCandidates) HireSpans(_ context.Context, since time.Time) ([]entity.HireSpan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.HireSpan{}
	for _, c := range m.byID {
		if c.Status == entity.StatusHired && !c.UpdatedAt.Before(since) {
			out = append(out, entity.HireSpan{CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt})
		}
	}
	return out, nil
}

func (m *memCandidates) CountByTechnology(_ context.Context) ([]entity.TechCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for _, c := range m.byID {
		counts[c.Technology]++
	}
	out := []entity.TechCount{}
	for tech, n := range counts {
		out = append(out, entity.TechCount{Technology: tech, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Technology < out[j].Technology })
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// interviews

type memInterviews struct {
	mu         sync.Mutex
	byID       map[string]*entity.Interview
	candidates *memCandidates
}

func newMemInterviews(c *memCandidates) *memInterviews {
	return &memInterviews{byID: map[string]*entity.Interview{}, candidates: c}
}

func (m *memInterviews) populate(iv entity.Interview) entity.Interview {
	iv.Candidate = nil
	if c, _ := m.candidates.GetByID(context.Background(), iv.CandidateID); c != nil {
		iv.Candidate = &entity.CandidateRef{ID: c.ID, Name: c.Name, Email: c.Email}
	}
	return iv
}

func (m *memInterviews) Create(_ context.Context, iv *entity.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv.ID = newID()
	x := *iv
	m.byID[iv.ID] = &x
	return nil
}

func (m *memInterviews) GetByID(_ context.Context, id string) (*entity.Interview, error) {
	m.mu.Lock()
	iv, ok := m.byID[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	p := m.populate(*iv)
	return &p, nil
}

func (m *memInterviews) List(_ context.Context) ([]entity.Interview, error) {
	m.mu.Lock()
	all := make([]entity.Interview, 0, len(m.byID))
	for _, iv := range m.byID {
		all = append(all, *iv)
	}
	m.mu.Unlock()
	for i := range all {
		all[i] = m.populate(all[i])
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}

func (m *memInterviews) Update(_ context.Context, iv *entity.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	x := *iv
	m.byID[iv.ID] = &x
	return nil
}

func (m *memInterviews) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byID[id]
	delete(m.byID, id)
	return ok, nil
}

func (m *memInterviews) CountBetween(_ context.Context, from, to time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, iv := range m.byID {
		if !iv.Date.Before(from) && iv.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

// jobs

type memJobs struct {
	mu   sync.Mutex
	byID map[string]*entity.ScheduledJob
}

func newMemJobs() *memJobs { return &memJobs{byID: map[string]*entity.ScheduledJob{}} }

func (m *memJobs) Create(_ context.Context, j *entity.ScheduledJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j.ID = newID()
	if j.Status == "" {
		j.Status = entity.JobPending
	}
	x := *j
	m.byID[j.ID] = &x
	return nil
}

func (m *memJobs) ClaimDue(_ context.Context, now time.Time, lease time.Duration) (*entity.ScheduledJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *entity.ScheduledJob
	for _, j := range m.byID {
		due := (j.Status == entity.JobPending && !j.RunAt.After(now)) ||
			(j.Status == entity.JobRunning && j.LockedUntil != nil && j.LockedUntil.Before(now))
		if due && (best == nil || j.RunAt.Before(best.RunAt)) {
			best = j
		}
	}
	if best == nil {
		return nil, nil
	}
	until := now.Add(lease)
	best.Status, best.LockedUntil = entity.JobRunning, &until
	best.Attempts++
	x := *best
	x.Payload = copyPayload(best.Payload)
	return &x, nil
}

// held returns the stored job if the caller still holds the lease it claimed j with.
func (m *memJobs) held(j *entity.ScheduledJob) (*entity.ScheduledJob, error) {
	cur := m.byID[j.ID]
	if cur == nil || cur.Status != entity.JobRunning || cur.LockedUntil == nil ||
		j.LockedUntil == nil || !cur.LockedUntil.Equal(*j.LockedUntil) {
		return nil, repo.ErrLeaseLost
	}
	return cur, nil
}

func (m *memJobs) Complete(_ context.Context, j *entity.ScheduledJob, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, err := m.held(j)
	if err != nil {
		return err
	}
	cur.Status, cur.LastError, cur.LockedUntil = entity.JobDone, note, nil
	return nil
}

func (m *memJobs) Retry(_ context.Context, j *entity.ScheduledJob, lastError string, runAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, err := m.held(j)
	if err != nil {
		return err
	}
	cur.LastError, cur.LockedUntil = lastError, nil
	cur.Payload = copyPayload(j.Payload)
	if runAt == nil {
		cur.Status = entity.JobFailed
		return nil
	}
	cur.Status, cur.RunAt = entity.JobPending, *runAt
	return nil
}

func copyPayload(p map[string]string) map[string]string {
	if p == nil {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (m *memJobs) CancelByRef(_ context.Context, kind, refID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, j := range m.byID {
		if j.Kind == kind && j.RefID == refID && j.Status == entity.JobPending {
			j.Status = entity.JobCancelled
			n++
		}
	}
	return n, nil
}

func (m *memJobs) RescheduleByRef(_ context.Context, kind, refID string, runAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, j := range m.byID {
		if j.Kind == kind && j.RefID == refID && j.Status == entity.JobPending {
			j.RunAt, j.Attempts = runAt, 0
			n++
		}
	}
	return n, nil
}

func (m *memJobs) byRef(refID string) []entity.ScheduledJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.ScheduledJob{}
	for _, j := range m.byID {
		if j.RefID == refID {
			out = append(out, *j)
		}
	}
	return out
}

// letters, assessments, offers, templates, comments, sections

type memLetters struct {
	mu   sync.Mutex
	list []*entity.Letter
}

func (m *memLetters) Create(_ context.Context, l *entity.Letter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = newID()
	l.CreatedAt = time.Now().Add(time.Duration(len(m.list)) * time.Millisecond)
	x := *l
	m.list = append(m.list, &x)
	return nil
}

func (m *memLetters) GetForCandidate(_ context.Context, candidateID, letterID string) (*entity.Letter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.list {
		if l.ID == letterID && l.CandidateID == candidateID {
			x := *l
			return &x, nil
		}
	}
	return nil, nil
}

func (m *memLetters) getByID(id string) *entity.Letter {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.list {
		if l.ID == id {
			x := *l
			return &x
		}
	}
	return nil
}

func (m *memLetters) ListByCandidate(_ context.Context, candidateID string, typ entity.LetterType) ([]entity.Letter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Letter{}
	for i := len(m.list) - 1; i >= 0; i-- {
		l := m.list[i]
		if l.CandidateID == candidateID && (typ == "" || l.TemplateType == typ) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLetters) ListByIDs(_ context.Context, ids []string) ([]entity.Letter, error) {
	out := []entity.Letter{}
	for _, id := range ids {
		if l := m.getByID(id); l != nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memLetters) Update(_ context.Context, l *entity.Letter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, x := range m.list {
		if x.ID == l.ID {
			y := *l
			m.list[i] = &y
		}
	}
	return nil
}

func (m *memLetters) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.list)), nil
}

type memAssessments struct {
	mu   sync.Mutex
	list []entity.Assessment
}

func (m *memAssessments) Create(_ context.Context, a *entity.Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = newID()
	a.CreatedAt = time.Now().Add(time.Duration(len(m.list)) * time.Millisecond)
	m.list = append(m.list, *a)
	return nil
}

func (m *memAssessments) GetByID(_ context.Context, id string) (*entity.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.list {
		if a.ID == id {
			x := a
			return &x, nil
		}
	}
	return nil, nil
}

func (m *memAssessments) ListByCandidate(_ context.Context, candidateID string) ([]entity.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Assessment{}
	for i := len(m.list) - 1; i >= 0; i-- {
		if m.list[i].CandidateID == candidateID {
			out = append(out, m.list[i])
		}
	}
	return out, nil
}

func (m *memAssessments) ListByIDs(ctx context.Context, ids []string) ([]entity.Assessment, error) {
	out := []entity.Assessment{}
	for _, id := range ids {
		if a, _ := m.GetByID(ctx, id); a != nil {
			out = append(out, *a)
		}
	}
	return out, nil
}

type memOffers struct {
	mu   sync.Mutex
	list []entity.Offer
}

func (m *memOffers) Create(_ context.Context, o *entity.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = newID()
	o.Date = time.Now().Add(time.Duration(len(m.list)) * time.Millisecond)
	m.list = append(m.list, *o)
	return nil
}

func (m *memOffers) GetByID(_ context.Context, id string) (*entity.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.list {
		if o.ID == id {
			x := o
			return &x, nil
		}
	}
	return nil, nil
}

func (m *memOffers) ListByCandidate(_ context.Context, candidateID string) ([]entity.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Offer{}
	for i := len(m.list) - 1; i >= 0; i-- {
		if m.list[i].CandidateID == candidateID {
			out = append(out, m.list[i])
		}
	}
	return out, nil
}

func (m *memOffers) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.list)), nil
}

type memTemplates struct {
	mu   sync.Mutex
	byID map[string]*entity.OfferTemplate
}

func newMemTemplates() *memTemplates { return &memTemplates{byID: map[string]*entity.OfferTemplate{}} }

func (m *memTemplates) Create(_ context.Context, t *entity.OfferTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = newID()
	x := *t
	m.byID[t.ID] = &x
	return nil
}

func (m *memTemplates) GetByID(_ context.Context, id string) (*entity.OfferTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byID[id]; ok {
		x := *t
		return &x, nil
	}
	return nil, nil
}

func (m *memTemplates) List(_ context.Context) ([]entity.OfferTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.OfferTemplate{}
	for _, t := range m.byID {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memTemplates) Update(_ context.Context, t *entity.OfferTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	x := *t
	m.byID[t.ID] = &x
	return nil
}

func (m *memTemplates) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byID[id]
	delete(m.byID, id)
	return ok, nil
}

type memComments struct {
	mu   sync.Mutex
	list []entity.Comment
}

func (m *memComments) Create(_ context.Context, c *entity.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = newID()
	if c.Datetime.IsZero() {
		c.Datetime = time.Now()
	}
	m.list = append(m.list, *c)
	return nil
}

func (m *memComments) ListByCandidate(_ context.Context, candidateID string) ([]entity.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Comment{}
	for _, c := range m.list {
		if c.CandidateID == candidateID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memSections struct {
	sections []string
	created  bool
}

func (m *memSections) Get(_ context.Context) ([]string, error) {
	if !m.created {
		m.created, m.sections = true, []string{}
	}
	return m.sections, nil
}

func (m *memSections) Save(_ context.Context, sections []string) ([]string, error) {
	m.created, m.sections = true, sections
	return sections, nil
}

// ports

type fakeNotifier struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
	// failTo fails only mail addressed to the given recipients.
	failTo map[string]error
}

func (f *fakeNotifier) Notify(_ context.Context, job mailer.EmailJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err := f.failTo[job.To]; err != nil {
		return err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeNotifier) sent() []mailer.EmailJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.EmailJob{}, f.jobs...)
}

func (f *fakeNotifier) sentTo(addr string) []mailer.EmailJob {
	var out []mailer.EmailJob
	for _, j := range f.sent() {
		if j.To == addr {
			out = append(out, j)
		}
	}
	return out
}

type fakeStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeStorage) Delete(_ context.Context, fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeStorage) Save(_ context.Context, folder string, file *upload.File) (string, error) {
	url := "/uploads/" + folder + "/" + file.Name
	f.saved = append(f.saved, url)
	return url, nil
}

type fakeParser struct {
	err error
}

func (f *fakeParser) Parse(_ context.Context, r io.Reader, _ string) (resume.Summary, error) {
	if f.err != nil {
		return resume.Summary{}, f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return resume.Summary{}, err
	}
	return resume.Summarize(string(b)), nil
}

type fakeMeetings struct {
	err      error
	requests []MeetingRequest
}

func (f *fakeMeetings) Book(_ context.Context, req MeetingRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, req)
	return "https://meet.example.com/" + newID(), nil
}

type fakeIndex struct {
	docs map[string]entity.Candidate
	hits []string
	err  error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]entity.Candidate{}} }

func (f *fakeIndex) Index(_ context.Context, c entity.Candidate) error {
	f.docs[c.ID] = c
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, _ string) ([]string, error) {
	return f.hits, f.err
}

type fakeGoogle struct {
	id  *GoogleIdentity
	err error
}

func (f *fakeGoogle) Verify(_ context.Context, _ string) (*GoogleIdentity, error) {
	return f.id, f.err
}

type memSessions struct {
	mu      sync.Mutex
	byUser  map[string]Session
	claimed map[string]bool
}

func newMemSessions() *memSessions {
	return &memSessions{byUser: map[string]Session{}, claimed: map[string]bool{}}
}

func (m *memSessions) Save(_ context.Context, s Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[s.UserID] = s
	return nil
}

func (m *memSessions) Get(_ context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byUser[userID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *memSessions) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byUser, userID)
	return nil
}

func (m *memSessions) ClaimOnce(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimed[key] {
		return false, nil
	}
	m.claimed[key] = true
	return true, nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []entity.AuditLog
}

func (m *memAudit) Insert(_ context.Context, a entity.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, a)
	return nil
}

func (m *memAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}
