package usecase

import (
	"context"
	"sync"
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	jobs map[uuid.UUID]repository.Job
	open []repository.Job
	err  error
}

func (m mockJobRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Job, error) {
	if m.err != nil {
		return repository.Job{}, m.err
	}
	j, ok := m.jobs[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m mockJobRepo) ListOpen(context.Context) ([]repository.Job, error) {
	return m.open, m.err
}

type mockCandidateRepo struct {
	candidates map[uuid.UUID]repository.Candidate
	pool       []repository.Candidate
	err        error
	calls      int
}

func (m *mockCandidateRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Candidate, error) {
	if m.err != nil {
		return repository.Candidate{}, m.err
	}
	c, ok := m.candidates[id]
	if !ok {
		return repository.Candidate{}, repository.ErrCandidateNotFound
	}
	return c, nil
}

func (m *mockCandidateRepo) ListActiveWithoutApplication(context.Context, uuid.UUID) ([]repository.Candidate, error) {
	m.calls++
	return m.pool, m.err
}

type mockRecordRepo struct {
	inserted []matching.MatchRecord
	history  []repository.StoredMatch
	err      error
}

func (m *mockRecordRepo) Insert(_ context.Context, rec matching.MatchRecord) (repository.StoredMatch, error) {
	if m.err != nil {
		return repository.StoredMatch{}, m.err
	}
	m.inserted = append(m.inserted, rec)
	return repository.StoredMatch{ID: uuid.New(), CreatedAt: time.Now().UTC(), Record: rec}, nil
}

func (m *mockRecordRepo) ListHistory(context.Context, uuid.UUID, uuid.UUID, int) ([]repository.StoredMatch, error) {
	return m.history, m.err
}

func (m *mockRecordRepo) LatestByJob(context.Context, uuid.UUID, int) ([]repository.StoredMatch, error) {
	return m.history, m.err
}

type mockApplicationRepo struct {
	apps       map[uuid.UUID]repository.Application
	interviews map[uuid.UUID]repository.Interview
	updateErr  error
	lastChange *repository.StatusChange
}

func (m *mockApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to application.Status) (repository.Application, error) {
	if m.updateErr != nil {
		return repository.Application{}, m.updateErr
	}
	a, ok := m.apps[id]
	if !ok || a.Status != from {
		return repository.Application{}, repository.ErrStatusConflict
	}
	a.Status = to
	m.apps[id] = a
	return a, nil
}

func (m *mockApplicationRepo) FindInterview(_ context.Context, id uuid.UUID) (repository.Interview, error) {
	iv, ok := m.interviews[id]
	if !ok {
		return repository.Interview{}, repository.ErrInterviewNotFound
	}
	return iv, nil
}

func (m *mockApplicationRepo) UpdateInterviewResult(_ context.Context, id uuid.UUID, from, to application.InterviewResult, change *repository.StatusChange) (repository.Interview, error) {
	if m.updateErr != nil {
		return repository.Interview{}, m.updateErr
	}
	iv := m.interviews[id]
	if iv.Result != from {
		return repository.Interview{}, repository.ErrStatusConflict
	}
	iv.Result = to
	m.interviews[id] = iv
	m.lastChange = change
	if change != nil {
		a := m.apps[change.ApplicationID]
		a.Status = change.To
		m.apps[change.ApplicationID] = a
	}
	return iv, nil
}

type recordedEvent struct {
	kind  string
	jobID uuid.UUID
	from  string
	to    string
}

type mockPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *mockPublisher) MatchRecorded(_, jobID, _ uuid.UUID, _ float64, _ string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{kind: "match", jobID: jobID})
}

func (p *mockPublisher) ApplicationStatusChanged(_, jobID uuid.UUID, from, to string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{kind: "status", jobID: jobID, from: from, to: to})
}

type mockInvalidator struct {
	jobs []uuid.UUID
}

func (m *mockInvalidator) InvalidateJob(_ context.Context, jobID uuid.UUID) error {
	m.jobs = append(m.jobs, jobID)
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func backendJob(id uuid.UUID) repository.Job {
	return repository.Job{
		ID:     id,
		Title:  "Backend Engineer",
		Status: repository.JobStatusOpen,
		Snapshot: matching.JobSnapshot{
			ID:              id,
			ExperienceLevel: matching.LevelMid,
			SalaryMin:       10_000,
			SalaryMax:       20_000,
			Skills: []matching.JobSkill{
				{Name: "Go", Requirement: matching.RequirementRequired, MinProficiency: matching.ProficiencyIntermediate, Weight: 5},
				{Name: "PostgreSQL", Requirement: matching.RequirementPreferred, MinProficiency: matching.ProficiencyBeginner, Weight: 3},
			},
		},
	}
}

func goCandidate(id uuid.UUID, years int, prof matching.Proficiency) repository.Candidate {
	return repository.Candidate{
		ID:       id,
		FullName: "Candidate " + id.String()[:8],
		Active:   true,
		Snapshot: matching.CandidateSnapshot{
			ID:              id,
			YearsExperience: years,
			ExpectedSalary:  int64Ptr(15_000),
			Skills: []matching.CandidateSkill{
				{Name: "Go", Proficiency: prof, Years: years},
				{Name: "PostgreSQL", Proficiency: matching.ProficiencyIntermediate, Years: 2},
			},
		},
	}
}

func newEngine() *matching.Engine {
	e, err := matching.NewEngine(matching.DefaultPolicy())
	if err != nil {
		panic(err)
	}
	return e
}
