package repository

import (
	"errors"
	"testing"

	"talent-match/internal/domain/matching"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var candidateCols = []string{
	"id", "full_name", "email", "is_active", "years_experience", "expected_salary", "preferred_location",
	"skill_name", "proficiency", "years",
}

func TestCandidateRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresCandidateRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`FROM candidates c\s+LEFT JOIN candidate_skills`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(candidateCols).
			AddRow(id.String(), "Ana", "ana@example.com", true, 5, int64(9000000), "Jakarta", "Python", "expert", 6).
			AddRow(id.String(), "Ana", "ana@example.com", true, 5, int64(9000000), "Jakarta", "Django", "intermediate", 3))

	c, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, id, c.Snapshot.ID)
	assert.Equal(t, 5, c.Snapshot.YearsExperience)
	require.NotNil(t, c.Snapshot.ExpectedSalary)
	assert.Equal(t, int64(9000000), *c.Snapshot.ExpectedSalary)
	assert.Equal(t, []matching.CandidateSkill{
		{Name: "Python", Proficiency: matching.ProficiencyExpert, Years: 6},
		{Name: "Django", Proficiency: matching.ProficiencyIntermediate, Years: 3},
	}, c.Snapshot.Skills)
}

func TestCandidateRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresCandidateRepository(db)

	mock.ExpectQuery(`FROM candidates`).WillReturnRows(sqlmock.NewRows(candidateCols))

	_, err := repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrCandidateNotFound))
}

func TestCandidateRepository_ListActiveWithoutApplication(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresCandidateRepository(db)
	jobID := uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(`NOT EXISTS \(SELECT 1 FROM applications`).
		WithArgs(jobID.String()).
		WillReturnRows(sqlmock.NewRows(candidateCols).
			AddRow(a.String(), "A", "a@example.com", true, 2, nil, "", "Go", "advanced", 2).
			AddRow(b.String(), "B", "b@example.com", true, 0, int64(5000000), "", nil, nil, nil))

	out, err := repo.ListActiveWithoutApplication(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Nil(t, out[0].Snapshot.ExpectedSalary)
	assert.Len(t, out[0].Snapshot.Skills, 1)
	assert.Equal(t, b, out[1].Snapshot.ID)
	assert.Empty(t, out[1].Snapshot.Skills)
	assert.NotNil(t, out[1].Snapshot.Skills)
}

func TestCandidateRepository_ZeroSalaryLoadsAsUnstated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresCandidateRepository(db)
	jobID := uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(`NOT EXISTS \(SELECT 1 FROM applications`).
		WithArgs(jobID.String()).
		WillReturnRows(sqlmock.NewRows(candidateCols).
			AddRow(a.String(), "A", "a@example.com", true, 4, int64(0), "", "Go", "advanced", 4).
			AddRow(b.String(), "B", "b@example.com", true, 4, int64(15000), "", "Go", "advanced", 4))

	out, err := repo.ListActiveWithoutApplication(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Nil(t, out[0].Snapshot.ExpectedSalary)
	require.NotNil(t, out[1].Snapshot.ExpectedSalary)

	engine, err := matching.NewEngine(matching.DefaultPolicy())
	require.NoError(t, err)
	job := matching.JobSnapshot{
		ID:              jobID,
		ExperienceLevel: matching.LevelMid,
		SalaryMin:       10000,
		SalaryMax:       20000,
		Skills: []matching.JobSkill{
			{Name: "Go", Requirement: matching.RequirementRequired, MinProficiency: matching.ProficiencyIntermediate, Weight: 5},
		},
	}
	snaps := []matching.CandidateSnapshot{out[0].Snapshot, out[1].Snapshot}
	recs, err := matching.NewRanker(engine).RankCandidates(ctx, job, snaps, matching.RankOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, r.CandidateID == a, r.IsExcluded(matching.ComponentSalary), r.CandidateID.String())
	}
}
