package seeder

import (
	"context"
	"errors"
	"testing"

	"talent-match/internal/database/sqldb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectColumns(mock sqlmock.Sqlmock, table string, cols ...string) {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, c := range cols {
		rows.AddRow(c)
	}
	mock.ExpectQuery("information_schema.columns").WithArgs(table).WillReturnRows(rows)
}

func TestJobsSeeder_InsertsSkillsForNewJobsOnly(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqldb.Wrap(raw)
	defer db.Close()

	fresh := Job{ID: uuid.New(), Title: "Go", ExperienceLevel: "mid", SalaryMin: 1, SalaryMax: 2,
		Skills: []JobSkill{{Name: "Go", Requirement: "required", MinProficiency: "beginner", Weight: 5}}}
	existing := Job{ID: uuid.New(), Title: "Old", ExperienceLevel: "junior", SalaryMin: 1, SalaryMax: 2,
		Skills: []JobSkill{{Name: "Java", Requirement: "required", MinProficiency: "beginner", Weight: 5}}}

	expectColumns(mock, "jobs", "id", "title", "experience_level", "salary_min", "salary_max", "status", "created_at")
	expectColumns(mock, "job_skills", "job_id", "position", "skill_name", "requirement", "min_proficiency", "min_years", "weight")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO jobs").WithArgs(fresh.ID, "Go", "mid", int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO job_skills").WithArgs(fresh.ID, 0, "Go", "required", "beginner", 0, 5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO jobs").WithArgs(existing.ID, "Old", "junior", int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, JobsSeeder{Jobs: []Job{fresh, existing}}.Run(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTableColumns_Mismatch(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqldb.Wrap(raw)
	defer db.Close()

	expectColumns(mock, "candidates", "id", "full_name")

	err = EnsureTableColumns(context.Background(), db, "candidates", "id", "email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "candidates.email")
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqldb.Wrap(raw)
	defer db.Close()

	mock.ExpectQuery("information_schema.columns").WithArgs("candidates").WillReturnError(errors.New("boom"))

	err = Runner{Seeders: []Seeder{CandidatesSeeder{}, JobsSeeder{}}}.Run(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed candidates")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaults_Order(t *testing.T) {
	names := make([]string, 0)
	for _, s := range Defaults() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"jobs", "candidates"}, names)
}
