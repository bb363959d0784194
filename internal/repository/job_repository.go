package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

const JobStatusOpen = "open"

type Job struct {
	ID       uuid.UUID
	Title    string
	Status   string
	Snapshot matching.JobSnapshot
}

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListOpen(ctx context.Context) ([]Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.title, j.status, j.experience_level, j.salary_min, j.salary_max,
	js.skill_name, js.requirement, js.min_proficiency, js.min_years, js.weight
 FROM jobs j
 LEFT JOIN job_skills js ON js.job_id = j.id`

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (Job, error) {
	rows, err := r.db.Query(ctx, jobSelect+`
 WHERE j.id = $1
 ORDER BY js.position ASC`, id)
	if err != nil {
		return Job{}, err
	}
	out, err := scanJobs(rows)
	if err != nil {
		return Job{}, err
	}
	if len(out) == 0 {
		return Job{}, ErrJobNotFound
	}
	return out[0], nil
}

func (r *PostgresJobRepository) ListOpen(ctx context.Context) ([]Job, error) {
	rows, err := r.db.Query(ctx, jobSelect+`
 WHERE j.status = $1
 ORDER BY j.created_at DESC, j.id ASC, js.position ASC`, JobStatusOpen)
	if err != nil {
		return nil, err
	}
	return scanJobs(rows)
}

func scanJobs(rows database.Rows) ([]Job, error) {
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		var (
			j           Job
			level       string
			skillName   *string
			requirement *string
			minProf     *string
			minYears    *int
			weight      *int
		)
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Status, &level, &j.Snapshot.SalaryMin, &j.Snapshot.SalaryMax,
			&skillName, &requirement, &minProf, &minYears, &weight,
		); err != nil {
			return nil, err
		}

		if n := len(out); n == 0 || out[n-1].ID != j.ID {
			j.Snapshot.ID = j.ID
			j.Snapshot.ExperienceLevel = matching.ExperienceLevel(level)
			j.Snapshot.Skills = make([]matching.JobSkill, 0)
			out = append(out, j)
		}
		if skillName == nil {
			continue
		}
		skill := matching.JobSkill{Name: *skillName}
		if requirement != nil {
			skill.Requirement = matching.RequirementLevel(*requirement)
		}
		if minProf != nil {
			skill.MinProficiency = matching.Proficiency(*minProf)
		}
		if minYears != nil {
			skill.MinYears = *minYears
		}
		if weight != nil {
			skill.Weight = *weight
		}
		last := &out[len(out)-1]
		last.Snapshot.Skills = append(last.Snapshot.Skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
