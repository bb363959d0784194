package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

type JobSkill struct {
	Name           string
	Requirement    string
	MinProficiency string
	MinYears       int
	Weight         int
}

type Job struct {
	ID              uuid.UUID
	Title           string
	ExperienceLevel string
	SalaryMin       int64
	SalaryMax       int64
	Skills          []JobSkill
}

var demoJobs = []Job{
	{
		ID:              uuid.MustParse("7b1c4a52-0d6e-4b6f-9a43-1f0c2e7d5a01"),
		Title:           "Backend Engineer (Go)",
		ExperienceLevel: "mid",
		SalaryMin:       15000000,
		SalaryMax:       25000000,
		Skills: []JobSkill{
			{Name: "Go", Requirement: "required", MinProficiency: "intermediate", MinYears: 2, Weight: 8},
			{Name: "PostgreSQL", Requirement: "required", MinProficiency: "intermediate", MinYears: 1, Weight: 5},
			{Name: "Redis", Requirement: "preferred", MinProficiency: "beginner", Weight: 3},
			{Name: "Docker", Requirement: "preferred", MinProficiency: "beginner", Weight: 2},
		},
	},
	{
		ID:              uuid.MustParse("7b1c4a52-0d6e-4b6f-9a43-1f0c2e7d5a02"),
		Title:           "DevOps Engineer",
		ExperienceLevel: "senior",
		SalaryMin:       25000000,
		SalaryMax:       40000000,
		Skills: []JobSkill{
			{Name: "Kubernetes", Requirement: "required", MinProficiency: "advanced", MinYears: 3, Weight: 9},
			{Name: "Docker", Requirement: "required", MinProficiency: "advanced", MinYears: 3, Weight: 6},
			{Name: "AWS", Requirement: "preferred", MinProficiency: "intermediate", Weight: 4},
		},
	},
	{
		ID:              uuid.MustParse("7b1c4a52-0d6e-4b6f-9a43-1f0c2e7d5a03"),
		Title:           "Junior Frontend Engineer",
		ExperienceLevel: "junior",
		SalaryMin:       7000000,
		SalaryMax:       12000000,
		Skills: []JobSkill{
			{Name: "TypeScript", Requirement: "required", MinProficiency: "beginner", Weight: 7},
			{Name: "JavaScript", Requirement: "required", MinProficiency: "intermediate", Weight: 5},
		},
	},
}

type JobsSeeder struct {
	Jobs []Job
}

func (JobsSeeder) Name() string { return "jobs" }

func (s JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "experience_level", "salary_min", "salary_max", "status"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "job_skills", "job_id", "position", "skill_name", "requirement", "min_proficiency", "min_years", "weight"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, j := range s.Jobs {
			inserted, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (id, title, experience_level, salary_min, salary_max, status)
				 VALUES ($1, $2, $3, $4, $5, 'open')
				 ON CONFLICT (id) DO NOTHING`,
				j.ID, j.Title, j.ExperienceLevel, j.SalaryMin, j.SalaryMax,
			)
			if err != nil {
				return fmt.Errorf("insert job %s: %w", j.Title, err)
			}
			if inserted == 0 {
				continue
			}
			for i, sk := range j.Skills {
				if _, err := tx.Exec(
					ctx,
					`INSERT INTO job_skills (job_id, position, skill_name, requirement, min_proficiency, min_years, weight)
					 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					j.ID, i, sk.Name, sk.Requirement, sk.MinProficiency, sk.MinYears, sk.Weight,
				); err != nil {
					return fmt.Errorf("insert job skill %s: %w", sk.Name, err)
				}
			}
		}
		return nil
	})
}
