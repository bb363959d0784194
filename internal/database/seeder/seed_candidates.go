package seeder

import (
	"context"
	"fmt"

	"talent-match/internal/database"

	"github.com/google/uuid"
)

type CandidateSkill struct {
	Name        string
	Proficiency string
	Years       int
}

type Candidate struct {
	ID                uuid.UUID
	FullName          string
	Email             string
	YearsExperience   int
	ExpectedSalary    *int64
	PreferredLocation string
	Skills            []CandidateSkill
}

func salary(v int64) *int64 { return &v }

var demoCandidates = []Candidate{
	{
		ID:                uuid.MustParse("3e8f6d10-5c2b-4a7e-8d19-6b0a9c4f2e01"),
		FullName:          "Rina Pratama",
		Email:             "rina.pratama@example.com",
		YearsExperience:   4,
		ExpectedSalary:    salary(20000000),
		PreferredLocation: "Jakarta",
		Skills: []CandidateSkill{
			{Name: "Go", Proficiency: "advanced", Years: 4},
			{Name: "PostgreSQL", Proficiency: "intermediate", Years: 3},
			{Name: "Redis", Proficiency: "intermediate", Years: 2},
		},
	},
	{
		ID:                uuid.MustParse("3e8f6d10-5c2b-4a7e-8d19-6b0a9c4f2e02"),
		FullName:          "Dimas Saputra",
		Email:             "dimas.saputra@example.com",
		YearsExperience:   7,
		ExpectedSalary:    salary(35000000),
		PreferredLocation: "Remote",
		Skills: []CandidateSkill{
			{Name: "Kubernetes", Proficiency: "expert", Years: 5},
			{Name: "Docker", Proficiency: "expert", Years: 6},
			{Name: "AWS", Proficiency: "advanced", Years: 4},
			{Name: "Go", Proficiency: "intermediate", Years: 2},
		},
	},
	{
		ID:              uuid.MustParse("3e8f6d10-5c2b-4a7e-8d19-6b0a9c4f2e03"),
		FullName:        "Sari Wulandari",
		Email:           "sari.wulandari@example.com",
		YearsExperience: 1,
		Skills: []CandidateSkill{
			{Name: "TypeScript", Proficiency: "intermediate", Years: 1},
			{Name: "JavaScript", Proficiency: "intermediate", Years: 1},
		},
	},
}

type CandidatesSeeder struct {
	Candidates []Candidate
}

func (CandidatesSeeder) Name() string { return "candidates" }

func (s CandidatesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidates", "id", "full_name", "email", "years_experience", "expected_salary", "preferred_location", "is_active"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "candidate_skills", "candidate_id", "position", "skill_name", "proficiency", "years"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, c := range s.Candidates {
			inserted, err := tx.Exec(
				ctx,
				`INSERT INTO candidates (id, full_name, email, years_experience, expected_salary, preferred_location, is_active)
				 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
				 ON CONFLICT (id) DO NOTHING`,
				c.ID, c.FullName, c.Email, c.YearsExperience, c.ExpectedSalary, c.PreferredLocation,
			)
			if err != nil {
				return fmt.Errorf("insert candidate %s: %w", c.Email, err)
			}
			if inserted == 0 {
				continue
			}
			for i, sk := range c.Skills {
				if _, err := tx.Exec(
					ctx,
					`INSERT INTO candidate_skills (candidate_id, position, skill_name, proficiency, years)
					 VALUES ($1, $2, $3, $4, $5)`,
					c.ID, i, sk.Name, sk.Proficiency, sk.Years,
				); err != nil {
					return fmt.Errorf("insert candidate skill %s: %w", sk.Name, err)
				}
			}
		}
		return nil
	})
}
