package repository

import (
	"context"

	"talent-match/internal/database"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

type Candidate struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Active   bool
	Snapshot matching.CandidateSnapshot
}

type CandidateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	// ListActiveWithoutApplication returns active candidates that have not
	// applied to jobID, in registration order.
	ListActiveWithoutApplication(ctx context.Context, jobID uuid.UUID) ([]Candidate, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateSelect = `SELECT c.id, c.full_name, c.email, c.is_active, c.years_experience, c.expected_salary, c.preferred_location,
	cs.skill_name, cs.proficiency, cs.years
 FROM candidates c
 LEFT JOIN candidate_skills cs ON cs.candidate_id = c.id`

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (Candidate, error) {
	rows, err := r.db.Query(ctx, candidateSelect+`
 WHERE c.id = $1
 ORDER BY cs.position ASC`, id)
	if err != nil {
		return Candidate{}, err
	}
	out, err := scanCandidates(rows)
	if err != nil {
		return Candidate{}, err
	}
	if len(out) == 0 {
		return Candidate{}, ErrCandidateNotFound
	}
	return out[0], nil
}

func (r *PostgresCandidateRepository) ListActiveWithoutApplication(ctx context.Context, jobID uuid.UUID) ([]Candidate, error) {
	rows, err := r.db.Query(ctx, candidateSelect+`
 WHERE c.is_active
   AND NOT EXISTS (SELECT 1 FROM applications a WHERE a.job_id = $1 AND a.candidate_id = c.id)
 ORDER BY c.created_at ASC, c.id ASC, cs.position ASC`, jobID)
	if err != nil {
		return nil, err
	}
	return scanCandidates(rows)
}

// scanCandidates folds the candidate x skill join back into one Candidate
// per id. Rows must arrive grouped by candidate.
func scanCandidates(rows database.Rows) ([]Candidate, error) {
	defer rows.Close()

	out := make([]Candidate, 0)
	for rows.Next() {
		var (
			c           Candidate
			salary      *int64
			skillName   *string
			proficiency *string
			years       *int
		)
		if err := rows.Scan(
			&c.ID, &c.FullName, &c.Email, &c.Active,
			&c.Snapshot.YearsExperience, &salary, &c.Snapshot.PreferredLocation,
			&skillName, &proficiency, &years,
		); err != nil {
			return nil, err
		}

		if n := len(out); n == 0 || out[n-1].ID != c.ID {
			c.Snapshot.ID = c.ID
			// rows written before the positive-salary constraint may hold 0
			if salary != nil && *salary > 0 {
				c.Snapshot.ExpectedSalary = salary
			}
			c.Snapshot.Skills = make([]matching.CandidateSkill, 0)
			out = append(out, c)
		}
		if skillName == nil {
			continue
		}
		skill := matching.CandidateSkill{Name: *skillName}
		if proficiency != nil {
			skill.Proficiency = matching.Proficiency(*proficiency)
		}
		if years != nil {
			skill.Years = *years
		}
		last := &out[len(out)-1]
		last.Snapshot.Skills = append(last.Snapshot.Skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
