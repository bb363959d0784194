package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
)

// StoredMatch is a persisted MatchRecord. ID and CreatedAt belong to the
// store; the record itself is kept exactly as the engine produced it.
type StoredMatch struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Record    matching.MatchRecord
}

type MatchRecordRepository interface {
	Insert(ctx context.Context, rec matching.MatchRecord) (StoredMatch, error)
	// ListHistory returns the records of one pair, newest first.
	ListHistory(ctx context.Context, jobID, candidateID uuid.UUID, limit int) ([]StoredMatch, error)
	// LatestByJob returns the newest record per candidate for jobID, best score first.
	LatestByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]StoredMatch, error)
}

type PostgresMatchRecordRepository struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresMatchRecordRepository(db database.DB) *PostgresMatchRecordRepository {
	return &PostgresMatchRecordRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type skillDetailRow struct {
	Name                 string `json:"name"`
	Requirement          string `json:"requirement"`
	Weight               int    `json:"weight"`
	Matched              bool   `json:"matched"`
	CandidateProficiency string `json:"candidate_proficiency,omitempty"`
	MeetsMinimum         bool   `json:"meets_minimum"`
	YearsShortfall       int    `json:"years_shortfall"`
	Earned               int    `json:"earned"`
	Ceiling              int    `json:"ceiling"`
}

func (r *PostgresMatchRecordRepository) Insert(ctx context.Context, rec matching.MatchRecord) (StoredMatch, error) {
	if rec.JobID == uuid.Nil || rec.CandidateID == uuid.Nil {
		return StoredMatch{}, fmt.Errorf("match record without job or candidate id")
	}

	cols, err := encodeRecordJSON(rec)
	if err != nil {
		return StoredMatch{}, err
	}

	stored := StoredMatch{ID: uuid.New(), CreatedAt: r.now(), Record: rec.Clone()}
	_, err = r.db.Exec(ctx,
		`INSERT INTO match_records (
			id, job_id, candidate_id, overall_score, skill_score, experience_score, salary_score,
			excluded, matched_skills, missing_skills, extra_skills, skill_details,
			recommendation, method, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		stored.ID,
		rec.JobID,
		rec.CandidateID,
		rec.OverallScore,
		rec.Components.Skill,
		rec.Components.Experience,
		rec.Components.Salary,
		cols[0], cols[1], cols[2], cols[3], cols[4],
		string(rec.Recommendation),
		rec.Method,
		stored.CreatedAt,
	)
	if err != nil {
		return StoredMatch{}, err
	}
	return stored, nil
}

const matchSelect = `SELECT id, job_id, candidate_id, overall_score, skill_score, experience_score, salary_score,
	excluded, matched_skills, missing_skills, extra_skills, skill_details, recommendation, method, created_at
 FROM match_records`

func (r *PostgresMatchRecordRepository) ListHistory(ctx context.Context, jobID, candidateID uuid.UUID, limit int) ([]StoredMatch, error) {
	rows, err := r.db.Query(ctx, matchSelect+`
 WHERE job_id = $1 AND candidate_id = $2
 ORDER BY created_at DESC, id DESC
 LIMIT $3`, jobID, candidateID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanMatches(rows)
}

func (r *PostgresMatchRecordRepository) LatestByJob(ctx context.Context, jobID uuid.UUID, limit int) ([]StoredMatch, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM (
	SELECT DISTINCT ON (candidate_id) id, job_id, candidate_id, overall_score, skill_score, experience_score, salary_score,
		excluded, matched_skills, missing_skills, extra_skills, skill_details, recommendation, method, created_at
	 FROM match_records
	 WHERE job_id = $1
	 ORDER BY candidate_id, created_at DESC
 ) latest
 ORDER BY overall_score DESC, created_at ASC
 LIMIT $2`, jobID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanMatches(rows)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 200 {
		return 200
	}
	return limit
}

func encodeRecordJSON(rec matching.MatchRecord) ([5]string, error) {
	var out [5]string

	excluded := make([]string, 0, len(rec.Excluded))
	for _, c := range rec.Excluded {
		excluded = append(excluded, string(c))
	}
	details := make([]skillDetailRow, 0, len(rec.SkillDetails))
	for _, d := range rec.SkillDetails {
		details = append(details, skillDetailRow{
			Name:                 d.Name,
			Requirement:          string(d.Requirement),
			Weight:               d.Weight,
			Matched:              d.Matched,
			CandidateProficiency: string(d.CandidateProficiency),
			MeetsMinimum:         d.MeetsMinimum,
			YearsShortfall:       d.YearsShortfall,
			Earned:               d.Earned,
			Ceiling:              d.Ceiling,
		})
	}

	values := []any{excluded, nonNil(rec.MatchedSkills), nonNil(rec.MissingSkills), nonNil(rec.ExtraSkills), details}
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("encode match record: %w", err)
		}
		out[i] = string(b)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func scanMatches(rows database.Rows) ([]StoredMatch, error) {
	defer rows.Close()

	out := make([]StoredMatch, 0)
	for rows.Next() {
		var (
			m        StoredMatch
			rec      = &m.Record
			excluded []byte
			matched  []byte
			missing  []byte
			extra    []byte
			details  []byte
			tier     string
		)
		if err := rows.Scan(
			&m.ID, &rec.JobID, &rec.CandidateID, &rec.OverallScore,
			&rec.Components.Skill, &rec.Components.Experience, &rec.Components.Salary,
			&excluded, &matched, &missing, &extra, &details,
			&tier, &rec.Method, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Recommendation = matching.Recommendation(tier)

		var excl []string
		var detailRows []skillDetailRow
		for _, it := range []struct {
			raw []byte
			dst any
		}{
			{excluded, &excl},
			{matched, &rec.MatchedSkills},
			{missing, &rec.MissingSkills},
			{extra, &rec.ExtraSkills},
			{details, &detailRows},
		} {
			if len(it.raw) == 0 {
				continue
			}
			if err := json.Unmarshal(it.raw, it.dst); err != nil {
				return nil, fmt.Errorf("decode match record %s: %w", m.ID, err)
			}
		}
		for _, c := range excl {
			rec.Excluded = append(rec.Excluded, matching.Component(c))
		}
		for _, d := range detailRows {
			rec.SkillDetails = append(rec.SkillDetails, matching.SkillDetail{
				Name:                 d.Name,
				Requirement:          matching.RequirementLevel(d.Requirement),
				Weight:               d.Weight,
				Matched:              d.Matched,
				CandidateProficiency: matching.Proficiency(d.CandidateProficiency),
				MeetsMinimum:         d.MeetsMinimum,
				YearsShortfall:       d.YearsShortfall,
				Earned:               d.Earned,
				Ceiling:              d.Ceiling,
			})
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
