package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"talent-match/internal/domain/matching"
	"talent-match/internal/logger"
	"talent-match/internal/metrics"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

type CandidateSkillDocument struct {
	Name        string `json:"name" mapstructure:"name"`
	Proficiency string `json:"proficiency" mapstructure:"proficiency"`
	Years       int    `json:"years" mapstructure:"years"`
}

type CandidateDocument struct {
	ID                string                   `json:"id,omitempty" mapstructure:"id"`
	YearsExperience   int                      `json:"years_experience" mapstructure:"years_experience"`
	ExpectedSalary    *int64                   `json:"expected_salary,omitempty" mapstructure:"expected_salary"`
	PreferredLocation string                   `json:"preferred_location,omitempty" mapstructure:"preferred_location"`
	Skills            []CandidateSkillDocument `json:"skills" mapstructure:"skills"`
}

type JobSkillDocument struct {
	Name           string `json:"name" mapstructure:"name"`
	Requirement    string `json:"requirement" mapstructure:"requirement"`
	MinProficiency string `json:"min_proficiency" mapstructure:"min_proficiency"`
	MinYears       int    `json:"min_years" mapstructure:"min_years"`
	Weight         int    `json:"weight" mapstructure:"weight"`
}

type JobDocument struct {
	ID              string             `json:"id,omitempty" mapstructure:"id"`
	ExperienceLevel string             `json:"experience_level" mapstructure:"experience_level"`
	SalaryMin       int64              `json:"salary_min" mapstructure:"salary_min"`
	SalaryMax       int64              `json:"salary_max" mapstructure:"salary_max"`
	Skills          []JobSkillDocument `json:"skills" mapstructure:"skills"`
}

// ScoreRequest is the wire and file form of an ad-hoc evaluation.
type ScoreRequest struct {
	Candidate CandidateDocument `json:"candidate" mapstructure:"candidate"`
	Job       JobDocument       `json:"job" mapstructure:"job"`
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// SchemaError lists every schema violation of a request body.
type SchemaError struct {
	Fields []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "schema violation: " + strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidInput
}

type ScoringUsecase interface {
	// Score validates a JSON body against the request schema and evaluates it
	// without storing anything.
	Score(ctx context.Context, body []byte) (matching.MatchRecord, error)
	ScoreRequest(ctx context.Context, req ScoreRequest) (matching.MatchRecord, error)
}

type Scoring struct {
	engine  *matching.Engine
	schema  *gojsonschema.Schema
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewScoringUsecase(engine *matching.Engine, m *metrics.Metrics, log *zap.Logger) (*Scoring, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(scoreRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("compile score schema: %w", err)
	}
	return &Scoring{engine: engine, schema: schema, metrics: m, log: logger.OrNop(log)}, nil
}

func (u *Scoring) Score(ctx context.Context, body []byte) (matching.MatchRecord, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return matching.MatchRecord{}, &SchemaError{Fields: []FieldError{{Field: "(root)", Reason: "body is required"}}}
	}

	res, err := u.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return matching.MatchRecord{}, &SchemaError{Fields: []FieldError{{Field: "(root)", Reason: "malformed JSON"}}}
	}
	if !res.Valid() {
		fields := make([]FieldError, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			fields = append(fields, FieldError{Field: e.Field(), Reason: e.Description()})
		}
		return matching.MatchRecord{}, &SchemaError{Fields: fields}
	}

	var req ScoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return matching.MatchRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return u.ScoreRequest(ctx, req)
}

func (u *Scoring) ScoreRequest(ctx context.Context, req ScoreRequest) (matching.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return matching.MatchRecord{}, err
	}
	cand, job, err := req.Snapshots()
	if err != nil {
		return matching.MatchRecord{}, mapDomainErr(err)
	}

	rec, err := u.engine.Evaluate(cand, job)
	if err != nil {
		return matching.MatchRecord{}, mapDomainErr(err)
	}
	u.metrics.ObserveScore(string(rec.Recommendation), rec.OverallScore)
	return rec, nil
}

// Snapshots converts the documents into engine snapshots. Blank ids map to
// uuid.Nil.
func (r ScoreRequest) Snapshots() (matching.CandidateSnapshot, matching.JobSnapshot, error) {
	candID, err := parseOptionalID("candidate.id", r.Candidate.ID)
	if err != nil {
		return matching.CandidateSnapshot{}, matching.JobSnapshot{}, err
	}
	jobID, err := parseOptionalID("job.id", r.Job.ID)
	if err != nil {
		return matching.CandidateSnapshot{}, matching.JobSnapshot{}, err
	}

	cand := matching.CandidateSnapshot{
		ID:                candID,
		YearsExperience:   r.Candidate.YearsExperience,
		ExpectedSalary:    r.Candidate.ExpectedSalary,
		PreferredLocation: r.Candidate.PreferredLocation,
		Skills:            make([]matching.CandidateSkill, 0, len(r.Candidate.Skills)),
	}
	for _, s := range r.Candidate.Skills {
		cand.Skills = append(cand.Skills, matching.CandidateSkill{
			Name:        s.Name,
			Proficiency: matching.Proficiency(s.Proficiency),
			Years:       s.Years,
		})
	}

	job := matching.JobSnapshot{
		ID:              jobID,
		ExperienceLevel: matching.ExperienceLevel(r.Job.ExperienceLevel),
		SalaryMin:       r.Job.SalaryMin,
		SalaryMax:       r.Job.SalaryMax,
		Skills:          make([]matching.JobSkill, 0, len(r.Job.Skills)),
	}
	for _, s := range r.Job.Skills {
		job.Skills = append(job.Skills, matching.JobSkill{
			Name:           s.Name,
			Requirement:    matching.RequirementLevel(s.Requirement),
			MinProficiency: matching.Proficiency(s.MinProficiency),
			MinYears:       s.MinYears,
			Weight:         s.Weight,
		})
	}
	return cand, job, nil
}

func parseOptionalID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &matching.ValidationError{Field: field, Reason: "must be a UUID"}
	}
	return id, nil
}
