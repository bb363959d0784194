package dto

import (
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type ComponentScoresResponse struct {
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
	Salary     float64 `json:"salary"`
}

type SkillDetailResponse struct {
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

type MatchRecordResponse struct {
	ID             *uuid.UUID              `json:"id,omitempty"`
	CreatedAt      *time.Time              `json:"created_at,omitempty"`
	JobID          uuid.UUID               `json:"job_id"`
	CandidateID    uuid.UUID               `json:"candidate_id"`
	OverallScore   float64                 `json:"overall_score"`
	Components     ComponentScoresResponse `json:"components"`
	Excluded       []string                `json:"excluded_components"`
	MatchedSkills  []string                `json:"matched_skills"`
	MissingSkills  []string                `json:"missing_skills"`
	ExtraSkills    []string                `json:"extra_skills"`
	SkillDetails   []SkillDetailResponse   `json:"skill_details"`
	Recommendation string                  `json:"recommendation"`
	Method         string                  `json:"method"`
}

func FromMatchRecord(rec matching.MatchRecord) MatchRecordResponse {
	out := MatchRecordResponse{
		JobID:        rec.JobID,
		CandidateID:  rec.CandidateID,
		OverallScore: rec.OverallScore,
		Components: ComponentScoresResponse{
			Skill:      rec.Components.Skill,
			Experience: rec.Components.Experience,
			Salary:     rec.Components.Salary,
		},
		Excluded:       make([]string, 0, len(rec.Excluded)),
		MatchedSkills:  nonNil(rec.MatchedSkills),
		MissingSkills:  nonNil(rec.MissingSkills),
		ExtraSkills:    nonNil(rec.ExtraSkills),
		SkillDetails:   make([]SkillDetailResponse, 0, len(rec.SkillDetails)),
		Recommendation: string(rec.Recommendation),
		Method:         rec.Method,
	}
	for _, c := range rec.Excluded {
		out.Excluded = append(out.Excluded, string(c))
	}
	for _, d := range rec.SkillDetails {
		out.SkillDetails = append(out.SkillDetails, SkillDetailResponse{
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
	return out
}

func FromStoredMatch(m repository.StoredMatch) MatchRecordResponse {
	out := FromMatchRecord(m.Record)
	id := m.ID
	created := m.CreatedAt.UTC()
	out.ID = &id
	out.CreatedAt = &created
	return out
}

func FromMatchRecords(recs []matching.MatchRecord) []MatchRecordResponse {
	out := make([]MatchRecordResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, FromMatchRecord(r))
	}
	return out
}

func FromStoredMatches(ms []repository.StoredMatch) []MatchRecordResponse {
	out := make([]MatchRecordResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStoredMatch(m))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
