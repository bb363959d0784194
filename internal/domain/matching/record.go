package matching

import "github.com/google/uuid"

type Recommendation string

const (
	HighlyRecommended Recommendation = "highly_recommended"
	Recommended       Recommendation = "recommended"
	Consider          Recommendation = "consider"
	NotRecommended    Recommendation = "not_recommended"
)

type Component string

const (
	ComponentSkill      Component = "skill"
	ComponentExperience Component = "experience"
	ComponentSalary     Component = "salary"
)

// ComponentScores are each within [0,100]. A component listed in
// MatchRecord.Excluded reports 0 and carried no weight.
type ComponentScores struct {
	Skill      float64
	Experience float64
	Salary     float64
}

type SkillDetail struct {
	Name                 string
	Requirement          RequirementLevel
	Weight               int
	Matched              bool
	CandidateProficiency Proficiency
	MeetsMinimum         bool
	YearsShortfall       int
	Earned               int
	Ceiling              int
}

// MatchRecord is the result of one evaluation. Records are never updated in
// place; re-evaluating produces a new record.
type MatchRecord struct {
	JobID          uuid.UUID
	CandidateID    uuid.UUID
	OverallScore   float64
	Components     ComponentScores
	Excluded       []Component
	MatchedSkills  []string
	MissingSkills  []string
	ExtraSkills    []string
	SkillDetails   []SkillDetail
	Recommendation Recommendation
	Method         string
}

func (r MatchRecord) IsExcluded(c Component) bool {
	for _, it := range r.Excluded {
		if it == c {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand records across goroutines
// without sharing slices.
func (r MatchRecord) Clone() MatchRecord {
	out := r
	out.Excluded = append([]Component(nil), r.Excluded...)
	out.MatchedSkills = append([]string(nil), r.MatchedSkills...)
	out.MissingSkills = append([]string(nil), r.MissingSkills...)
	out.ExtraSkills = append([]string(nil), r.ExtraSkills...)
	out.SkillDetails = append([]SkillDetail(nil), r.SkillDetails...)
	return out
}
