package matching

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

// Proficiencies lists the tiers from lowest to highest.
func Proficiencies() []Proficiency {
	return []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert}
}

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

// ExperienceLevels lists the levels in seniority order.
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead}
}

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelLead:
		return true
	}
	return false
}

type RequirementLevel string

const (
	RequirementRequired  RequirementLevel = "required"
	RequirementPreferred RequirementLevel = "preferred"
)

func (r RequirementLevel) Valid() bool {
	return r == RequirementRequired || r == RequirementPreferred
}

const (
	MinSkillWeight = 1
	MaxSkillWeight = 10
)

type CandidateSkill struct {
	Name        string
	Proficiency Proficiency
	Years       int
}

// CandidateSnapshot is a detached copy of the candidate attributes used for
// scoring. Skills are ordered by relevance.
type CandidateSnapshot struct {
	ID                uuid.UUID
	YearsExperience   int
	ExpectedSalary    *int64
	Skills            []CandidateSkill
	PreferredLocation string
}

type JobSkill struct {
	Name           string
	Requirement    RequirementLevel
	MinProficiency Proficiency
	MinYears       int
	Weight         int
}

type JobSnapshot struct {
	ID              uuid.UUID
	ExperienceLevel ExperienceLevel
	SalaryMin       int64
	SalaryMax       int64
	Skills          []JobSkill
}

func (c CandidateSnapshot) Validate() error {
	if c.YearsExperience < 0 {
		return invalidField("candidate.years_experience", "must be non-negative, got %d", c.YearsExperience)
	}
	if c.ExpectedSalary != nil && *c.ExpectedSalary <= 0 {
		return invalidField("candidate.expected_salary", "must be positive when set, got %d", *c.ExpectedSalary)
	}
	for i, s := range c.Skills {
		field := fmt.Sprintf("candidate.skills[%d]", i)
		if strings.TrimSpace(s.Name) == "" {
			return invalidField(field+".name", "must not be empty")
		}
		if !s.Proficiency.Valid() {
			return invalidField(field+".proficiency", "unknown tier %q", s.Proficiency)
		}
		if s.Years < 0 {
			return invalidField(field+".years", "must be non-negative, got %d", s.Years)
		}
	}
	return nil
}

func (j JobSnapshot) Validate() error {
	if !j.ExperienceLevel.Valid() {
		return invalidField("job.experience_level", "unknown level %q", j.ExperienceLevel)
	}
	if j.SalaryMin < 0 {
		return invalidField("job.salary_min", "must be non-negative, got %d", j.SalaryMin)
	}
	if j.SalaryMax < 0 {
		return invalidField("job.salary_max", "must be non-negative, got %d", j.SalaryMax)
	}
	if j.SalaryMin > j.SalaryMax {
		return invalidField("job.salary_min", "exceeds salary_max (%d > %d)", j.SalaryMin, j.SalaryMax)
	}
	for i, s := range j.Skills {
		field := fmt.Sprintf("job.skills[%d]", i)
		if strings.TrimSpace(s.Name) == "" {
			return invalidField(field+".name", "must not be empty")
		}
		if !s.Requirement.Valid() {
			return invalidField(field+".requirement", "unknown requirement level %q", s.Requirement)
		}
		if !s.MinProficiency.Valid() {
			return invalidField(field+".min_proficiency", "unknown tier %q", s.MinProficiency)
		}
		if s.MinYears < 0 {
			return invalidField(field+".min_years", "must be non-negative, got %d", s.MinYears)
		}
		if s.Weight < MinSkillWeight || s.Weight > MaxSkillWeight {
			return invalidField(field+".weight", "must be within [%d,%d], got %d", MinSkillWeight, MaxSkillWeight, s.Weight)
		}
	}
	return nil
}
