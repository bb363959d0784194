package matching

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salary(v int64) *int64 { return &v }

func newTestEngine(t *testing.T, mutate ...func(*Policy)) *Engine {
	t.Helper()
	p := DefaultPolicy()
	for _, m := range mutate {
		m(&p)
	}
	e, err := NewEngine(p)
	require.NoError(t, err)
	return e
}

func backendJob() JobSnapshot {
	return JobSnapshot{
		ID:              uuid.New(),
		ExperienceLevel: LevelMid,
		SalaryMin:       8_000_000,
		SalaryMax:       12_000_000,
		Skills: []JobSkill{
			{Name: "Python", Requirement: RequirementRequired, MinProficiency: ProficiencyAdvanced, Weight: 8},
			{Name: "Django", Requirement: RequirementRequired, MinProficiency: ProficiencyIntermediate, Weight: 5},
		},
	}
}

func strongCandidate() CandidateSnapshot {
	return CandidateSnapshot{
		ID:              uuid.New(),
		YearsExperience: 5,
		ExpectedSalary:  salary(9_000_000),
		Skills: []CandidateSkill{
			{Name: "Python", Proficiency: ProficiencyExpert, Years: 6},
			{Name: "Django", Proficiency: ProficiencyIntermediate, Years: 3},
			{Name: "Docker", Proficiency: ProficiencyBeginner, Years: 1},
		},
	}
}

func TestEngine_Evaluate_FullMatch(t *testing.T) {
	e := newTestEngine(t)
	job := backendJob()
	cand := strongCandidate()

	rec, err := e.Evaluate(cand, job)
	require.NoError(t, err)

	assert.Equal(t, job.ID, rec.JobID)
	assert.Equal(t, cand.ID, rec.CandidateID)
	assert.Equal(t, 100.0, rec.Components.Skill)
	assert.Equal(t, 100.0, rec.Components.Experience)
	assert.Equal(t, 100.0, rec.Components.Salary)
	assert.Equal(t, 100.0, rec.OverallScore)
	assert.Equal(t, HighlyRecommended, rec.Recommendation)
	assert.Empty(t, rec.Excluded)
	assert.Equal(t, []string{"Python", "Django"}, rec.MatchedSkills)
	assert.Empty(t, rec.MissingSkills)
	assert.Equal(t, []string{"Docker"}, rec.ExtraSkills)
	assert.Equal(t, e.Method(), rec.Method)
}

func TestEngine_Evaluate_MissingRequiredSkill(t *testing.T) {
	e := newTestEngine(t)
	cand := strongCandidate()
	cand.Skills = cand.Skills[:1]

	rec, err := e.Evaluate(cand, backendJob())
	require.NoError(t, err)

	// 8*7 earned of 8*7 + 5*5 possible
	assert.Equal(t, 69.14, rec.Components.Skill)
	assert.InDelta(t, 87.66, rec.OverallScore, 0.001)
	assert.Equal(t, []string{"Python"}, rec.MatchedSkills)
	assert.Equal(t, []string{"Django"}, rec.MissingSkills)
	require.Len(t, rec.SkillDetails, 2)
	assert.True(t, rec.SkillDetails[0].Matched)
	assert.False(t, rec.SkillDetails[1].Matched)
}

func TestEngine_Evaluate_SalaryFarAboveMaxDropsThirtyPoints(t *testing.T) {
	e := newTestEngine(t)
	job := backendJob()

	full, err := e.Evaluate(strongCandidate(), job)
	require.NoError(t, err)

	over := strongCandidate()
	over.ExpectedSalary = salary(15_000_000)
	rec, err := e.Evaluate(over, job)
	require.NoError(t, err)

	assert.Equal(t, 0.0, rec.Components.Salary)
	assert.Equal(t, full.OverallScore-30, rec.OverallScore)
	assert.Equal(t, Recommended, rec.Recommendation)
}

func TestEngine_SalaryBoundaries(t *testing.T) {
	e := newTestEngine(t)
	job := backendJob()

	tests := []struct {
		name     string
		expected int64
		want     float64
	}{
		{name: "at minimum", expected: 8_000_000, want: 100},
		{name: "at maximum", expected: 12_000_000, want: 100},
		{name: "one below minimum", expected: 7_999_999, want: 66.67},
		{name: "one above maximum", expected: 12_000_001, want: 33.33},
		{name: "at tolerance edge", expected: 14_400_000, want: 33.33},
		{name: "past tolerance", expected: 14_400_001, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := strongCandidate()
			cand.ExpectedSalary = salary(tt.expected)
			rec, err := e.Evaluate(cand, job)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Components.Salary)
		})
	}
}

func TestEngine_NoExpectedSalaryRenormalizes(t *testing.T) {
	e := newTestEngine(t)
	cand := strongCandidate()
	cand.ExpectedSalary = nil
	cand.YearsExperience = 10

	rec, err := e.Evaluate(cand, backendJob())
	require.NoError(t, err)

	assert.Equal(t, []Component{ComponentSalary}, rec.Excluded)
	assert.True(t, rec.IsExcluded(ComponentSalary))
	assert.Equal(t, 0.0, rec.Components.Experience)
	// 0.4*100 / (0.4+0.3)
	assert.Equal(t, 57.14, rec.OverallScore)
}

func TestEngine_EmptyJobSkillsRenormalizes(t *testing.T) {
	e := newTestEngine(t)
	job := backendJob()
	job.Skills = nil
	cand := strongCandidate()
	cand.YearsExperience = 9

	rec, err := e.Evaluate(cand, job)
	require.NoError(t, err)

	assert.Equal(t, []Component{ComponentSkill}, rec.Excluded)
	assert.Equal(t, 50.0, rec.OverallScore)
	assert.Equal(t, Consider, rec.Recommendation)
	assert.Empty(t, rec.MatchedSkills)
	assert.Equal(t, []string{"Python", "Django", "Docker"}, rec.ExtraSkills)
}

func TestEngine_ExperienceStrategies(t *testing.T) {
	job := backendJob()
	job.ExperienceLevel = LevelSenior

	banded := newTestEngine(t)
	floor := newTestEngine(t, func(p *Policy) { p.ExperienceStrategy = ExperienceFloor })

	tests := []struct {
		years      int
		wantBanded float64
		wantFloor  float64
	}{
		{years: 6, wantBanded: 0, wantFloor: 0},
		{years: 7, wantBanded: 100, wantFloor: 100},
		{years: 12, wantBanded: 100, wantFloor: 100},
		{years: 15, wantBanded: 0, wantFloor: 100},
	}
	for _, tt := range tests {
		cand := strongCandidate()
		cand.YearsExperience = tt.years

		rb, err := banded.Evaluate(cand, job)
		require.NoError(t, err)
		rf, err := floor.Evaluate(cand, job)
		require.NoError(t, err)

		assert.Equal(t, tt.wantBanded, rb.Components.Experience, "banded years=%d", tt.years)
		assert.Equal(t, tt.wantFloor, rf.Components.Experience, "floor years=%d", tt.years)
	}
	assert.NotEqual(t, banded.Method(), floor.Method())
}

func TestEngine_AbsoluteSkillCredit(t *testing.T) {
	e := newTestEngine(t, func(p *Policy) { p.SkillCredit = SkillCreditAbsolute })

	rec, err := e.Evaluate(strongCandidate(), backendJob())
	require.NoError(t, err)

	// (8*10 + 5*5) / (13*10)
	assert.Equal(t, 80.77, rec.Components.Skill)
}

func TestEngine_SkillScoreMonotoneInProficiency(t *testing.T) {
	for _, mode := range []SkillCreditMode{SkillCreditCapped, SkillCreditAbsolute} {
		e := newTestEngine(t, func(p *Policy) { p.SkillCredit = mode })
		prev := -1.0
		for _, tier := range Proficiencies() {
			cand := strongCandidate()
			cand.Skills[0].Proficiency = tier
			rec, err := e.Evaluate(cand, backendJob())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rec.Components.Skill, prev, "mode=%s tier=%s", mode, tier)
			prev = rec.Components.Skill
		}
	}
}

func TestEngine_DuplicateCandidateSkillUsesFirstMatch(t *testing.T) {
	e := newTestEngine(t)
	cand := strongCandidate()
	cand.Skills = append([]CandidateSkill{{Name: "Django", Proficiency: ProficiencyBeginner}}, cand.Skills...)

	rec, err := e.Evaluate(cand, backendJob())
	require.NoError(t, err)

	require.Len(t, rec.SkillDetails, 2)
	assert.Equal(t, ProficiencyBeginner, rec.SkillDetails[1].CandidateProficiency)
	assert.False(t, rec.SkillDetails[1].MeetsMinimum)
}

func TestEngine_YearsShortfallReported(t *testing.T) {
	e := newTestEngine(t)
	job := backendJob()
	job.Skills[0].MinYears = 8

	rec, err := e.Evaluate(strongCandidate(), job)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.SkillDetails[0].YearsShortfall)
}

func TestEngine_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	job := backendJob()
	cand := strongCandidate()
	cand.ExpectedSalary = salary(13_000_000)

	a, err := e.Evaluate(cand, job)
	require.NoError(t, err)
	b, err := e.Evaluate(cand, job)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEngine_OverallIsWeightedSumOfComponents(t *testing.T) {
	e := newTestEngine(t)
	w := e.Policy().Weights
	job := backendJob()

	for years := 0; years <= 14; years += 2 {
		for _, exp := range []*int64{nil, salary(5_000_000), salary(10_000_000), salary(13_500_000), salary(20_000_000)} {
			for _, tier := range Proficiencies() {
				cand := strongCandidate()
				cand.YearsExperience = years
				cand.ExpectedSalary = exp
				cand.Skills[1].Proficiency = tier

				rec, err := e.Evaluate(cand, job)
				require.NoError(t, err)

				sum := w.Skill*rec.Components.Skill + w.Experience*rec.Components.Experience
				sumW := w.Skill + w.Experience
				if !rec.IsExcluded(ComponentSalary) {
					sum += w.Salary * rec.Components.Salary
					sumW += w.Salary
				}
				assert.Equal(t, round2(sum/sumW), rec.OverallScore)
				assert.GreaterOrEqual(t, rec.OverallScore, 0.0)
				assert.LessOrEqual(t, rec.OverallScore, 100.0)
			}
		}
	}
}

func TestEngine_RejectsInvalidInput(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name  string
		cand  func(*CandidateSnapshot)
		job   func(*JobSnapshot)
		field string
	}{
		{name: "negative experience", cand: func(c *CandidateSnapshot) { c.YearsExperience = -1 }, field: "candidate.years_experience"},
		{name: "zero expected salary", cand: func(c *CandidateSnapshot) { c.ExpectedSalary = salary(0) }, field: "candidate.expected_salary"},
		{name: "unknown proficiency", cand: func(c *CandidateSnapshot) { c.Skills[0].Proficiency = "guru" }, field: "candidate.skills[0].proficiency"},
		{name: "salary range inverted", job: func(j *JobSnapshot) { j.SalaryMin = 13_000_000 }, field: "job.salary_min"},
		{name: "weight above range", job: func(j *JobSnapshot) { j.Skills[1].Weight = 11 }, field: "job.skills[1].weight"},
		{name: "weight below range", job: func(j *JobSnapshot) { j.Skills[0].Weight = 0 }, field: "job.skills[0].weight"},
		{name: "unknown level", job: func(j *JobSnapshot) { j.ExperienceLevel = "principal" }, field: "job.experience_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := strongCandidate()
			job := backendJob()
			if tt.cand != nil {
				tt.cand(&cand)
			}
			if tt.job != nil {
				tt.job(&job)
			}

			_, err := e.Evaluate(cand, job)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestEngine_PolicyIsCopied(t *testing.T) {
	p := DefaultPolicy()
	e, err := NewEngine(p)
	require.NoError(t, err)

	p.ExperienceBands[LevelMid] = Band{Min: 0, Max: 0}
	got := e.Policy()
	assert.Equal(t, Band{Min: 3, Max: 7}, got.ExperienceBands[LevelMid])
}
