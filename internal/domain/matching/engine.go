package matching

import "math"

// Engine computes match scores for a fixed Policy. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	policy Policy
	method string
}

func NewEngine(p Policy) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cp := p.clone()
	return &Engine{
		policy: cp,
		method: "weighted_sum/" + string(cp.ExperienceStrategy) + "/" + string(cp.SkillCredit) + "@" + cp.Fingerprint(),
	}, nil
}

func (e *Engine) Policy() Policy {
	return e.policy.clone()
}

func (e *Engine) Method() string {
	return e.method
}

// Evaluate scores one candidate against one job. Invalid snapshots are
// rejected before any scoring happens.
func (e *Engine) Evaluate(c CandidateSnapshot, j JobSnapshot) (MatchRecord, error) {
	if err := j.Validate(); err != nil {
		return MatchRecord{}, err
	}
	if err := c.Validate(); err != nil {
		return MatchRecord{}, err
	}
	return e.evaluate(c, j), nil
}

func (e *Engine) evaluate(c CandidateSnapshot, j JobSnapshot) MatchRecord {
	rec := MatchRecord{
		JobID:       j.ID,
		CandidateID: c.ID,
		Method:      e.method,
	}

	type part struct {
		weight float64
		score  float64
	}
	parts := make([]part, 0, 3)

	skill, skillOK, details := e.skillScore(c, j)
	rec.SkillDetails = details
	if skillOK {
		rec.Components.Skill = round2(skill)
		parts = append(parts, part{weight: e.policy.Weights.Skill, score: rec.Components.Skill})
	} else {
		rec.Excluded = append(rec.Excluded, ComponentSkill)
	}

	rec.Components.Experience = round2(e.experienceScore(c.YearsExperience, j.ExperienceLevel))
	parts = append(parts, part{weight: e.policy.Weights.Experience, score: rec.Components.Experience})

	salary, salaryOK := e.salaryScore(c.ExpectedSalary, j.SalaryMin, j.SalaryMax)
	if salaryOK {
		rec.Components.Salary = round2(salary)
		parts = append(parts, part{weight: e.policy.Weights.Salary, score: rec.Components.Salary})
	} else {
		rec.Excluded = append(rec.Excluded, ComponentSalary)
	}

	var sumW, sum float64
	for _, p := range parts {
		sumW += p.weight
		sum += p.weight * p.score
	}
	if sumW > 0 {
		rec.OverallScore = round2(clamp(sum/sumW, 0, 100))
	}

	rec.MatchedSkills, rec.MissingSkills, rec.ExtraSkills = skillSets(c, j)
	rec.Recommendation = e.policy.Tiers.Tier(rec.OverallScore)
	return rec
}

// skillScore returns false when the job declares no skills; the component is
// then dropped and the remaining weights renormalized.
func (e *Engine) skillScore(c CandidateSnapshot, j JobSnapshot) (float64, bool, []SkillDetail) {
	if len(j.Skills) == 0 {
		return 0, false, nil
	}

	// first entry wins for duplicated names
	byName := make(map[string]CandidateSkill, len(c.Skills))
	for _, s := range c.Skills {
		if _, ok := byName[s.Name]; !ok {
			byName[s.Name] = s
		}
	}

	top := e.policy.ProficiencyPoints[ProficiencyExpert]
	details := make([]SkillDetail, 0, len(j.Skills))
	var earnedSum, ceilingSum float64
	for _, req := range j.Skills {
		minPts := e.policy.ProficiencyPoints[req.MinProficiency]
		d := SkillDetail{
			Name:        req.Name,
			Requirement: req.Requirement,
			Weight:      req.Weight,
			Ceiling:     minPts,
		}
		if e.policy.SkillCredit == SkillCreditAbsolute {
			d.Ceiling = top
		}

		if cs, ok := byName[req.Name]; ok {
			pts := e.policy.ProficiencyPoints[cs.Proficiency]
			d.Matched = true
			d.CandidateProficiency = cs.Proficiency
			d.MeetsMinimum = pts >= minPts
			if cs.Years < req.MinYears {
				d.YearsShortfall = req.MinYears - cs.Years
			}
			d.Earned = pts
			if d.Earned > d.Ceiling {
				d.Earned = d.Ceiling
			}
		}

		earnedSum += float64(req.Weight * d.Earned)
		ceilingSum += float64(req.Weight * d.Ceiling)
		details = append(details, d)
	}

	if ceilingSum <= 0 {
		return 0, false, details
	}
	return clamp(100*earnedSum/ceilingSum, 0, 100), true, details
}

func (e *Engine) experienceScore(years int, level ExperienceLevel) float64 {
	band := e.policy.ExperienceBands[level]
	switch e.policy.ExperienceStrategy {
	case ExperienceFloor:
		if years >= band.Min {
			return 100
		}
		return 0
	default:
		if band.Contains(years) {
			return 100
		}
		return 0
	}
}

// salaryScore returns false when the candidate stated no expectation.
func (e *Engine) salaryScore(expected *int64, salaryMin, salaryMax int64) (float64, bool) {
	if expected == nil {
		return 0, false
	}
	v := *expected
	limit := salaryMax + int64(math.Round(float64(salaryMax)*e.policy.Salary.OverMaxTolerance))
	switch {
	case v >= salaryMin && v <= salaryMax:
		return 100, true
	case v < salaryMin:
		return 100 * e.policy.Salary.BelowMin, true
	case v > limit:
		return 0, true
	default:
		return 100 * e.policy.Salary.OverMax, true
	}
}

func skillSets(c CandidateSnapshot, j JobSnapshot) (matched, missing, extra []string) {
	have := make(map[string]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		have[s.Name] = struct{}{}
	}
	wanted := make(map[string]struct{}, len(j.Skills))

	matched = make([]string, 0, len(j.Skills))
	missing = make([]string, 0)
	for _, req := range j.Skills {
		if _, dup := wanted[req.Name]; dup {
			continue
		}
		wanted[req.Name] = struct{}{}
		if _, ok := have[req.Name]; ok {
			matched = append(matched, req.Name)
			continue
		}
		if req.Requirement == RequirementRequired {
			missing = append(missing, req.Name)
		}
	}

	extra = make([]string, 0)
	seen := make(map[string]struct{}, len(c.Skills))
	for _, s := range c.Skills {
		if _, ok := wanted[s.Name]; ok {
			continue
		}
		if _, dup := seen[s.Name]; dup {
			continue
		}
		seen[s.Name] = struct{}{}
		extra = append(extra, s.Name)
	}
	return matched, missing, extra
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
