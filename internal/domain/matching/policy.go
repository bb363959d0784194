package matching

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
)

type ExperienceStrategy string

const (
	// ExperienceBanded awards full marks only inside the level's band.
	ExperienceBanded ExperienceStrategy = "banded"
	// ExperienceFloor awards full marks when the candidate reaches the band minimum.
	ExperienceFloor ExperienceStrategy = "floor"
)

type SkillCreditMode string

const (
	// SkillCreditCapped caps each requirement at the points of its minimum proficiency.
	SkillCreditCapped SkillCreditMode = "capped"
	// SkillCreditAbsolute measures each requirement against the top tier.
	SkillCreditAbsolute SkillCreditMode = "absolute"
)

const weightEpsilon = 1e-6

type Weights struct {
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
	Salary     float64 `json:"salary"`
}

// Band is an inclusive range of years of experience.
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b Band) Contains(years int) bool {
	return years >= b.Min && years <= b.Max
}

type SalaryCredit struct {
	BelowMin         float64 `json:"below_min"`
	OverMax          float64 `json:"over_max"`
	OverMaxTolerance float64 `json:"over_max_tolerance"`
}

type TierCutoffs struct {
	HighlyRecommended float64 `json:"highly_recommended"`
	Recommended       float64 `json:"recommended"`
	Consider          float64 `json:"consider"`
}

func (t TierCutoffs) Tier(score float64) Recommendation {
	switch {
	case score >= t.HighlyRecommended:
		return HighlyRecommended
	case score >= t.Recommended:
		return Recommended
	case score >= t.Consider:
		return Consider
	default:
		return NotRecommended
	}
}

// Policy is the full weighting configuration of an Engine. An Engine keeps
// its own copy, so mutating a Policy after NewEngine has no effect.
type Policy struct {
	Weights            Weights                  `json:"weights"`
	ExperienceStrategy ExperienceStrategy       `json:"experience_strategy"`
	ExperienceBands    map[ExperienceLevel]Band `json:"experience_bands"`
	ProficiencyPoints  map[Proficiency]int      `json:"proficiency_points"`
	SkillCredit        SkillCreditMode          `json:"skill_credit"`
	Salary             SalaryCredit             `json:"salary"`
	Tiers              TierCutoffs              `json:"tiers"`
}

func DefaultPolicy() Policy {
	return Policy{
		Weights:            Weights{Skill: 0.4, Experience: 0.3, Salary: 0.3},
		ExperienceStrategy: ExperienceBanded,
		ExperienceBands: map[ExperienceLevel]Band{
			LevelEntry:  {Min: 0, Max: 1},
			LevelJunior: {Min: 1, Max: 3},
			LevelMid:    {Min: 3, Max: 7},
			LevelSenior: {Min: 7, Max: 12},
			LevelLead:   {Min: 10, Max: 20},
		},
		ProficiencyPoints: map[Proficiency]int{
			ProficiencyBeginner:     3,
			ProficiencyIntermediate: 5,
			ProficiencyAdvanced:     7,
			ProficiencyExpert:       10,
		},
		SkillCredit: SkillCreditCapped,
		Salary: SalaryCredit{
			BelowMin:         20.0 / 30.0,
			OverMax:          10.0 / 30.0,
			OverMaxTolerance: 0.2,
		},
		Tiers: TierCutoffs{HighlyRecommended: 85, Recommended: 70, Consider: 50},
	}
}

func (p Policy) Validate() error {
	w := p.Weights
	for _, it := range []struct {
		name string
		v    float64
	}{{"weights.skill", w.Skill}, {"weights.experience", w.Experience}, {"weights.salary", w.Salary}} {
		if it.v < 0 || math.IsNaN(it.v) || math.IsInf(it.v, 0) {
			return invalidConfig(it.name, "must be a non-negative number, got %v", it.v)
		}
	}
	if sum := w.Skill + w.Experience + w.Salary; math.Abs(sum-1) > weightEpsilon {
		return invalidConfig("weights", "must sum to 1.0, got %v", sum)
	}
	// skill and salary can drop out of a record; experience never does
	if w.Experience <= 0 {
		return invalidConfig("weights.experience", "must be positive, got %v", w.Experience)
	}

	switch p.ExperienceStrategy {
	case ExperienceBanded, ExperienceFloor:
	default:
		return invalidConfig("experience_strategy", "unknown strategy %q", p.ExperienceStrategy)
	}

	var prev *Band
	for _, lvl := range ExperienceLevels() {
		b, ok := p.ExperienceBands[lvl]
		if !ok {
			return invalidConfig("experience_bands."+string(lvl), "missing band")
		}
		if b.Min < 0 || b.Min > b.Max {
			return invalidConfig("experience_bands."+string(lvl), "invalid range [%d,%d]", b.Min, b.Max)
		}
		if prev != nil && (b.Min < prev.Min || b.Max < prev.Max) {
			return invalidConfig("experience_bands."+string(lvl), "must not precede the previous level's band")
		}
		cur := b
		prev = &cur
	}

	last := 0
	for _, tier := range Proficiencies() {
		pts, ok := p.ProficiencyPoints[tier]
		if !ok {
			return invalidConfig("proficiency_points."+string(tier), "missing points")
		}
		if pts <= last {
			return invalidConfig("proficiency_points."+string(tier), "must be positive and above the lower tier, got %d", pts)
		}
		last = pts
	}

	switch p.SkillCredit {
	case SkillCreditCapped, SkillCreditAbsolute:
	default:
		return invalidConfig("skill_credit", "unknown mode %q", p.SkillCredit)
	}

	if !unit(p.Salary.BelowMin) {
		return invalidConfig("salary.below_min", "must be within [0,1], got %v", p.Salary.BelowMin)
	}
	if !unit(p.Salary.OverMax) {
		return invalidConfig("salary.over_max", "must be within [0,1], got %v", p.Salary.OverMax)
	}
	if tol := p.Salary.OverMaxTolerance; tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return invalidConfig("salary.over_max_tolerance", "must be a non-negative number, got %v", p.Salary.OverMaxTolerance)
	}

	t := p.Tiers
	if !(t.HighlyRecommended <= 100 && t.HighlyRecommended > t.Recommended && t.Recommended > t.Consider && t.Consider > 0) {
		return invalidConfig("tiers", "cut points must be strictly descending within (0,100], got %v/%v/%v",
			t.HighlyRecommended, t.Recommended, t.Consider)
	}
	return nil
}

func unit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Fingerprint is a short stable digest of the policy, used to tag records and
// to key cached rankings.
func (p Policy) Fingerprint() string {
	b, _ := json.Marshal(p)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:6])
}

func (p Policy) clone() Policy {
	out := p
	out.ExperienceBands = make(map[ExperienceLevel]Band, len(p.ExperienceBands))
	for k, v := range p.ExperienceBands {
		out.ExperienceBands[k] = v
	}
	out.ProficiencyPoints = make(map[Proficiency]int, len(p.ProficiencyPoints))
	for k, v := range p.ProficiencyPoints {
		out.ProficiencyPoints[k] = v
	}
	return out
}
