package records

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/qianzhu/lifeplanner/internal/server/scores"
)

// Typed structs for each logical form. Each knows how to coerce itself into
// a field bag for the write pipeline; derived metrics that the original
// product computes on save (BMI, health score, education progress) are
// attached here so every save path produces them consistently.

// Child is one per-child tuple on the education form.
type Child struct {
	Age       int    `json:"age"`
	Grade     string `json:"grade"`
	Interests string `json:"interests"`
	Goals     string `json:"goals"`
}

type FinancialForm struct {
	TotalAssets        decimal.Decimal `json:"total_assets"`
	StockPercentage    int             `json:"stock_percentage"`
	BondPercentage     int             `json:"bond_percentage"`
	PropertyPercentage int             `json:"property_percentage"`
	CashPercentage     int             `json:"cash_percentage"`
	RiskLevel          string          `json:"risk_level"`
}

func (f FinancialForm) Fields() Fields {
	return Fields{
		"total_assets":        f.TotalAssets,
		"stock_percentage":    f.StockPercentage,
		"bond_percentage":     f.BondPercentage,
		"property_percentage": f.PropertyPercentage,
		"cash_percentage":     f.CashPercentage,
		"risk_level":          string(ParseRiskLevel(f.RiskLevel)),
	}
}

type HealthForm struct {
	Age           int     `json:"age"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	BloodPressure string  `json:"blood_pressure"`
	ExerciseFreq  string  `json:"exercise_freq"`
	SleepHours    float64 `json:"sleep_hours"`
	Smoke         bool    `json:"smoke"`
	Drink         string  `json:"drink"`
	HealthGoals   string  `json:"health_goals"`
}

func (f HealthForm) Fields() Fields {
	freq := string(ParseExerciseFreq(f.ExerciseFreq))
	fields := Fields{
		"age":            f.Age,
		"height":         f.Height,
		"weight":         f.Weight,
		"blood_pressure": f.BloodPressure,
		"exercise_freq":  freq,
		"sleep_hours":    f.SleepHours,
		"smoke":          f.Smoke,
		"drink":          string(ParseDrinkLevel(f.Drink)),
		"health_goals":   f.HealthGoals,
	}
	if f.Height > 0 {
		heightM := f.Height / 100
		bmi := math.Round(f.Weight/(heightM*heightM)*10) / 10
		fields["bmi"] = bmi
		fields["health_score"] = scores.Health(f.Age, bmi, freq, f.SleepHours, !f.Smoke)
	}
	return fields
}

type EducationForm struct {
	NumChildren     int             `json:"num_children"`
	Children        []Child         `json:"children"`
	EducationBudget decimal.Decimal `json:"education_budget"`
	EducationPlan   string          `json:"education_plan"`
}

func (f EducationForm) Fields() Fields {
	n := f.NumChildren
	if n > len(f.Children) {
		n = len(f.Children)
	}
	if n > MaxChildren {
		n = MaxChildren
	}
	if n < 0 {
		n = 0
	}

	fields := Fields{
		"num_children":     n,
		"education_budget": f.EducationBudget,
		"education_plan":   f.EducationPlan,
	}

	grades := make([]string, 0, n)
	for i := 0; i < n; i++ {
		child := f.Children[i]
		grade := string(ParseGrade(child.Grade))
		fields[ChildKey(i, "age")] = child.Age
		fields[ChildKey(i, "grade")] = grade
		fields[ChildKey(i, "interests")] = child.Interests
		fields[ChildKey(i, "goals")] = child.Goals
		grades = append(grades, grade)
	}

	fields["education_progress"] = scores.EducationProgress(grades)
	return fields
}

type LifePlanForm struct {
	LifeStage       string   `json:"life_stage"`
	ShortTermGoals  string   `json:"short_term_goals"`
	MediumTermGoals string   `json:"medium_term_goals"`
	LongTermGoals   string   `json:"long_term_goals"`
	LifeVision      string   `json:"life_vision"`
	Priorities      []string `json:"priorities"`
}

func (f LifePlanForm) Fields() Fields {
	priorities := make([]string, 0, len(f.Priorities))
	for _, p := range f.Priorities {
		if ValidPriority(p) {
			priorities = append(priorities, p)
		}
	}
	return Fields{
		"life_stage":        string(ParseLifeStage(f.LifeStage)),
		"short_term_goals":  f.ShortTermGoals,
		"medium_term_goals": f.MediumTermGoals,
		"long_term_goals":   f.LongTermGoals,
		"life_vision":       f.LifeVision,
		"priorities":        priorities,
	}
}

type ProfileForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BirthDate     string `json:"birth_date"`
	Gender        string `json:"gender"`
	Occupation    string `json:"occupation"`
	City          string `json:"city"`
	MaritalStatus string `json:"marital_status"`
}

func (f ProfileForm) Fields() Fields {
	return Fields{
		"name":           f.Name,
		"email":          f.Email,
		"phone":          f.Phone,
		"birth_date":     f.BirthDate,
		"gender":         string(ParseGender(f.Gender)),
		"occupation":     f.Occupation,
		"city":           f.City,
		"marital_status": string(ParseMaritalStatus(f.MaritalStatus)),
	}
}

type PreferencesForm struct {
	DailyNews       bool `json:"daily_news"`
	InvestmentAlert bool `json:"investment_alert"`
	HealthReminder  bool `json:"health_reminder"`
	EducationUpdate bool `json:"education_update"`
}

func (f PreferencesForm) Fields() Fields {
	return Fields{
		"daily_news":       f.DailyNews,
		"investment_alert": f.InvestmentAlert,
		"health_reminder":  f.HealthReminder,
		"education_update": f.EducationUpdate,
	}
}

// LifeScoreComponents extracts the three weighted life-score inputs from a
// raw (pre-sanitize) record, applying the documented fallbacks for fields
// that were never stored: wealth falls back to 70 when total assets are
// positive and 50 otherwise, health and education fall back to 50.
// wealth_score and total_assets are two distinct quantities that are never
// reconciled; no formula between them is inferred.
func LifeScoreComponents(raw Fields) (wealth, health, education float64) {
	if v, ok := raw["wealth_score"]; ok && v != nil {
		if n, valid := toInt(v); valid {
			wealth = float64(n)
		}
	} else {
		assets, _ := toDecimal(raw["total_assets"])
		if assets.IsPositive() {
			wealth = 70
		} else {
			wealth = 50
		}
	}

	health = 50
	if v, ok := raw["health_score"]; ok && v != nil {
		if n, valid := toInt(v); valid {
			health = float64(n)
		}
	}

	education = 50
	if v, ok := raw["education_progress"]; ok && v != nil {
		if n, valid := toInt(v); valid {
			education = float64(n)
		}
	}

	return wealth, health, education
}
