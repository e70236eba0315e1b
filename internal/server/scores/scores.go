// Package scores holds the derived-metric calculators: pure, deterministic,
// total functions over record snapshots. Out-of-domain inputs are clamped,
// never rejected.
package scores

// exerciseAdjustments maps the stored exercise-frequency labels to signed
// score adjustments. Unknown labels contribute 0.
var exerciseAdjustments = map[string]int{
	"从不":         -20,
	"偶尔(每月1-2次)": -10,
	"每周1-2次":     0,
	"每周3-4次":     5,
	"每天":         10,
}

// gradeProgress maps a child's grade to an education-progress percentage.
// Unknown grades contribute 0.
var gradeProgress = map[string]int{
	"幼儿园": 20,
	"小学":  40,
	"初中":  60,
	"高中":  80,
	"大学":  95,
	"其他":  50,
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Health computes the 0–100 health score from age, BMI, exercise
// frequency, sleep hours and smoking status.
func Health(age int, bmi float64, exerciseFreq string, sleepHours float64, noSmoke bool) int {
	score := 100

	if bmi < 18.5 || bmi > 30 {
		score -= 20
	} else if bmi < 20 || bmi > 25 {
		score -= 10
	}

	score += exerciseAdjustments[exerciseFreq]

	if sleepHours < 6 || sleepHours > 9 {
		score -= 10
	} else if sleepHours < 7 || sleepHours > 8 {
		score -= 5
	}

	if !noSmoke {
		score -= 15
	}

	if age > 60 {
		score -= 5
	} else if age < 25 {
		score += 5
	}

	return clamp(score)
}

// BMIStatus classifies a BMI value using the 18.5 / 24 / 28 thresholds.
func BMIStatus(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "偏瘦"
	case bmi < 24:
		return "正常"
	case bmi < 28:
		return "偏胖"
	default:
		return "肥胖"
	}
}

// EducationProgress averages the per-grade progress over all children,
// truncating to an integer. No children means 0.
func EducationProgress(grades []string) int {
	if len(grades) == 0 {
		return 0
	}
	total := 0
	for _, g := range grades {
		total += gradeProgress[g]
	}
	return total / len(grades)
}

// Life combines the three component scores with fixed weights
// (wealth 40%, health 30%, education 30%), truncated and clamped to 0–100.
func Life(wealth, health, education float64) int {
	score := 0.4*wealth + 0.3*health + 0.3*education
	return clamp(int(score))
}
