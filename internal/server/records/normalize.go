package records

import (
	"math"

	"github.com/shopspring/decimal"
)

// allocationFieldNames lists the four asset-class shares in the fixed order
// used for the drift-correction tie-break.
var allocationFieldNames = [4]string{
	"stock_percentage", "bond_percentage", "property_percentage", "cash_percentage",
}

// defaultAllocation is the split applied when every share is zero.
var defaultAllocation = [4]int{30, 20, 35, 15}

// boolFieldNames are coerced to bool on every write when present.
var boolFieldNames = []string{
	"smoke", "daily_news", "investment_alert", "health_reminder", "education_update",
}

// moneyFieldNames are coerced to non-negative decimals on every write when
// present.
var moneyFieldNames = []string{"total_assets", "education_budget"}

// NormalizeForWrite repairs a raw field bag before it is persisted. It is
// the single choke point guaranteeing storage invariants regardless of what
// the UI layer passed through: monetary fields become non-negative
// decimals, the four allocation percentages are forced to sum to exactly
// 100, priorities become a list of strings, and known boolean flags become
// booleans. Keys absent from the input stay absent (saves are partial
// updates). The function never fails; every coercion failure degrades to a
// documented default.
func NormalizeForWrite(raw Fields) Fields {
	out := raw.Clone()

	for _, key := range moneyFieldNames {
		if v, ok := out[key]; ok {
			d, valid := toDecimal(v)
			if !valid || d.IsNegative() {
				d = decimal.Zero
			}
			out[key] = d
		}
	}

	if v, ok := out["num_children"]; ok {
		n, _ := toInt(v)
		if n < 0 {
			n = 0
		}
		if n > MaxChildren {
			n = MaxChildren
		}
		out["num_children"] = n
	}

	anyAllocation := false
	for _, key := range allocationFieldNames {
		if _, ok := raw[key]; ok {
			anyAllocation = true
			break
		}
	}
	if anyAllocation {
		var shares [4]int
		for i, key := range allocationFieldNames {
			n, _ := toInt(out[key])
			if n < 0 {
				n = 0
			}
			shares[i] = n
		}
		shares = normalizeAllocation(shares)
		for i, key := range allocationFieldNames {
			out[key] = shares[i]
		}
	}

	if v, ok := out["priorities"]; ok {
		out["priorities"] = toStringList(v)
	}

	for _, key := range boolFieldNames {
		if v, ok := out[key]; ok {
			out[key] = toBool(v)
		}
	}

	return out
}

// normalizeAllocation forces the four shares to sum to exactly 100.
// Zero-sum input falls back to the default split. Otherwise each share is
// rescaled proportionally and rounded; residual rounding drift is assigned
// to the rescaled counterpart of the largest original share, tie-broken by
// the fixed field order.
func normalizeAllocation(shares [4]int) [4]int {
	sum := 0
	for _, v := range shares {
		sum += v
	}
	if sum == 0 {
		return defaultAllocation
	}
	if sum == 100 {
		return shares
	}

	var rescaled [4]int
	total := 0
	for i, v := range shares {
		rescaled[i] = int(math.Round(float64(v) / float64(sum) * 100))
		total += rescaled[i]
	}

	if drift := 100 - total; drift != 0 {
		largest := 0
		for i := 1; i < len(shares); i++ {
			if shares[i] > shares[largest] {
				largest = i
			}
		}
		rescaled[largest] += drift
	}

	return rescaled
}

// SanitizeForRead repairs a loaded row so that downstream consumers never
// see nulls or out-of-set values: numeric fields are filled with zero and
// cast to their declared type, enumeration fields resolve to a member of
// their option set (falling back to the documented default), known text
// fields become empty strings, and the per-child tuples for every index in
// [0, num_children) are back-filled with defaults. Storage may contain
// partially-populated legacy rows; this runs after every load.
func SanitizeForRead(row Fields) Fields {
	out := row.Clone()

	assets, ok := toDecimal(out["total_assets"])
	if !ok || assets.IsNegative() {
		assets = decimal.Zero
	}
	out["total_assets"] = assets

	for _, key := range allocationFieldNames {
		n, _ := toInt(out[key])
		if n < 0 {
			n = 0
		}
		out[key] = n
	}

	for _, key := range []string{"health_score", "education_progress", "life_score"} {
		n, _ := toInt(out[key])
		if n < 0 {
			n = 0
		}
		out[key] = n
	}

	riskLevel, _ := toString(out["risk_level"])
	out["risk_level"] = string(ParseRiskLevel(riskLevel))
	exerciseFreq, _ := toString(out["exercise_freq"])
	out["exercise_freq"] = string(ParseExerciseFreq(exerciseFreq))
	drink, _ := toString(out["drink"])
	out["drink"] = string(ParseDrinkLevel(drink))

	for _, key := range []string{"health_goals", "education_plan"} {
		s, _ := toString(out[key])
		out[key] = s
	}

	out["priorities"] = toStringList(out["priorities"])

	numChildren, _ := toInt(out["num_children"])
	if numChildren < 0 {
		numChildren = 0
	}
	if numChildren > MaxChildren {
		numChildren = MaxChildren
	}
	out["num_children"] = numChildren

	for i := 0; i < numChildren; i++ {
		ageKey := ChildKey(i, "age")
		if age, ok := toInt(out[ageKey]); ok {
			out[ageKey] = age
		} else {
			out[ageKey] = 10
		}

		gradeKey := ChildKey(i, "grade")
		grade, _ := toString(out[gradeKey])
		out[gradeKey] = string(ParseGrade(grade))

		for _, suffix := range []string{"interests", "goals"} {
			key := ChildKey(i, suffix)
			s, _ := toString(out[key])
			out[key] = s
		}
	}

	return out
}

// DefaultRecord is the empty-but-valid record returned when a user has no
// stored row yet (or the storage call failed and the adapter fails open).
func DefaultRecord() Fields {
	return SanitizeForRead(Fields{})
}
