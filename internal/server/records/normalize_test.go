package records

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocation(f Fields) [4]int {
	var out [4]int
	for i, k := range allocationFieldNames {
		n, ok := toInt(f[k])
		if !ok {
			n = -1
		}
		out[i] = n
	}
	return out
}

func allocationInput(stock, bond, property, cash any) Fields {
	return Fields{
		"stock_percentage":    stock,
		"bond_percentage":     bond,
		"property_percentage": property,
		"cash_percentage":     cash,
	}
}

func TestNormalizeForWrite_Allocation(t *testing.T) {
	tests := []struct {
		name string
		in   Fields
		want [4]int
	}{
		{"all zero falls back to default split", allocationInput(0, 0, 0, 0), [4]int{30, 20, 35, 15}},
		{"already normalized is idempotent", allocationInput(30, 20, 35, 15), [4]int{30, 20, 35, 15}},
		{"sum 132 rescales to 25 each", allocationInput(33, 33, 33, 33), [4]int{25, 25, 25, 25}},
		{"sum 4 rescales to 25 each", allocationInput(1, 1, 1, 1), [4]int{25, 25, 25, 25}},
		{"positive drift goes to first largest original", allocationInput(1, 1, 1, 0), [4]int{34, 33, 33, 0}},
		{"negative drift goes to largest original", allocationInput(1, 1, 1, 3), [4]int{17, 17, 17, 49}},
		{"negative shares treated as zero", allocationInput(-10, 50, 50, -3), [4]int{0, 50, 50, 0}},
		{"missing keys treated as zero", Fields{"stock_percentage": 40}, [4]int{100, 0, 0, 0}},
		{"non-numeric shares degrade to default split", allocationInput("x", "y", nil, struct{}{}), [4]int{30, 20, 35, 15}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := allocation(NormalizeForWrite(tc.in))
			assert.Equal(t, tc.want, got)

			sum := 0
			for _, v := range got {
				require.GreaterOrEqual(t, v, 0)
				sum += v
			}
			assert.Equal(t, 100, sum)
		})
	}
}

func TestNormalizeForWrite_AllocationSumProperty(t *testing.T) {
	// For arbitrary inputs the outputs are non-negative ints summing to 100.
	inputs := [][4]int{
		{7, 11, 13, 17}, {99, 1, 0, 0}, {250, 250, 250, 250},
		{1, 2, 3, 4}, {97, 1, 1, 1}, {0, 0, 0, 1}, {60, 55, 0, 0},
	}
	for _, in := range inputs {
		out := allocation(NormalizeForWrite(allocationInput(in[0], in[1], in[2], in[3])))
		sum := 0
		for _, v := range out {
			require.GreaterOrEqual(t, v, 0, "input %v produced %v", in, out)
			sum += v
		}
		require.Equal(t, 100, sum, "input %v produced %v", in, out)
	}
}

func TestNormalizeForWrite_AllocationUntouchedWhenAbsent(t *testing.T) {
	out := NormalizeForWrite(Fields{"total_assets": 5})
	for _, k := range allocationFieldNames {
		_, present := out[k]
		assert.False(t, present, "key %s should stay absent", k)
	}
}

func TestNormalizeForWrite_Money(t *testing.T) {
	out := NormalizeForWrite(Fields{"total_assets": 12.5, "education_budget": "abc"})
	assert.True(t, out["total_assets"].(decimal.Decimal).Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, out["education_budget"].(decimal.Decimal).IsZero())

	out = NormalizeForWrite(Fields{"total_assets": -3})
	assert.True(t, out["total_assets"].(decimal.Decimal).IsZero())

	out = NormalizeForWrite(Fields{})
	_, present := out["total_assets"]
	assert.False(t, present)
}

func TestNormalizeForWrite_Priorities(t *testing.T) {
	out := NormalizeForWrite(Fields{"priorities": []any{"家庭和谐", 42, "健康长寿"}})
	assert.Equal(t, []string{"家庭和谐", "健康长寿"}, out["priorities"])

	out = NormalizeForWrite(Fields{"priorities": "not-a-list"})
	assert.Equal(t, []string{}, out["priorities"])
}

func TestNormalizeForWrite_Booleans(t *testing.T) {
	out := NormalizeForWrite(Fields{
		"smoke":            "true",
		"daily_news":       1,
		"investment_alert": "是",
		"health_reminder":  "nope",
		"education_update": false,
	})
	assert.Equal(t, true, out["smoke"])
	assert.Equal(t, true, out["daily_news"])
	assert.Equal(t, true, out["investment_alert"])
	assert.Equal(t, false, out["health_reminder"])
	assert.Equal(t, false, out["education_update"])
}

func TestNormalizeForWrite_DoesNotMutateInput(t *testing.T) {
	in := allocationInput(33, 33, 33, 33)
	_ = NormalizeForWrite(in)
	assert.Equal(t, 33, in["stock_percentage"])
}

func TestSanitizeForRead_EmptyRowYieldsDefaults(t *testing.T) {
	out := SanitizeForRead(Fields{})

	assert.True(t, out["total_assets"].(decimal.Decimal).IsZero())
	for _, k := range allocationFieldNames {
		assert.Equal(t, 0, out[k])
	}
	assert.Equal(t, 0, out["health_score"])
	assert.Equal(t, 0, out["education_progress"])
	assert.Equal(t, 0, out["life_score"])
	assert.Equal(t, "平衡", out["risk_level"])
	assert.Equal(t, "每周3-4次", out["exercise_freq"])
	assert.Equal(t, "偶尔", out["drink"])
	assert.Equal(t, "", out["health_goals"])
	assert.Equal(t, "", out["education_plan"])
	assert.Equal(t, 0, out["num_children"])
	assert.Equal(t, []string{}, out["priorities"])
}

func TestSanitizeForRead_BackfillsChildren(t *testing.T) {
	out := SanitizeForRead(Fields{
		"num_children":  int64(2),
		"child_0_grade": "初中",
		"child_0_age":   int64(13),
	})

	assert.Equal(t, 2, out["num_children"])
	assert.Equal(t, 13, out["child_0_age"])
	assert.Equal(t, "初中", out["child_0_grade"])
	assert.Equal(t, "", out["child_0_interests"])
	assert.Equal(t, "", out["child_0_goals"])

	// second child fully defaulted
	assert.Equal(t, 10, out["child_1_age"])
	assert.Equal(t, "小学", out["child_1_grade"])
	assert.Equal(t, "", out["child_1_interests"])
	assert.Equal(t, "", out["child_1_goals"])

	// indexes past num_children are not invented
	_, present := out["child_2_age"]
	assert.False(t, present)
}

func TestSanitizeForRead_RepairsInvalidValues(t *testing.T) {
	out := SanitizeForRead(Fields{
		"total_assets":     "-50",
		"stock_percentage": nil,
		"risk_level":       "yolo",
		"exercise_freq":    nil,
		"drink":            "每天八杯",
		"num_children":     -4,
		"life_score":       "88",
	})

	assert.True(t, out["total_assets"].(decimal.Decimal).IsZero())
	assert.Equal(t, 0, out["stock_percentage"])
	assert.Equal(t, "平衡", out["risk_level"])
	assert.Equal(t, "每周3-4次", out["exercise_freq"])
	assert.Equal(t, "偶尔", out["drink"])
	assert.Equal(t, 0, out["num_children"])
	assert.Equal(t, 88, out["life_score"])
}
