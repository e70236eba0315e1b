// Package records implements the user-record pipeline: the app↔storage
// field mapper, the write normalizer and read sanitizer, typed form
// coercion, and the Postgres-backed store adapter.
package records

import "fmt"

// Fields is a loosely-typed bag of record fields keyed by field name.
// It is the unit of exchange between forms, the normalizer, the mapper and
// the store adapter.
type Fields map[string]any

// Clone returns a shallow copy. Normalization never mutates its input.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// MaxChildren bounds the per-child field family (child_0_* .. child_9_*).
const MaxChildren = 10

// ChildKey builds a per-child field name, e.g. ChildKey(2, "grade") ==
// "child_2_grade".
func ChildKey(i int, suffix string) string {
	return fmt.Sprintf("child_%d_%s", i, suffix)
}

// SuggestionFields returns the cached-advice field pair for a category:
// the suggestion text key and the generation-date key.
func SuggestionFields(category string) (textKey, dateKey string) {
	return fmt.Sprintf("ai_%s_suggestion", category), fmt.Sprintf("last_ai_%s_date", category)
}

// fieldToColumn renames application field names to storage column names.
// Only divergent names appear here; everything else passes through
// unchanged. Centralizing the table keeps the two vocabularies from
// drifting silently.
var fieldToColumn = map[string]string{
	"height": "height_cm",
	"weight": "weight_kg",
	"smoke":  "is_smoker",
	"drink":  "drink_level",
	"name":   "full_name",
	"phone":  "phone_number",
}

var columnToField = func() map[string]string {
	m := make(map[string]string, len(fieldToColumn))
	for k, v := range fieldToColumn {
		m[v] = k
	}
	return m
}()

// appFieldNames is the full application-facing field vocabulary. The
// storage-writable allow-list is derived from it through fieldToColumn.
var appFieldNames = func() []string {
	keys := []string{
		// financial
		"total_assets", "stock_percentage", "bond_percentage", "property_percentage", "cash_percentage", "risk_level",
		// health
		"age", "height", "weight", "blood_pressure", "exercise_freq", "sleep_hours", "smoke", "drink",
		"health_goals", "bmi", "health_score",
		// education
		"num_children", "education_budget", "education_plan", "education_progress",
		// life planning
		"life_stage", "short_term_goals", "medium_term_goals", "long_term_goals", "life_vision", "priorities",
		"life_score", "wealth_score", "family_score", "career_score", "growth_score",
		// profile
		"name", "email", "phone", "birth_date", "gender", "occupation", "city", "marital_status",
		// notification preferences
		"daily_news", "investment_alert", "health_reminder", "education_update",
	}
	for i := 0; i < MaxChildren; i++ {
		for _, suffix := range []string{"age", "grade", "interests", "goals"} {
			keys = append(keys, ChildKey(i, suffix))
		}
	}
	for _, cat := range []string{"life", "investment", "health", "education"} {
		textKey, dateKey := SuggestionFields(cat)
		keys = append(keys, textKey, dateKey)
	}
	return keys
}()

// writableColumns is the storage-side allow-list: the storage column for
// every known application field.
var writableColumns = func() map[string]struct{} {
	m := make(map[string]struct{}, len(appFieldNames))
	for _, k := range appFieldNames {
		col := k
		if mapped, ok := fieldToColumn[k]; ok {
			col = mapped
		}
		m[col] = struct{}{}
	}
	return m
}()

// bookkeepingColumns are always writable regardless of the allow-list.
var bookkeepingColumns = map[string]struct{}{
	"user_id":    {},
	"created_at": {},
	"updated_at": {},
}

// ToStorage renames application field names to storage column names.
// Unmapped keys pass through unchanged. Pure function.
func ToStorage(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		if col, ok := fieldToColumn[k]; ok {
			out[col] = v
		} else {
			out[k] = v
		}
	}
	return out
}

// FromStorage applies the inverse rename, producing application field names.
func FromStorage(row Fields) Fields {
	out := make(Fields, len(row))
	for k, v := range row {
		if field, ok := columnToField[k]; ok {
			out[field] = v
		} else {
			out[k] = v
		}
	}
	return out
}

// FilterWritable drops every key that is neither in the storage allow-list
// nor a bookkeeping column, preventing unrecognized keys from reaching
// storage.
func FilterWritable(row Fields) Fields {
	out := make(Fields, len(row))
	for k, v := range row {
		if _, ok := writableColumns[k]; ok {
			out[k] = v
			continue
		}
		if _, ok := bookkeepingColumns[k]; ok {
			out[k] = v
		}
	}
	return out
}
