package models

import "time"

// DailySnapshot is the once-per-day generated digest shown on the dashboard.
// Rows are immutable after insert; Date is the calendar day in ISO form.
type DailySnapshot struct {
	Date          string    `json:"date"`
	FinanceNews   string    `json:"finance_news"`
	HealthTips    string    `json:"health_tips"`
	EducationInfo string    `json:"education_info"`
	CreatedAt     time.Time `json:"created_at"`
}
