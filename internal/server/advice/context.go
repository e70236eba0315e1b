package advice

import (
	"fmt"
	"strings"

	"github.com/qianzhu/lifeplanner/internal/server/records"
)

// Prompt-context builders for each advice category. Each takes a sanitized
// record and renders the lines the model sees; daily digest items are woven
// in where the category has one.

// Category names double as cache keys in the record row.
const (
	CategoryLife       = "life"
	CategoryInvestment = "investment"
	CategoryHealth     = "health"
	CategoryEducation  = "education"
)

func DashboardContext(f records.Fields) string {
	return joinLines(
		fmt.Sprintf("用户资产：%v万元", f["total_assets"]),
		"健康状况：良好",
		"教育目标：未设定",
		fmt.Sprintf("人生阶段：%v", orDefault(f["life_stage"], "事业发展期")),
	)
}

func InvestmentContext(f records.Fields, financeNews string) string {
	return joinLines(
		fmt.Sprintf("总资产：%v万元", f["total_assets"]),
		fmt.Sprintf("股票占比：%v%%", f["stock_percentage"]),
		fmt.Sprintf("风险偏好：%v", f["risk_level"]),
		fmt.Sprintf("今日金融新闻：%s", financeNews),
	)
}

func HealthContext(f records.Fields, healthTips string) string {
	return joinLines(
		fmt.Sprintf("年龄：%s岁", orValue(f["age"], "35")),
		fmt.Sprintf("BMI：%s", orValue(f["bmi"], "23")),
		fmt.Sprintf("运动频率：%v", f["exercise_freq"]),
		fmt.Sprintf("睡眠时长：%s小时", orValue(f["sleep_hours"], "7")),
		fmt.Sprintf("健康目标：%v", orDefault(f["health_goals"], "保持健康")),
		fmt.Sprintf("今日健康贴士：%s", healthTips),
	)
}

func EducationContext(f records.Fields, educationInfo string) string {
	numChildren, _ := f["num_children"].(int)

	lines := []string{fmt.Sprintf("子女数量：%d", numChildren)}
	for i := 0; i < numChildren; i++ {
		lines = append(lines, fmt.Sprintf(
			"孩子%d：%v岁，%v，兴趣：%v，目标：%v",
			i+1,
			f[records.ChildKey(i, "age")],
			orDefault(f[records.ChildKey(i, "grade")], "未知"),
			orDefault(f[records.ChildKey(i, "interests")], "未知"),
			orDefault(f[records.ChildKey(i, "goals")], "未知"),
		))
	}
	lines = append(lines,
		fmt.Sprintf("教育预算：%s万元/年", orValue(f["education_budget"], "0")),
		fmt.Sprintf("教育规划：%v", orDefault(f["education_plan"], "未设定")),
		fmt.Sprintf("今日教育资讯：%s", educationInfo),
	)
	return joinLines(lines...)
}

func LifePlanContext(f records.Fields) string {
	priorities, _ := f["priorities"].([]string)
	return joinLines(
		fmt.Sprintf("人生阶段：%v", orDefault(f["life_stage"], "事业发展期")),
		fmt.Sprintf("短期目标：%v", orDefault(f["short_term_goals"], "未设定")),
		fmt.Sprintf("中期目标：%v", orDefault(f["medium_term_goals"], "未设定")),
		fmt.Sprintf("长期目标：%v", orDefault(f["long_term_goals"], "未设定")),
		fmt.Sprintf("人生愿景：%v", orDefault(f["life_vision"], "未设定")),
		fmt.Sprintf("优先级：%s", strings.Join(priorities, "、")),
		fmt.Sprintf("财富状况：%v万元", f["total_assets"]),
		fmt.Sprintf("健康评分：%v/100", f["health_score"]),
		fmt.Sprintf("教育进度：%v%%", f["education_progress"]),
	)
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

func orDefault(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// orValue renders a numeric-ish value, substituting the fallback for fields
// never stored.
func orValue(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	return fmt.Sprintf("%v", v)
}
