package records

// Closed enumerations for the record's string-valued fields. Stored values
// are the original product's Chinese labels; they are part of the schema
// contract with existing rows. Each Parse* returns the documented default
// when the input is not a member of the option set, so invalid or missing
// stored values are repaired once at the storage boundary instead of being
// re-checked on every read path.

type RiskLevel string

const (
	RiskConservative RiskLevel = "保守"
	RiskPrudent      RiskLevel = "稳健"
	RiskBalanced     RiskLevel = "平衡"
	RiskEnterprising RiskLevel = "进取"
	RiskAggressive   RiskLevel = "激进"
)

// DefaultRiskLevel is used when a stored risk level is missing or invalid.
const DefaultRiskLevel = RiskBalanced

func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskConservative, RiskPrudent, RiskBalanced, RiskEnterprising, RiskAggressive:
		return RiskLevel(s)
	}
	return DefaultRiskLevel
}

type ExerciseFreq string

const (
	ExerciseNever   ExerciseFreq = "从不"
	ExerciseRarely  ExerciseFreq = "偶尔(每月1-2次)"
	ExerciseWeekly  ExerciseFreq = "每周1-2次"
	ExerciseRegular ExerciseFreq = "每周3-4次"
	ExerciseDaily   ExerciseFreq = "每天"
)

const DefaultExerciseFreq = ExerciseRegular

func ParseExerciseFreq(s string) ExerciseFreq {
	switch ExerciseFreq(s) {
	case ExerciseNever, ExerciseRarely, ExerciseWeekly, ExerciseRegular, ExerciseDaily:
		return ExerciseFreq(s)
	}
	return DefaultExerciseFreq
}

type DrinkLevel string

const (
	DrinkNever     DrinkLevel = "不饮酒"
	DrinkSometimes DrinkLevel = "偶尔"
	DrinkOften     DrinkLevel = "经常"
)

const DefaultDrinkLevel = DrinkSometimes

func ParseDrinkLevel(s string) DrinkLevel {
	switch DrinkLevel(s) {
	case DrinkNever, DrinkSometimes, DrinkOften:
		return DrinkLevel(s)
	}
	return DefaultDrinkLevel
}

type Grade string

const (
	GradeKindergarten Grade = "幼儿园"
	GradePrimary      Grade = "小学"
	GradeMiddle       Grade = "初中"
	GradeHigh         Grade = "高中"
	GradeUniversity   Grade = "大学"
	GradeOther        Grade = "其他"
)

const DefaultGrade = GradePrimary

func ParseGrade(s string) Grade {
	switch Grade(s) {
	case GradeKindergarten, GradePrimary, GradeMiddle, GradeHigh, GradeUniversity, GradeOther:
		return Grade(s)
	}
	return DefaultGrade
}

type LifeStage string

const (
	StageLearning   LifeStage = "学习成长期"
	StageCareer     LifeStage = "事业发展期"
	StageFamily     LifeStage = "家庭稳定期"
	StageWealth     LifeStage = "财富积累期"
	StageRetirement LifeStage = "退休规划期"
)

const DefaultLifeStage = StageCareer

func ParseLifeStage(s string) LifeStage {
	switch LifeStage(s) {
	case StageLearning, StageCareer, StageFamily, StageWealth, StageRetirement:
		return LifeStage(s)
	}
	return DefaultLifeStage
}

type Gender string

const (
	GenderMale   Gender = "男"
	GenderFemale Gender = "女"
	GenderOther  Gender = "其他"
)

const DefaultGender = GenderMale

func ParseGender(s string) Gender {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s)
	}
	return DefaultGender
}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "未婚"
	MaritalMarried  MaritalStatus = "已婚"
	MaritalDivorced MaritalStatus = "离异"
	MaritalWidowed  MaritalStatus = "丧偶"
)

const DefaultMaritalStatus = MaritalMarried

func ParseMaritalStatus(s string) MaritalStatus {
	switch MaritalStatus(s) {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return MaritalStatus(s)
	}
	return DefaultMaritalStatus
}

// Priorities is the fixed option set for the multi-select priorities field.
var Priorities = []string{"事业发展", "家庭和谐", "健康长寿", "财富积累", "个人成长", "社会贡献"}

func ValidPriority(s string) bool {
	for _, p := range Priorities {
		if p == s {
			return true
		}
	}
	return false
}
