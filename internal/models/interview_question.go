package models

import "time"

// QuestionCategory groups the interview question bank.
type QuestionCategory string

const (
	CategoryBehavioral  QuestionCategory = "BEHAVIORAL"
	CategoryTechnical   QuestionCategory = "TECHNICAL"
	CategorySituational QuestionCategory = "SITUATIONAL"
	CategoryGeneral     QuestionCategory = "GENERAL"
)

var QuestionCategories = []QuestionCategory{
	CategoryBehavioral,
	CategoryTechnical,
	CategorySituational,
	CategoryGeneral,
}

func (c QuestionCategory) Valid() bool {
	for _, v := range QuestionCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Label is the display name used when grouping questions.
func (c QuestionCategory) Label() string {
	switch c {
	case CategoryBehavioral:
		return "Behavioral"
	case CategoryTechnical:
		return "Technical"
	case CategorySituational:
		return "Situational"
	case CategoryGeneral:
		return "General"
	}
	return string(c)
}

type InterviewQuestion struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	QuestionText string           `gorm:"type:text;not null;uniqueIndex" json:"question_text"`
	Category     QuestionCategory `gorm:"size:20;not null;default:GENERAL;index" json:"category"`
	AnswerTips   string           `gorm:"type:text" json:"answer_tips"`
	Difficulty   string           `gorm:"size:20" json:"difficulty"`
	CreatedAt    time.Time        `json:"created_at"`
}
