package service

import (
	"fmt"
	"math"

	"riskcompass/internal/model"
	"riskcompass/internal/risk"
)

// changeTolerance is the score difference treated as "no change"
const changeTolerance = 0.005

// Compare describes how current moved against the previous assessment
func Compare(previous *model.Questionnaire, current *risk.Profile) model.Comparison {
	if previous == nil || previous.RiskProfile == nil {
		return model.Comparison{
			Message: "This is your first assessment. We will track your progress from now on!",
		}
	}

	prevScore := previous.RiskProfile.OverallScore
	diff := current.OverallScore - prevScore
	pct := int(math.Abs(math.Floor(diff*100 + 0.5)))

	c := model.Comparison{PreviousScore: &prevScore, Difference: &diff}
	switch {
	case diff < -changeTolerance:
		c.Message = fmt.Sprintf("Great progress! Your overall risk has decreased by approximately %d%% since your last assessment.", pct)
	case diff > changeTolerance:
		c.Message = fmt.Sprintf("Your overall risk has increased by approximately %d%%. Review the suggestions to identify areas for improvement.", pct)
	default:
		c.Message = "Your overall risk profile has remained stable. Continue executing your plan and reassess soon."
	}
	return c
}
