package events

import "time"

const (
	TypePlanSessionStarted = "PLAN_SESSION_STARTED"
	TypePlanThemeChosen    = "PLAN_THEME_CHOSEN"
	TypePlanExported       = "PLAN_EXPORTED"
)

func NewPlanSessionStarted(sessionId string) Event {
	return BaseEvent{
		Type: TypePlanSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionId,
		},
		OccurredAt: time.Now(),
	}
}

func NewPlanThemeChosen(sessionId, theme string) Event {
	return BaseEvent{
		Type: TypePlanThemeChosen,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"theme":      theme,
		},
		OccurredAt: time.Now(),
	}
}

func NewPlanExported(sessionId string, themeCount, answerCount int) Event {
	return BaseEvent{
		Type: TypePlanExported,
		Data: map[string]interface{}{
			"session_id":   sessionId,
			"theme_count":  themeCount,
			"answer_count": answerCount,
		},
		OccurredAt: time.Now(),
	}
}
