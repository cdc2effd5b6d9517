package dto

import "time"

type ConversationRequest struct {
	SessionId string `json:"session_id"` // empty starts a new session
	Message   string `json:"message" validate:"required"`
}

type ThemeView struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Topics      []string `json:"topics"`
	Answered    int      `json:"answered"`
}

type QAView struct {
	Theme    string `json:"theme"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type PendingQuestionView struct {
	Theme    string `json:"theme"`
	Topic    string `json:"topic"`
	Question string `json:"question"`
}

// ConversationResponse mirrors the session state after each turn so the
// client never has to track it locally.
type ConversationResponse struct {
	SessionId      string               `json:"session_id"`
	AssistantReply string               `json:"assistant_reply"`
	Stage          string               `json:"stage"`
	CurrentTheme   string               `json:"current_theme,omitempty"`
	Themes         []ThemeView          `json:"themes"`
	Pending        *PendingQuestionView `json:"pending_question,omitempty"`
	QA             []QAView             `json:"qa"`
	Options        []string             `json:"options"`
	Rejected       bool                 `json:"rejected,omitempty"`
}

type SessionViewResponse struct {
	SessionId    string               `json:"session_id"`
	Stage        string               `json:"stage"`
	CurrentTheme string               `json:"current_theme,omitempty"`
	Themes       []ThemeView          `json:"themes"`
	Pending      *PendingQuestionView `json:"pending_question,omitempty"`
	QA           []QAView             `json:"qa"`
	Options      []string             `json:"options"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}
