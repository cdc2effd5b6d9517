package plan

import (
	"time"

	"github.com/google/uuid"
)

// Stage is the current phase of the guided conversation.
type Stage string

const (
	StageWelcome     Stage = "welcome"
	StageChooseTheme Stage = "choose_theme"
	StageChooseTopic Stage = "choose_topic"
	StageAnswering   Stage = "answering"
	StageReview      Stage = "review"
	StageExported    Stage = "exported"
)

// Hard selection limits. The 7th theme / 5th topic is rejected, not the 6th/4th.
const (
	MaxThemes         = 6
	MaxTopicsPerTheme = 4
)

// Theme is a top-level category of the birth plan (e.g. pijnbestrijding).
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QAEntry is one recorded question/answer pair tied to a theme.
// Identity for edits is the (theme, question) pair.
type QAEntry struct {
	Theme    string `json:"theme"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PendingQuestion tracks the question currently awaiting a free-text answer.
type PendingQuestion struct {
	Theme    string `json:"theme"`
	Topic    string `json:"topic"`
	Question string `json:"question"`
}

// Session is the unit of conversation state. All transitions operate on a
// deep copy; callers persist the returned value.
type Session struct {
	ID            string              `json:"id"`
	Stage         Stage               `json:"stage"`
	Themes        []Theme             `json:"themes"`
	CurrentTheme  string              `json:"current_theme"`
	TopicsByTheme map[string][]string `json:"topics_by_theme"`
	// TopicCursor is, per theme, the index of the next chosen topic that
	// still needs a question asked.
	TopicCursor map[string]int   `json:"topic_cursor"`
	QA          []QAEntry        `json:"qa"`
	Pending     *PendingQuestion `json:"pending"`
	Version     int64            `json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewSession creates a fresh session in the welcome stage.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:            uuid.New().String(),
		Stage:         StageWelcome,
		Themes:        []Theme{},
		TopicsByTheme: map[string][]string{},
		TopicCursor:   map[string]int{},
		QA:            []QAEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Themes = append([]Theme(nil), s.Themes...)
	cp.QA = append([]QAEntry(nil), s.QA...)
	cp.TopicsByTheme = make(map[string][]string, len(s.TopicsByTheme))
	for k, v := range s.TopicsByTheme {
		cp.TopicsByTheme[k] = append([]string(nil), v...)
	}
	cp.TopicCursor = make(map[string]int, len(s.TopicCursor))
	for k, v := range s.TopicCursor {
		cp.TopicCursor[k] = v
	}
	if s.Pending != nil {
		p := *s.Pending
		cp.Pending = &p
	}
	return &cp
}

// HasTheme reports whether a theme with the given name was chosen.
// Theme names are matched case-insensitively.
func (s *Session) HasTheme(name string) bool {
	return s.findTheme(name) >= 0
}

func (s *Session) findTheme(name string) int {
	for i, t := range s.Themes {
		if equalFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// ThemeTopics returns the chosen topics of a theme in selection order.
func (s *Session) ThemeTopics(name string) []string {
	for k, v := range s.TopicsByTheme {
		if equalFold(k, name) {
			return v
		}
	}
	return nil
}

// HasTopic reports whether a topic was already chosen under a theme.
func (s *Session) HasTopic(theme, topic string) bool {
	for _, t := range s.ThemeTopics(theme) {
		if equalFold(t, topic) {
			return true
		}
	}
	return false
}

// AnsweredCount returns the number of recorded answers for a theme.
func (s *Session) AnsweredCount(theme string) int {
	n := 0
	for _, qa := range s.QA {
		if equalFold(qa.Theme, theme) {
			n++
		}
	}
	return n
}

// allThemesAnswered reports whether every chosen theme has at least one
// recorded answer. An empty theme list counts as not answered.
func (s *Session) allThemesAnswered() bool {
	if len(s.Themes) == 0 {
		return false
	}
	for _, t := range s.Themes {
		if s.AnsweredCount(t.Name) == 0 {
			return false
		}
	}
	return true
}
