package plan

// ActionKind tags the closed set of actions the interpreter can produce.
type ActionKind string

const (
	ActionGreet          ActionKind = "GREET"
	ActionSelectTheme    ActionKind = "SELECT_THEME"
	ActionRemoveTheme    ActionKind = "REMOVE_THEME"
	ActionSelectTopic    ActionKind = "SELECT_TOPIC"
	ActionEditAnswer     ActionKind = "EDIT_ANSWER"
	ActionFreeTextAnswer ActionKind = "FREE_TEXT_ANSWER"
	ActionAdvanceReview  ActionKind = "ADVANCE_REVIEW"
)

// Action is a transient, typed command produced fresh per request by the
// interpreter. It is never persisted.
type Action struct {
	Kind     ActionKind
	Theme    string
	Topic    string
	Question string
	Answer   string
	Text     string
}

func Greet() Action { return Action{Kind: ActionGreet} }

func SelectTheme(name string) Action {
	return Action{Kind: ActionSelectTheme, Theme: name}
}

func RemoveTheme(name string) Action {
	return Action{Kind: ActionRemoveTheme, Theme: name}
}

func SelectTopic(theme, topic string) Action {
	return Action{Kind: ActionSelectTopic, Theme: theme, Topic: topic}
}

func EditAnswer(question, answer string) Action {
	return Action{Kind: ActionEditAnswer, Question: question, Answer: answer}
}

func FreeTextAnswer(text string) Action {
	return Action{Kind: ActionFreeTextAnswer, Text: text}
}

func AdvanceReview() Action { return Action{Kind: ActionAdvanceReview} }
