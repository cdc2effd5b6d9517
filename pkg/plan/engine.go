package plan

import "time"

// Result is the outcome of applying an action to a session. On rejection the
// returned session is the untouched input; partial state is never exposed.
type Result struct {
	Session *Session
	// Reply is the assistant utterance for this turn. When NeedsQuestion is
	// set it holds the fallback question text; the orchestrator replaces it
	// with generated text when the generator succeeds.
	Reply         string
	NeedsQuestion bool
	Rejected      bool
	Err           error
}

// Engine applies typed actions to session values. It is the sole authority on
// transition legality; the interpreter never validates existence itself.
type Engine struct {
	catalog *Catalog
}

func NewEngine(catalog *Catalog) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{catalog: catalog}
}

func (e *Engine) Catalog() *Catalog { return e.catalog }

// Apply computes the next session state for an action. Pure: the input
// session is never mutated.
func (e *Engine) Apply(s *Session, action Action) Result {
	switch action.Kind {
	case ActionGreet:
		return e.applyGreet(s)
	case ActionSelectTheme:
		return e.applySelectTheme(s, action.Theme)
	case ActionRemoveTheme:
		return e.applyRemoveTheme(s, action.Theme)
	case ActionSelectTopic:
		return e.applySelectTopic(s, action.Theme, action.Topic)
	case ActionFreeTextAnswer:
		return e.applyAnswer(s, action.Text)
	case ActionEditAnswer:
		return e.applyEdit(s, action.Question, action.Answer)
	case ActionAdvanceReview:
		return e.applyAdvanceReview(s)
	default:
		return reject(s, ErrStageUnsupported, msgRejectStage)
	}
}

func (e *Engine) applyGreet(s *Session) Result {
	if s.Stage != StageWelcome {
		// A reload mid-conversation re-emits the current stage, never errors.
		return accepted(s.Clone(), e.stageReply(s))
	}
	next := s.Clone()
	next.Stage = StageChooseTheme
	touch(next)
	return accepted(next, msgWelcome)
}

func (e *Engine) applySelectTheme(s *Session, name string) Result {
	if s.Stage != StageChooseTheme && s.Stage != StageReview {
		return reject(s, ErrStageUnsupported, msgRejectStage)
	}
	if s.HasTheme(name) {
		return reject(s, ErrDuplicateTheme, fmtMsg(msgRejectDupTheme, name))
	}
	if len(s.Themes) >= MaxThemes {
		return reject(s, ErrThemeLimit, msgRejectThemeLimit)
	}
	next := s.Clone()
	next.Themes = append(next.Themes, Theme{Name: name, Description: e.catalog.Describe(name)})
	next.TopicsByTheme[name] = []string{}
	next.TopicCursor[name] = 0
	next.CurrentTheme = name
	next.Stage = StageChooseTopic
	touch(next)
	return accepted(next, fmtMsg(msgThemeAdded, name))
}

func (e *Engine) applyRemoveTheme(s *Session, name string) Result {
	idx := s.findTheme(name)
	if idx < 0 {
		return reject(s, ErrUnknownTheme, fmtMsg(msgRejectUnknownTheme, name))
	}
	next := s.Clone()
	canonical := next.Themes[idx].Name
	next.Themes = append(next.Themes[:idx], next.Themes[idx+1:]...)

	// Cascade: the removed name must not survive in topics, cursors or qa.
	for k := range next.TopicsByTheme {
		if equalFold(k, canonical) {
			delete(next.TopicsByTheme, k)
		}
	}
	for k := range next.TopicCursor {
		if equalFold(k, canonical) {
			delete(next.TopicCursor, k)
		}
	}
	kept := next.QA[:0]
	for _, qa := range next.QA {
		if !equalFold(qa.Theme, canonical) {
			kept = append(kept, qa)
		}
	}
	next.QA = kept
	if next.Pending != nil && equalFold(next.Pending.Theme, canonical) {
		next.Pending = nil
	}

	if equalFold(next.CurrentTheme, canonical) {
		next.CurrentTheme = ""
		next.Stage = StageChooseTheme
	}
	if next.Stage != StageWelcome && (len(next.Themes) == 0 || (next.Stage == StageReview && len(next.QA) == 0)) {
		next.Stage = StageChooseTheme
	}
	touch(next)
	return accepted(next, fmtMsg(msgThemeRemoved, canonical))
}

func (e *Engine) applySelectTopic(s *Session, theme, topic string) Result {
	if s.Stage != StageChooseTopic && s.Stage != StageAnswering {
		return reject(s, ErrStageUnsupported, msgRejectStage)
	}
	idx := s.findTheme(theme)
	if idx < 0 {
		return reject(s, ErrUnknownTheme, fmtMsg(msgRejectUnknownTheme, theme))
	}
	canonical := s.Themes[idx].Name
	if !equalFold(canonical, s.CurrentTheme) {
		return reject(s, ErrThemeMismatch, fmtMsg(msgRejectWrongTheme, canonical))
	}
	if s.HasTopic(canonical, topic) {
		return reject(s, ErrDuplicateTopic, fmtMsg(msgRejectDupTopic, topic))
	}
	if len(s.ThemeTopics(canonical)) >= MaxTopicsPerTheme {
		return reject(s, ErrTopicLimit, msgRejectTopicLimit)
	}

	next := s.Clone()
	key := topicsKey(next, canonical)
	next.TopicsByTheme[key] = append(next.TopicsByTheme[key], topic)

	reply := fmtMsg(msgTopicAdded, topic, canonical)
	needsQuestion := false
	// A selection while no question is open starts (or resumes) the intake.
	if next.Pending == nil {
		next.Stage = StageAnswering
		reply = e.askNext(next, key)
		needsQuestion = true
	}
	touch(next)
	res := accepted(next, reply)
	res.NeedsQuestion = needsQuestion
	return res
}

func (e *Engine) applyAnswer(s *Session, text string) Result {
	if s.Stage != StageAnswering || s.Pending == nil {
		return reject(s, ErrNoPendingAnswer, msgRejectNoQuestion)
	}
	next := s.Clone()
	next.QA = append(next.QA, QAEntry{
		Theme:    next.Pending.Theme,
		Question: next.Pending.Question,
		Answer:   text,
	})
	next.Pending = nil

	key := topicsKey(next, next.CurrentTheme)
	if next.TopicCursor[key] < len(next.TopicsByTheme[key]) {
		reply := e.askNext(next, key)
		touch(next)
		res := accepted(next, reply)
		res.NeedsQuestion = true
		return res
	}

	// Theme intake complete. Review opens once every chosen theme has at
	// least one recorded answer; from review the user can still add themes.
	finished := next.CurrentTheme
	next.CurrentTheme = ""
	if next.allThemesAnswered() {
		next.Stage = StageReview
		touch(next)
		return accepted(next, msgReview)
	}
	next.Stage = StageChooseTheme
	touch(next)
	return accepted(next, fmtMsg(msgThemeDone, finished))
}

func (e *Engine) applyEdit(s *Session, question, answer string) Result {
	if s.Stage != StageAnswering && s.Stage != StageReview {
		return reject(s, ErrStageUnsupported, msgRejectStage)
	}
	for i, qa := range s.QA {
		if equalFold(qa.Question, question) {
			next := s.Clone()
			next.QA[i].Answer = answer
			touch(next)
			return accepted(next, fmtMsg(msgAnswerEdited, qa.Question))
		}
	}
	return reject(s, ErrUnknownQuestion, fmtMsg(msgRejectUnknownQA, question))
}

func (e *Engine) applyAdvanceReview(s *Session) Result {
	if s.Stage != StageReview {
		return reject(s, ErrStageUnsupported, msgRejectStage)
	}
	if len(s.QA) == 0 {
		return reject(s, ErrNothingToExport, msgRejectEmptyExport)
	}
	next := s.Clone()
	next.Stage = StageExported
	touch(next)
	return accepted(next, msgExported)
}

// askNext opens the question for the topic at the theme's cursor and advances
// the cursor. The question text is the fallback template; generation may
// overwrite it via SetPendingQuestion.
func (e *Engine) askNext(s *Session, themeKey string) string {
	topic := s.TopicsByTheme[themeKey][s.TopicCursor[themeKey]]
	s.TopicCursor[themeKey]++
	question := fmtMsg(msgFallbackQuestion, topic, themeKey)
	s.Pending = &PendingQuestion{Theme: themeKey, Topic: topic, Question: question}
	return question
}

// SetPendingQuestion replaces the open question text with generated text.
// No-op when no question is open or the text is empty.
func SetPendingQuestion(s *Session, text string) {
	if s.Pending == nil || text == "" {
		return
	}
	s.Pending.Question = text
}

// Options lists the currently selectable values for the session's stage:
// catalogue themes not yet chosen, or topics of the active theme not yet
// chosen. Empty once the relevant cap is reached.
func (e *Engine) Options(s *Session) []string {
	switch s.Stage {
	case StageWelcome, StageChooseTheme:
		if len(s.Themes) >= MaxThemes {
			return []string{}
		}
		opts := []string{}
		for _, name := range e.catalog.ThemeNames() {
			if !s.HasTheme(name) {
				opts = append(opts, name)
			}
		}
		return opts
	case StageChooseTopic, StageAnswering:
		if s.CurrentTheme == "" || len(s.ThemeTopics(s.CurrentTheme)) >= MaxTopicsPerTheme {
			return []string{}
		}
		opts := []string{}
		for _, topic := range e.catalog.TopicsFor(s.CurrentTheme) {
			if !s.HasTopic(s.CurrentTheme, topic) {
				opts = append(opts, topic)
			}
		}
		return opts
	default:
		return []string{}
	}
}

func (e *Engine) stageReply(s *Session) string {
	switch s.Stage {
	case StageChooseTheme:
		return msgChooseTheme
	case StageChooseTopic:
		return fmtMsg(msgChooseTopic, s.CurrentTheme)
	case StageAnswering:
		if s.Pending != nil {
			return s.Pending.Question
		}
		return msgChooseTheme
	case StageReview:
		return msgReview
	case StageExported:
		return msgExported
	default:
		return msgWelcome
	}
}

func topicsKey(s *Session, theme string) string {
	for k := range s.TopicsByTheme {
		if equalFold(k, theme) {
			return k
		}
	}
	return theme
}

func touch(s *Session) {
	s.UpdatedAt = time.Now()
}

func accepted(s *Session, reply string) Result {
	return Result{Session: s, Reply: reply}
}

func reject(s *Session, err error, reply string) Result {
	return Result{Session: s, Reply: reply, Rejected: true, Err: err}
}
