package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, e *Engine, s *Session, a Action) *Session {
	t.Helper()
	res := e.Apply(s, a)
	require.False(t, res.Rejected, "action %s rejected: %v", a.Kind, res.Err)
	return res.Session
}

func TestGreetOpensThemeSelection(t *testing.T) {
	e := NewEngine(nil)
	s := NewSession()

	res := e.Apply(s, Greet())
	require.False(t, res.Rejected)
	assert.Equal(t, StageChooseTheme, res.Session.Stage)
	assert.Equal(t, StageWelcome, s.Stage, "input session must stay untouched")
	assert.NotEmpty(t, e.Options(res.Session))
}

func TestGreetMidConversationIsNoop(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Voeding"))

	res := e.Apply(s, Greet())
	require.False(t, res.Rejected)
	assert.Equal(t, StageChooseTopic, res.Session.Stage)
	assert.Equal(t, "Voeding", res.Session.CurrentTheme)
}

func TestThemeCapRejectsSeventh(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())

	// Complete a minimal intake per theme; review re-opens theme selection.
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		s = mustApply(t, e, s, SelectTheme(n))
		s = mustApply(t, e, s, SelectTopic(n, "Algemeen"))
		s = mustApply(t, e, s, FreeTextAnswer("antwoord voor "+n))
	}
	require.Len(t, s.Themes, MaxThemes)
	require.Equal(t, StageReview, s.Stage)

	res := e.Apply(s, SelectTheme("G"))
	assert.True(t, res.Rejected)
	assert.ErrorIs(t, res.Err, ErrThemeLimit)
	assert.Len(t, res.Session.Themes, MaxThemes)
}

func TestDuplicateThemeRejected(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Pijnbestrijding"))

	res := e.Apply(s, SelectTheme("pijnbestrijding"))
	assert.True(t, res.Rejected)
	assert.ErrorIs(t, res.Err, ErrDuplicateTheme)
}

func TestTopicCapRejectsFifth(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Pijnbestrijding"))

	topics := []string{"Epiduraal", "Lachgas", "Pethidine", "Natuurlijke technieken"}
	for _, topic := range topics {
		s = mustApply(t, e, s, SelectTopic("Pijnbestrijding", topic))
	}
	require.Len(t, s.ThemeTopics("Pijnbestrijding"), MaxTopicsPerTheme)

	res := e.Apply(s, SelectTopic("Pijnbestrijding", "Massage"))
	assert.True(t, res.Rejected)
	assert.ErrorIs(t, res.Err, ErrTopicLimit)
}

func TestFirstTopicOpensQuestion(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Pijnbestrijding"))

	res := e.Apply(s, SelectTopic("Pijnbestrijding", "Epiduraal"))
	require.False(t, res.Rejected)
	assert.Equal(t, StageAnswering, res.Session.Stage)
	assert.True(t, res.NeedsQuestion)
	require.NotNil(t, res.Session.Pending)
	assert.Equal(t, "Epiduraal", res.Session.Pending.Topic)
	assert.NotEmpty(t, res.Session.Pending.Question)
}

func TestAnswerAdvancesThroughTopicQueue(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Pijnbestrijding"))
	s = mustApply(t, e, s, SelectTopic("Pijnbestrijding", "Epiduraal"))
	s = mustApply(t, e, s, SelectTopic("Pijnbestrijding", "Lachgas"))

	res := e.Apply(s, FreeTextAnswer("Liever zo laat mogelijk."))
	require.False(t, res.Rejected)
	s = res.Session
	require.Len(t, s.QA, 1)
	assert.Equal(t, "Pijnbestrijding", s.QA[0].Theme)
	assert.True(t, res.NeedsQuestion, "second topic should open a question")
	require.NotNil(t, s.Pending)
	assert.Equal(t, "Lachgas", s.Pending.Topic)

	res = e.Apply(s, FreeTextAnswer("Wil ik graag proberen."))
	require.False(t, res.Rejected)
	s = res.Session
	assert.Len(t, s.QA, 2)
	assert.Nil(t, s.Pending)
	assert.Empty(t, s.CurrentTheme)
	assert.Equal(t, StageReview, s.Stage, "single theme fully answered goes to review")
}

func TestAddThemeFromReview(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Voeding"))
	s = mustApply(t, e, s, SelectTopic("Voeding", "Borstvoeding"))
	s = mustApply(t, e, s, FreeTextAnswer("Ja, direct na de geboorte."))
	require.Equal(t, StageReview, s.Stage)

	// Review re-opens theme selection; the new theme runs its own intake
	// before review is reachable again.
	s = mustApply(t, e, s, SelectTheme("Kraamtijd"))
	require.Equal(t, StageChooseTopic, s.Stage)
	s = mustApply(t, e, s, SelectTopic("Kraamtijd", "Kraamzorg"))
	require.Equal(t, StageAnswering, s.Stage)
	s = mustApply(t, e, s, FreeTextAnswer("Acht dagen kraamzorg."))
	assert.Equal(t, StageReview, s.Stage)
}

func TestAnswerWithoutPendingRejected(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())

	res := e.Apply(s, FreeTextAnswer("zomaar tekst"))
	assert.True(t, res.Rejected)
	assert.ErrorIs(t, res.Err, ErrNoPendingAnswer)
}

func TestEditAnswerInPlaceAndIdempotent(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Voeding"))
	s = mustApply(t, e, s, SelectTopic("Voeding", "Borstvoeding"))
	question := s.Pending.Question
	s = mustApply(t, e, s, FreeTextAnswer("eerste antwoord"))

	s = mustApply(t, e, s, EditAnswer(question, "tweede antwoord"))
	require.Len(t, s.QA, 1)
	assert.Equal(t, "tweede antwoord", s.QA[0].Answer)

	again := mustApply(t, e, s, EditAnswer(question, "tweede antwoord"))
	assert.Equal(t, s.QA, again.QA, "editing twice with the same answer changes nothing")
}

func TestEditUnknownQuestionRejected(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Voeding"))
	s = mustApply(t, e, s, SelectTopic("Voeding", "Borstvoeding"))
	s = mustApply(t, e, s, FreeTextAnswer("antwoord"))

	res := e.Apply(s, EditAnswer("bestaat niet", "x"))
	assert.True(t, res.Rejected)
	assert.ErrorIs(t, res.Err, ErrUnknownQuestion)
}

func TestRemoveThemeCascades(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Pijnbestrijding"))
	s = mustApply(t, e, s, SelectTopic("Pijnbestrijding", "Epiduraal"))
	s = mustApply(t, e, s, FreeTextAnswer("Ik wil graag een ruggenprik kunnen krijgen."))
	require.NotEmpty(t, s.QA)

	s = mustApply(t, e, s, RemoveTheme("Pijnbestrijding"))
	assert.Empty(t, s.QA)
	assert.NotContains(t, s.TopicsByTheme, "Pijnbestrijding")
	assert.NotContains(t, s.TopicCursor, "Pijnbestrijding")
	assert.Empty(t, s.CurrentTheme)
	assert.Nil(t, s.Pending)
	assert.Equal(t, StageChooseTheme, s.Stage)
}

func TestRemoveThemeMidAnswerClearsPending(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	s = mustApply(t, e, s, SelectTheme("Voeding"))
	s = mustApply(t, e, s, SelectTopic("Voeding", "Borstvoeding"))
	require.NotNil(t, s.Pending)

	s = mustApply(t, e, s, RemoveTheme("Voeding"))
	assert.Nil(t, s.Pending)
	assert.Equal(t, StageChooseTheme, s.Stage)
}

func TestRemoveUnknownThemeRejected(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())

	res := e.Apply(s, RemoveTheme("Niet gekozen"))
	assert.True(t, res.Rejected)
	assert.ErrorIs(t, res.Err, ErrUnknownTheme)
}

func TestAdvanceReviewGating(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())

	res := e.Apply(s, AdvanceReview())
	assert.True(t, res.Rejected, "review cannot be advanced from choose_theme")

	s = mustApply(t, e, s, SelectTheme("Voeding"))
	s = mustApply(t, e, s, SelectTopic("Voeding", "Borstvoeding"))
	s = mustApply(t, e, s, FreeTextAnswer("antwoord"))
	require.Equal(t, StageReview, s.Stage)

	s = mustApply(t, e, s, AdvanceReview())
	assert.Equal(t, StageExported, s.Stage)
}

func TestSpecScenario(t *testing.T) {
	e := NewEngine(nil)
	s := NewSession()

	s = mustApply(t, e, s, Greet())
	require.Equal(t, StageChooseTheme, s.Stage)

	s = mustApply(t, e, s, SelectTheme("Pijnbestrijding"))
	require.Equal(t, StageChooseTopic, s.Stage)
	require.Equal(t, "Pijnbestrijding", s.CurrentTheme)

	s = mustApply(t, e, s, SelectTopic("Pijnbestrijding", "Epiduraal"))
	require.Equal(t, StageAnswering, s.Stage)

	s = mustApply(t, e, s, FreeTextAnswer("Ik wil graag…"))
	require.Len(t, s.QA, 1)
	require.Equal(t, "Pijnbestrijding", s.QA[0].Theme)

	s = mustApply(t, e, s, RemoveTheme("Pijnbestrijding"))
	assert.Empty(t, s.QA)
	assert.NotContains(t, s.TopicsByTheme, "Pijnbestrijding")
	assert.Equal(t, StageChooseTheme, s.Stage)
}

func TestOptionsFollowSelections(t *testing.T) {
	e := NewEngine(nil)
	s := mustApply(t, e, NewSession(), Greet())
	all := e.Options(s)
	require.NotEmpty(t, all)

	s = mustApply(t, e, s, SelectTheme(all[0]))
	topics := e.Options(s)
	require.NotEmpty(t, topics)
	assert.NotContains(t, e.Options(s), all[0])

	s = mustApply(t, e, s, SelectTopic(s.CurrentTheme, topics[0]))
	assert.NotContains(t, e.Options(s), topics[0])
}
