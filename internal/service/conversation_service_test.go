package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"birthplan-agent-be/internal/dto"
	"birthplan-agent-be/internal/pkg/logger"
	"birthplan-agent-be/internal/repository/memory"
	"birthplan-agent-be/pkg/generator"
	"birthplan-agent-be/pkg/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	question *generator.Question
	err      error
	calls    int
}

func (f *fakeGenerator) NextQuestion(ctx context.Context, theme, topic string, answered []plan.QAEntry) (*generator.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.question, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func newTestService(gen generator.QuestionGenerator) (IConversationService, *memory.PlanSessionStore) {
	store := memory.NewPlanSessionStore()
	engine := plan.NewEngine(plan.DefaultCatalog())
	svc := NewConversationService(store, engine, gen, time.Second, nil, nil, nopLogger{})
	return svc, store
}

func send(t *testing.T, svc IConversationService, sessionId, message string) *dto.ConversationResponse {
	t.Helper()
	res, err := svc.HandleMessage(context.Background(), &dto.ConversationRequest{
		SessionId: sessionId,
		Message:   message,
	})
	require.NoError(t, err)
	return res
}

func TestHandleMessageStartsNewSession(t *testing.T) {
	svc, store := newTestService(nil)

	res := send(t, svc, "", "hallo")

	assert.NotEmpty(t, res.SessionId)
	assert.Equal(t, string(plan.StageChooseTheme), res.Stage)
	assert.NotEmpty(t, res.Options, "theme catalogue should be offered")

	stored, err := store.Find(context.Background(), res.SessionId)
	require.NoError(t, err)
	require.NotNil(t, stored, "new session must be persisted")
}

func TestHandleMessageUnknownSessionStartsFresh(t *testing.T) {
	svc, _ := newTestService(nil)

	res := send(t, svc, "b8b9e3a0-0000-0000-0000-000000000000", "hallo")

	assert.NotEqual(t, "b8b9e3a0-0000-0000-0000-000000000000", res.SessionId)
	assert.Equal(t, string(plan.StageChooseTheme), res.Stage)
}

func TestGeneratedQuestionOverridesFallback(t *testing.T) {
	gen := &fakeGenerator{question: &generator.Question{
		Text:    "Hoe sta je tegenover een ruggenprik tijdens de bevalling?",
		Options: []string{"Graag", "Liever niet", "Weet ik nog niet"},
	}}
	svc, store := newTestService(gen)

	res := send(t, svc, "", "hallo")
	res = send(t, svc, res.SessionId, "select theme Pijnbestrijding")
	res = send(t, svc, res.SessionId, "select topic Epiduraal within theme Pijnbestrijding")

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "Hoe sta je tegenover een ruggenprik tijdens de bevalling?", res.AssistantReply)
	assert.Equal(t, []string{"Graag", "Liever niet", "Weet ik nog niet"}, res.Options)

	// The generated text must be the one persisted as the open question.
	stored, err := store.Find(context.Background(), res.SessionId)
	require.NoError(t, err)
	require.NotNil(t, stored.Pending)
	assert.Equal(t, "Hoe sta je tegenover een ruggenprik tijdens de bevalling?", stored.Pending.Question)
}

func TestGeneratorFailureStillPersistsState(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc, store := newTestService(gen)

	res := send(t, svc, "", "hallo")
	res = send(t, svc, res.SessionId, "select theme Pijnbestrijding")
	res = send(t, svc, res.SessionId, "select topic Epiduraal within theme Pijnbestrijding")

	assert.Equal(t, string(plan.StageAnswering), res.Stage)
	assert.Contains(t, res.AssistantReply, "Epiduraal", "fallback question must mention the topic")

	stored, err := store.Find(context.Background(), res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, plan.StageAnswering, stored.Stage)
	require.NotNil(t, stored.Pending, "topic selection must survive generator failure")
}

func TestRejectedTurnDoesNotAdvanceState(t *testing.T) {
	svc, store := newTestService(nil)

	res := send(t, svc, "", "hallo")
	sessionId := res.SessionId

	// Topic selection is illegal while no theme is active.
	res = send(t, svc, sessionId, "select topic Epiduraal within theme Pijnbestrijding")
	assert.True(t, res.Rejected)
	assert.Equal(t, string(plan.StageChooseTheme), res.Stage)

	stored, err := store.Find(context.Background(), sessionId)
	require.NoError(t, err)
	assert.Empty(t, stored.Themes)
	assert.Equal(t, plan.StageChooseTheme, stored.Stage)
}

func TestFullConversationReachesExport(t *testing.T) {
	svc, _ := newTestService(nil)

	res := send(t, svc, "", "hallo")
	id := res.SessionId

	send(t, svc, id, "select theme Pijnbestrijding")
	send(t, svc, id, "select topic Epiduraal within theme Pijnbestrijding")
	res = send(t, svc, id, "Liever eerst zonder medicatie, daarna zien we verder.")
	assert.Equal(t, string(plan.StageReview), res.Stage)

	res = send(t, svc, id, "export plan")
	assert.Equal(t, string(plan.StageExported), res.Stage)

	doc, err := svc.Export(context.Background(), id, "")
	require.NoError(t, err)
	require.Len(t, doc.Themes, 1)
	assert.Equal(t, "Pijnbestrijding", doc.Themes[0].Name)
	require.Len(t, doc.Themes[0].QA, 1)
}

func TestExportBeforeReviewRejected(t *testing.T) {
	svc, _ := newTestService(nil)

	res := send(t, svc, "", "hallo")
	_, err := svc.Export(context.Background(), res.SessionId, "")
	assert.Error(t, err)
}

func TestExportUnknownSessionNotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Export(context.Background(), "missing", "")
	assert.Error(t, err)
}

func TestGetSessionReturnsView(t *testing.T) {
	svc, _ := newTestService(nil)

	res := send(t, svc, "", "hallo")
	send(t, svc, res.SessionId, "select theme Voeding")

	view, err := svc.GetSession(context.Background(), res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, res.SessionId, view.SessionId)
	require.Len(t, view.Themes, 1)
	assert.Equal(t, "Voeding", view.Themes[0].Name)
	assert.Equal(t, string(plan.StageChooseTopic), view.Stage)
}

func TestGetSessionUnknownNotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.GetSession(context.Background(), "missing")
	assert.Error(t, err)
}
