package service

import (
	"context"
	"errors"
	"time"

	"birthplan-agent-be/internal/dto"
	"birthplan-agent-be/internal/pkg/logger"
	"birthplan-agent-be/internal/repository/contract"
	"birthplan-agent-be/pkg/events"
	"birthplan-agent-be/pkg/generator"
	"birthplan-agent-be/pkg/plan"

	"github.com/gofiber/fiber/v2"
)

// EventPublisher is the subset of the NATS publisher the service needs.
// Lifecycle events are best-effort: a bus outage never blocks a turn.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConversationService interface {
	HandleMessage(ctx context.Context, req *dto.ConversationRequest) (*dto.ConversationResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionViewResponse, error)
	Export(ctx context.Context, sessionId, email string) (*plan.ExportDocument, error)
}

type conversationService struct {
	store           contract.PlanSessionStore
	engine          *plan.Engine
	gen             generator.QuestionGenerator
	genTimeout      time.Duration
	eventPublisher  EventPublisher
	exportPublisher IPublisherService
	log             logger.ILogger
}

func NewConversationService(
	store contract.PlanSessionStore,
	engine *plan.Engine,
	gen generator.QuestionGenerator,
	genTimeout time.Duration,
	eventPublisher EventPublisher,
	exportPublisher IPublisherService,
	log logger.ILogger,
) IConversationService {
	return &conversationService{
		store:           store,
		engine:          engine,
		gen:             gen,
		genTimeout:      genTimeout,
		eventPublisher:  eventPublisher,
		exportPublisher: exportPublisher,
		log:             log,
	}
}

func (c *conversationService) HandleMessage(ctx context.Context, req *dto.ConversationRequest) (*dto.ConversationResponse, error) {
	res, err := c.handleTurn(ctx, req)
	if errors.Is(err, contract.ErrVersionConflict) {
		// Another turn for the same session won the write. Re-run the whole
		// turn once against the fresh state; interpretation may change.
		c.log.Warn("conversation", "version conflict, retrying turn", map[string]interface{}{
			"session_id": req.SessionId,
		})
		res, err = c.handleTurn(ctx, req)
	}
	if errors.Is(err, contract.ErrVersionConflict) {
		return nil, fiber.NewError(fiber.StatusConflict, "Sessie is gelijktijdig aangepast, probeer het opnieuw")
	}
	return res, err
}

func (c *conversationService) handleTurn(ctx context.Context, req *dto.ConversationRequest) (*dto.ConversationResponse, error) {
	session, created, err := c.loadOrCreate(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	action := plan.Interpret(req.Message, session)
	result := c.engine.Apply(session, action)

	reply := result.Reply
	options := c.engine.Options(result.Session)

	if !result.Rejected {
		if result.NeedsQuestion {
			if text, opts := c.generateQuestion(ctx, result.Session); text != "" {
				plan.SetPendingQuestion(result.Session, text)
				reply = text
				if len(opts) > 0 {
					options = opts
				}
			}
		}

		if created {
			if err := c.store.Create(ctx, result.Session); err != nil {
				return nil, err
			}
		} else if err := c.store.Update(ctx, result.Session); err != nil {
			return nil, err
		}

		c.publishLifecycle(ctx, action, result.Session)
	}

	resp := buildConversationResponse(result.Session, reply, options)
	resp.Rejected = result.Rejected
	return resp, nil
}

// loadOrCreate resolves the session for a turn. An unknown or absent id
// silently starts a fresh conversation instead of failing the turn.
func (c *conversationService) loadOrCreate(ctx context.Context, sessionId string) (*plan.Session, bool, error) {
	if sessionId == "" {
		return plan.NewSession(), true, nil
	}
	session, err := c.store.Find(ctx, sessionId)
	if err != nil {
		return nil, false, err
	}
	if session == nil {
		c.log.Info("conversation", "unknown session id, starting fresh", map[string]interface{}{
			"session_id": sessionId,
		})
		return plan.NewSession(), true, nil
	}
	return session, false, nil
}

// generateQuestion asks the LLM for the open question's text under a finite
// timeout. Failure is tolerated: the fallback question already sits on the
// session, so state and reply stay coherent without the model.
func (c *conversationService) generateQuestion(ctx context.Context, session *plan.Session) (string, []string) {
	if c.gen == nil || session.Pending == nil {
		return "", nil
	}
	genCtx, cancel := context.WithTimeout(ctx, c.genTimeout)
	defer cancel()

	answered := answeredForTheme(session, session.Pending.Theme)
	q, err := c.gen.NextQuestion(genCtx, session.Pending.Theme, session.Pending.Topic, answered)
	if err != nil {
		c.log.Warn("conversation", "question generation failed, using fallback", map[string]interface{}{
			"session_id": session.ID,
			"theme":      session.Pending.Theme,
			"topic":      session.Pending.Topic,
			"error":      err.Error(),
		})
		return "", nil
	}
	if q == nil {
		return "", nil
	}
	return q.Text, q.Options
}

func (c *conversationService) publishLifecycle(ctx context.Context, action plan.Action, session *plan.Session) {
	if c.eventPublisher == nil {
		return
	}
	var event events.Event
	switch {
	case action.Kind == plan.ActionGreet && len(session.Themes) == 0 && session.Stage == plan.StageChooseTheme:
		event = events.NewPlanSessionStarted(session.ID)
	case action.Kind == plan.ActionSelectTheme:
		event = events.NewPlanThemeChosen(session.ID, session.CurrentTheme)
	case action.Kind == plan.ActionAdvanceReview && session.Stage == plan.StageExported:
		event = events.NewPlanExported(session.ID, len(session.Themes), len(session.QA))
	default:
		return
	}
	if err := c.eventPublisher.Publish(ctx, event); err != nil {
		c.log.Warn("conversation", "failed to publish lifecycle event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func (c *conversationService) GetSession(ctx context.Context, sessionId string) (*dto.SessionViewResponse, error) {
	session, err := c.store.Find(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sessie niet gevonden")
	}
	return &dto.SessionViewResponse{
		SessionId:    session.ID,
		Stage:        string(session.Stage),
		CurrentTheme: session.CurrentTheme,
		Themes:       buildThemeViews(session),
		Pending:      buildPendingView(session),
		QA:           buildQAViews(session),
		Options:      c.engine.Options(session),
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}, nil
}

func (c *conversationService) Export(ctx context.Context, sessionId, email string) (*plan.ExportDocument, error) {
	session, err := c.store.Find(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Sessie niet gevonden")
	}
	if err := plan.Exportable(session); err != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Het plan is nog niet klaar voor export")
	}

	doc := plan.Export(session)

	if email != "" && c.exportPublisher != nil {
		msg := dto.PublishPlanExportMessage{Email: email, Document: doc}
		if err := c.exportPublisher.Publish(ctx, msg); err != nil {
			c.log.Warn("conversation", "failed to queue export email", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	return doc, nil
}

func answeredForTheme(session *plan.Session, theme string) []plan.QAEntry {
	answered := make([]plan.QAEntry, 0)
	for _, qa := range session.QA {
		if qa.Theme == theme {
			answered = append(answered, qa)
		}
	}
	return answered
}

func buildConversationResponse(session *plan.Session, reply string, options []string) *dto.ConversationResponse {
	return &dto.ConversationResponse{
		SessionId:      session.ID,
		AssistantReply: reply,
		Stage:          string(session.Stage),
		CurrentTheme:   session.CurrentTheme,
		Themes:         buildThemeViews(session),
		Pending:        buildPendingView(session),
		QA:             buildQAViews(session),
		Options:        options,
	}
}

func buildThemeViews(session *plan.Session) []dto.ThemeView {
	views := make([]dto.ThemeView, 0, len(session.Themes))
	for _, theme := range session.Themes {
		views = append(views, dto.ThemeView{
			Name:        theme.Name,
			Description: theme.Description,
			Topics:      session.ThemeTopics(theme.Name),
			Answered:    session.AnsweredCount(theme.Name),
		})
	}
	return views
}

func buildPendingView(session *plan.Session) *dto.PendingQuestionView {
	if session.Pending == nil {
		return nil
	}
	return &dto.PendingQuestionView{
		Theme:    session.Pending.Theme,
		Topic:    session.Pending.Topic,
		Question: session.Pending.Question,
	}
}

func buildQAViews(session *plan.Session) []dto.QAView {
	views := make([]dto.QAView, 0, len(session.QA))
	for _, qa := range session.QA {
		views = append(views, dto.QAView{
			Theme:    qa.Theme,
			Question: qa.Question,
			Answer:   qa.Answer,
		})
	}
	return views
}
