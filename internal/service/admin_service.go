package service

import (
	"context"
	"time"

	"birthplan-agent-be/internal/config"
	"birthplan-agent-be/internal/dto"
	"birthplan-agent-be/internal/pkg/logger"
	"birthplan-agent-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAdminService interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
	ListSessions(ctx context.Context, page, limit int) (*dto.SessionListResponse, error)
	GetLogs(level string, page, limit int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

type adminService struct {
	cfg   *config.Config
	store contract.PlanSessionStore
	log   logger.ILogger
}

func NewAdminService(cfg *config.Config, store contract.PlanSessionStore, log logger.ILogger) IAdminService {
	return &adminService{
		cfg:   cfg,
		store: store,
		log:   log,
	}
}

func (s *adminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	if s.cfg.Admin.PasswordHash == "" || s.cfg.Admin.JwtSecret == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Admin access is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn("admin", "failed login attempt", nil)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	})
	signedToken, err := token.SignedString([]byte(s.cfg.Admin.JwtSecret))
	if err != nil {
		return nil, err
	}

	s.log.Info("admin", "admin logged in", nil)
	return &dto.AdminLoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *adminService) ListSessions(ctx context.Context, page, limit int) (*dto.SessionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sessions, err := s.store.FindAll(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.SessionSummaryResponse, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, dto.SessionSummaryResponse{
			SessionId:   session.ID,
			Stage:       string(session.Stage),
			ThemeCount:  len(session.Themes),
			AnswerCount: len(session.QA),
			CreatedAt:   session.CreatedAt,
			UpdatedAt:   session.UpdatedAt,
		})
	}

	return &dto.SessionListResponse{
		Sessions: summaries,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (s *adminService) GetLogs(level string, page, limit int) ([]logger.LogEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.log.GetLogs(level, limit, (page-1)*limit)
}

func (s *adminService) GetLogById(id string) (*logger.LogEntry, error) {
	entry, err := s.log.GetLogById(id)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Log entry not found")
	}
	return entry, nil
}
