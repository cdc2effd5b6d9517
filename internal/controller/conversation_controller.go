package controller

import (
	"birthplan-agent-be/internal/dto"
	"birthplan-agent-be/internal/pkg/serverutils"
	"birthplan-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Post("/message", c.SendMessage)
	h.Get("/:id", c.GetSession)
	h.Get("/:id/export", c.Export)
}

func (c *conversationController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.HandleMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *conversationController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session state", res))
}

func (c *conversationController) Export(ctx *fiber.Ctx) error {
	email := ctx.Query("email")

	doc, err := c.service.Export(ctx.Context(), ctx.Params("id"), email)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Plan export", doc))
}
