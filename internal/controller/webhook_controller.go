package controller

import (
	"github.com/gofiber/fiber/v2"

	"aurora-fiscalizacao-be/internal/dto"
	"aurora-fiscalizacao-be/internal/pkg/serverutils"
	"aurora-fiscalizacao-be/internal/service"
)

// IWebhookController receives inbound events from the WhatsApp gateway.
type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	ReceiveMessage(ctx *fiber.Ctx) error
	ReceiveCall(ctx *fiber.Ctx) error
}

type webhookController struct {
	publisherService service.IPublisherService
	dialogueService  service.IDialogueService
}

func NewWebhookController(publisherService service.IPublisherService, dialogueService service.IDialogueService) IWebhookController {
	return &webhookController{
		publisherService: publisherService,
		dialogueService:  dialogueService,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("/message", c.ReceiveMessage)
	h.Post("/call", c.ReceiveCall)
}

// ReceiveMessage enqueues the message and returns immediately. Replies flow
// back through the gateway asynchronously.
func (c *webhookController) ReceiveMessage(ctx *fiber.Ctx) error {
	var req dto.InboundMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.publisherService.PublishInbound(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message accepted", dto.InboundAcceptedResponse{
		Accepted: true,
		SenderId: req.SenderId,
	}))
}

// ReceiveCall handles a rejected voice call. The notice and menu go out
// inline rather than through the intake queue; the caller's session is reset.
func (c *webhookController) ReceiveCall(ctx *fiber.Ctx) error {
	var req dto.InboundCallRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.dialogueService.HandleCall(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Call notice sent", dto.InboundAcceptedResponse{Accepted: true}))
}
