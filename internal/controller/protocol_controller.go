package controller

import (
	"github.com/gofiber/fiber/v2"

	"aurora-fiscalizacao-be/internal/dto"
	"aurora-fiscalizacao-be/internal/pkg/serverutils"
	"aurora-fiscalizacao-be/internal/service"
)

// IProtocolController exposes the back-office status endpoints. Reads are
// public (the same data the bot tells citizens); writes require an operator
// token.
type IProtocolController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
}

type protocolController struct {
	service service.IProtocolService
}

func NewProtocolController(service service.IProtocolService) IProtocolController {
	return &protocolController{service: service}
}

func (c *protocolController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/protocol/v1")
	h.Get("/:protocol", c.Show)
	h.Put("", serverutils.JwtMiddleware, c.Upsert)
}

func (c *protocolController) Show(ctx *fiber.Ctx) error {
	protocol := ctx.Params("protocol")

	res, err := c.service.Show(ctx.Context(), protocol)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get protocol status", res))
}

func (c *protocolController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertProtocolStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Upsert(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success upsert protocol status", nil))
}
