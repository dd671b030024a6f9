package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"

	"aurora-fiscalizacao-be/internal/dto"
	"aurora-fiscalizacao-be/internal/pkg/logger"
	"aurora-fiscalizacao-be/internal/pkg/serverutils"
	"aurora-fiscalizacao-be/internal/service"
	internalWS "aurora-fiscalizacao-be/internal/websocket"
)

// ConsoleHandler serves the operator console: login, the recent-event list
// and the live websocket feed.
type ConsoleHandler struct {
	consoleService service.IConsoleService
	auditService   service.IAuditService
	hub            *internalWS.Hub
	logger         logger.ILogger
}

func NewConsoleHandler(consoleService service.IConsoleService, auditService service.IAuditService, hub *internalWS.Hub, log logger.ILogger) *ConsoleHandler {
	return &ConsoleHandler{
		consoleService: consoleService,
		auditService:   auditService,
		hub:            hub,
		logger:         log,
	}
}

func (h *ConsoleHandler) RegisterRoutes(r fiber.Router) {
	c := r.Group("/console/v1")
	c.Post("/login", h.Login)
	c.Get("/events", serverutils.JwtMiddleware, h.RecentEvents)
	c.Get("/live", h.ServeWs)
}

func (h *ConsoleHandler) Login(ctx *fiber.Ctx) error {
	var req dto.ConsoleLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := h.consoleService.Login(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (h *ConsoleHandler) RecentEvents(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	records, err := h.auditService.Recent(ctx.UserContext(), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recent events", records))
}

// ServeWs upgrades the connection to the live event feed. The token rides in
// the query string because browsers cannot set headers on upgrades.
func (h *ConsoleHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		h.logger.Warn("ConsoleHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	operator, ok := claims["operator"].(string)
	if !ok || operator == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing operator"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ConsoleHandler", "Starting console session", map[string]interface{}{"operator": operator})
			internalWS.ServeWs(h.hub, conn, operator)
			h.logger.Info("ConsoleHandler", "Console session ended", map[string]interface{}{"operator": operator})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
