package controller

import (
	"github.com/gofiber/fiber/v2"

	"homerun-be/internal/dto"
	"homerun-be/internal/pkg/serverutils"
	"homerun-be/internal/service"
)

type INarrationController interface {
	RegisterRoutes(r fiber.Router)
	Narrate(ctx *fiber.Ctx) error
}

type narrationController struct {
	narrationService service.INarrationService
}

func NewNarrationController(narrationService service.INarrationService) INarrationController {
	return &narrationController{
		narrationService: narrationService,
	}
}

func (c *narrationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/narration/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Narrate)
}

func (c *narrationController) Narrate(ctx *fiber.Ctx) error {
	var req dto.NarrationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if req.Text == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Text is required"))
	}

	res, err := c.narrationService.Narrate(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Narration generated", res))
}
