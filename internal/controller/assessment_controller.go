package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"homerun-be/internal/dto"
	"homerun-be/internal/pkg/serverutils"
	"homerun-be/internal/service"
)

type IAssessmentController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Claim(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
}

type assessmentController struct {
	assessmentService service.IAssessmentService
}

func NewAssessmentController(assessmentService service.IAssessmentService) IAssessmentController {
	return &assessmentController{
		assessmentService: assessmentService,
	}
}

func (c *assessmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assessment/v1")
	// Submit is open so visitors can take the assessment before signing up.
	h.Post("", serverutils.OptionalJwtMiddleware, c.Submit)
	h.Post("claim", serverutils.JwtMiddleware, c.Claim)
	h.Get("latest", serverutils.JwtMiddleware, c.Latest)
}

func (c *assessmentController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitAssessmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	var userId *uuid.UUID
	if userIdStr, ok := ctx.Locals("user_id").(string); ok && userIdStr != "" {
		if id, err := uuid.Parse(userIdStr); err == nil {
			userId = &id
		}
	}

	res, err := c.assessmentService.Submit(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Assessment submitted", res))
}

func (c *assessmentController) Claim(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ClaimAssessmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.Claim(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrIntakeNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Assessment claimed", res))
}

func (c *assessmentController) Latest(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.assessmentService.GetLatest(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrNoAssessment) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Latest assessment", res))
}
