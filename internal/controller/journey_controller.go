package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"homerun-be/internal/dto"
	"homerun-be/internal/pkg/serverutils"
	"homerun-be/internal/service"
)

type IJourneyController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Active(ctx *fiber.Ctx) error
	Proceed(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
	Report(ctx *fiber.Ctx) error
}

type journeyController struct {
	journeyService service.IJourneyService
	reportService  service.IReportService
}

func NewJourneyController(journeyService service.IJourneyService, reportService service.IReportService) IJourneyController {
	return &journeyController{
		journeyService: journeyService,
		reportService:  reportService,
	}
}

func (c *journeyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/journey/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Start)
	h.Get("active", c.Active)
	h.Post("proceed", c.Proceed)
	h.Get(":id/progress", c.Progress)
	h.Get(":id/report", c.Report)
}

func (c *journeyController) Start(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StartJourneyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.journeyService.StartJourney(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrActiveJourneyExists) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Journey started", res))
}

func (c *journeyController) Active(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.journeyService.GetActiveJourney(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveJourney) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Active journey", res))
}

func (c *journeyController) Proceed(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ProceedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.journeyService.Proceed(ctx.Context(), userId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrStageNotCompleted), errors.Is(err, service.ErrJourneyCompleted):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Advanced to next base", res))
}

func (c *journeyController) Progress(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid conversation id"))
	}

	res, err := c.journeyService.GetProgress(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Journey progress", res))
}

func (c *journeyController) Report(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid conversation id"))
	}

	res, err := c.reportService.GetReport(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Journey report", res))
}
