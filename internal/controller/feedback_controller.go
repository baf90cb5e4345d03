package controller

import (
	"kb-assist-be/internal/dto"
	"kb-assist-be/internal/pkg/serverutils"
	"kb-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Insights(ctx *fiber.Ctx) error
	Rebuild(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback/v1")
	h.Get("stats", c.Stats)
	h.Get("insights", c.Insights)
	h.Post("rebuild", c.Rebuild)
	h.Post("", c.Submit)
}

func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.Submit(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit feedback", res))
}

func (c *feedbackController) Stats(ctx *fiber.Ctx) error {
	res, err := c.feedbackService.Stats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feedback stats", res))
}

func (c *feedbackController) Insights(ctx *fiber.Ctx) error {
	res, err := c.feedbackService.Insights(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feedback insights", res))
}

func (c *feedbackController) Rebuild(ctx *fiber.Ctx) error {
	res, err := c.feedbackService.RebuildPatterns(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rebuild scoring patterns", res))
}
