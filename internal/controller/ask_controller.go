package controller

import (
	"kb-assist-be/internal/dto"
	"kb-assist-be/internal/pkg/serverutils"
	"kb-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAskController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type askController struct {
	askService service.IAskService
}

func NewAskController(askService service.IAskService) IAskController {
	return &askController{
		askService: askService,
	}
}

func (c *askController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ask/v1")
	h.Get("search", c.Search)
	h.Post("", c.Ask)
}

func (c *askController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.askService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}

func (c *askController) Search(ctx *fiber.Ctx) error {
	req := dto.SearchRequest{
		Query: ctx.Query("q"),
		Mode:  ctx.Query("mode"),
		Limit: ctx.QueryInt("limit"),
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.askService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search knowledge base", res))
}
