package controller

import (
	"kb-assist-be/internal/pkg/serverutils"
	"kb-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICorpusController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
	ShowDocument(ctx *fiber.Ctx) error
}

type corpusController struct {
	corpusService service.ICorpusService
}

func NewCorpusController(corpusService service.ICorpusService) ICorpusController {
	return &corpusController{
		corpusService: corpusService,
	}
}

func (c *corpusController) RegisterRoutes(r fiber.Router) {
	r.Get("/status", c.Status)

	corpus := r.Group("/corpus/v1")
	corpus.Post("reload", c.Reload)

	documents := r.Group("/document/v1")
	documents.Get("", c.ListDocuments)
	// Document ids are relative paths and may contain slashes.
	documents.Get("/*", c.ShowDocument)
}

func (c *corpusController) Status(ctx *fiber.Ctx) error {
	res, err := c.corpusService.Status(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get status", res))
}

func (c *corpusController) Reload(ctx *fiber.Ctx) error {
	res, err := c.corpusService.Reload(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reload corpus", res))
}

func (c *corpusController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.corpusService.ListDocuments(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *corpusController) ShowDocument(ctx *fiber.Ctx) error {
	documentId := ctx.Params("*")
	if documentId == "" {
		return serverutils.BadRequest("document id is required")
	}

	res, err := c.corpusService.ShowDocument(ctx.Context(), documentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}
