package controller

import (
	"inspire-it-be/internal/dto"
	"inspire-it-be/internal/pkg/serverutils"
	"inspire-it-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	GetState(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	AddDomain(ctx *fiber.Ctx) error
	GenerateIdeas(ctx *fiber.Ctx) error
	SubmitSuggestion(ctx *fiber.Ctx) error
	DevelopIdea(ctx *fiber.Ctx) error
	GeneratePaper(ctx *fiber.Ctx) error
	RenderPaper(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	GetConfig(ctx *fiber.Ctx) error
	UpdateConfig(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Get("/state", c.GetState)
	h.Post("/navigate", c.Navigate)
	h.Post("/domains", c.AddDomain)
	h.Post("/ideas/generate", c.GenerateIdeas)
	h.Post("/ideas/suggest", c.SubmitSuggestion)
	h.Post("/ideas/develop", c.DevelopIdea)
	h.Post("/paper/generate", c.GeneratePaper)
	h.Get("/paper", c.RenderPaper)
	h.Post("/chat", c.Chat)
	h.Post("/reset", c.Reset)
	h.Get("/config", c.GetConfig)
	h.Put("/config", c.UpdateConfig)
}

func sessionId(ctx *fiber.Ctx) string {
	return ctx.Locals(serverutils.SessionIDLocal).(string)
}

func (c *assistantController) GetState(ctx *fiber.Ctx) error {
	res, err := c.service.GetState(ctx.Context(), sessionId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session state", res))
}

func (c *assistantController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Navigate(ctx.Context(), sessionId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success navigate", res))
}

func (c *assistantController) AddDomain(ctx *fiber.Ctx) error {
	res, err := c.service.AddDomain(ctx.Context(), sessionId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add domain input", res))
}

func (c *assistantController) GenerateIdeas(ctx *fiber.Ctx) error {
	var req dto.GenerateIdeasRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateIdeas(ctx.Context(), sessionId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate ideas", res))
}

func (c *assistantController) SubmitSuggestion(ctx *fiber.Ctx) error {
	var req dto.SubmitSuggestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitSuggestion(ctx.Context(), sessionId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success regenerate ideas", res))
}

func (c *assistantController) DevelopIdea(ctx *fiber.Ctx) error {
	var req dto.DevelopIdeaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.DevelopIdea(ctx.Context(), sessionId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success develop idea", res))
}

func (c *assistantController) GeneratePaper(ctx *fiber.Ctx) error {
	var req dto.GeneratePaperRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GeneratePaper(ctx.Context(), sessionId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate paper", res))
}

func (c *assistantController) RenderPaper(ctx *fiber.Ctx) error {
	res, err := c.service.RenderPaper(ctx.Context(), sessionId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success render paper", res))
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.Context(), sessionId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *assistantController) Reset(ctx *fiber.Ctx) error {
	res, err := c.service.Reset(ctx.Context(), sessionId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear conversation", res))
}

func (c *assistantController) GetConfig(ctx *fiber.Ctx) error {
	res, err := c.service.GetConfig(ctx.Context(), sessionId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get config", res))
}

func (c *assistantController) UpdateConfig(ctx *fiber.Ctx) error {
	var req dto.UpdateConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateConfig(ctx.Context(), sessionId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update config", res))
}
