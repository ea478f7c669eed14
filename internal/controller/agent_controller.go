package controller

import (
	"adwise-be/internal/dto"
	"adwise-be/internal/pkg/serverutils"
	"adwise-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Execute(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	AgentInfo(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type agentController struct {
	service service.IAgentService
}

func NewAgentController(service service.IAgentService) IAgentController {
	return &agentController{service: service}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	r.Post("/execute", c.Execute)
	r.Post("/chat", c.Chat)
	r.Get("/agent_info", c.AgentInfo)
	r.Get("/health", c.Health)
}

// Execute runs the pipeline on a raw prompt. The response is the bare
// {status,error,response,steps} shape, not the success envelope.
func (c *agentController) Execute(ctx *fiber.Ctx) error {
	var req dto.ExecuteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.service.Execute(ctx.Context(), req.Prompt)
	return ctx.JSON(res)
}

func (c *agentController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res := c.service.Chat(ctx.Context(), &req)
	return ctx.JSON(res)
}

func (c *agentController) AgentInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Info())
}

func (c *agentController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Service is healthy", fiber.Map{
		"status": "ok",
	}))
}
