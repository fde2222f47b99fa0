package controller

import (
	"db-qa-be/internal/dto"
	"db-qa-be/internal/pkg/serverutils"
	"db-qa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQaController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	GetTables(ctx *fiber.Ctx) error
	GetTableSchema(ctx *fiber.Ctx) error
	ListApprovals(ctx *fiber.Ctx) error
	DecideApproval(ctx *fiber.Ctx) error
}

type qaController struct {
	service service.IQaService
}

func NewQaController(service service.IQaService) IQaController {
	return &qaController{service: service}
}

func (c *qaController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Post("/ask", c.Ask)
	r.Get("/tables", c.GetTables)
	r.Get("/schema/:table_name", c.GetTableSchema)
	r.Get("/approvals", c.ListApprovals)
	r.Post("/approvals/:id", c.DecideApproval)
}

func (c *qaController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Health(ctx.Context()))
}

func (c *qaController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *qaController) GetTables(ctx *fiber.Ctx) error {
	res, err := c.service.GetTables(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *qaController) GetTableSchema(ctx *fiber.Ctx) error {
	table := ctx.Params("table_name")

	res, err := c.service.GetTableSchema(ctx.Context(), table)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *qaController) ListApprovals(ctx *fiber.Ctx) error {
	res, err := c.service.PendingApprovals(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Pending approvals", res))
}

func (c *qaController) DecideApproval(ctx *fiber.Ctx) error {
	var req dto.ApprovalDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Decide(ctx.Context(), ctx.Params("id"), *req.Approve)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
