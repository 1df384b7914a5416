package controller

import (
	"errors"

	"github.com/benbeisheim/roulette-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type TableController struct {
	tableService *service.TableService
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

func NewTableController(tableService *service.TableService) *TableController {
	return &TableController{tableService: tableService}
}

func (tc *TableController) CreateTable(c *fiber.Ctx) error {
	tableID, err := tc.tableService.CreateTable()
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Table created",
		"table_id": tableID,
	})
}

func (tc *TableController) GetTableState(c *fiber.Ctx) error {
	state, err := tc.tableService.GetTableState(c.Params("tableId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (tc *TableController) AddPlayer(c *fiber.Ctx) error {
	tableID := c.Params("tableId")

	var req addPlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	added, err := tc.tableService.AddPlayer(tableID, req.Name)
	if err != nil {
		return fail(c, err)
	}
	state, err := tc.tableService.GetTableState(tableID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"added": added,
		"state": state,
	})
}

// Spin answers with the outcome right away; revealAfterMs tells the client
// how long the table keeps it hidden.
func (tc *TableController) Spin(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "player index must be an integer",
		})
	}

	pending, err := tc.tableService.Spin(c.Params("tableId"), index)
	if err != nil {
		return fail(c, err)
	}
	if pending == nil {
		return c.JSON(fiber.Map{
			"spun":    false,
			"outcome": nil,
		})
	}
	return c.JSON(fiber.Map{
		"spun":          true,
		"playerIndex":   pending.PlayerIndex,
		"outcome":       pending.Outcome,
		"revealAfterMs": tc.tableService.RevealDelay().Milliseconds(),
	})
}

func (tc *TableController) Reset(c *fiber.Ctx) error {
	tableID := c.Params("tableId")
	if err := tc.tableService.Reset(tableID); err != nil {
		return fail(c, err)
	}
	state, err := tc.tableService.GetTableState(tableID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (tc *TableController) CloseTable(c *fiber.Ctx) error {
	if err := tc.tableService.CloseTable(c.Params("tableId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrTableNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
