// Package orderhdl exposes the order endpoints: CRUD, status transitions,
// cancellation, the accounting CSV export and label printing.
package orderhdl

import (
	basehdl "b8_shield/internal/api/base/handler"
	orderdto "b8_shield/internal/api/order/dto"
	ordermodels "b8_shield/internal/api/order/models"
	ordersvc "b8_shield/internal/api/order/service"
	"b8_shield/internal/common"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
)

// OrderHandler handles order HTTP requests.
type OrderHandler struct {
	basehdl.BaseHandler[ordermodels.Order, orderdto.CreateOrderInput]
	orderService *ordersvc.OrderService
}

// NewOrderHandler creates the order handler.
func NewOrderHandler() (*OrderHandler, error) {
	service, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, err
	}
	h := &OrderHandler{orderService: service}
	h.BaseService = service
	return h, nil
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.CreateOrderInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		actor := common.ActorFromContext(c.Context())
		order, err := h.orderService.Create(c.Context(), actor, &input)
		basehdl.HandleResponse(c, order, err)
		return nil
	})
}

// UpdateStatus handles PUT /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input orderdto.UpdateStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		actor := common.ActorFromContext(c.Context())
		order, err := h.orderService.UpdateStatus(c.Context(), actor, id, &input)
		basehdl.HandleResponse(c, order, err)
		return nil
	})
}

// Cancel handles POST /orders/:id/cancel.
func (h *OrderHandler) Cancel(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		actor := common.ActorFromContext(c.Context())
		order, err := h.orderService.Cancel(c.Context(), actor, id)
		basehdl.HandleResponse(c, order, err)
		return nil
	})
}

// Delete handles DELETE /orders/:id. Admin-only hard delete.
func (h *OrderHandler) Delete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		actor := common.ActorFromContext(c.Context())
		err = h.orderService.Delete(c.Context(), actor, id)
		basehdl.HandleResponse(c, fiber.Map{"deleted": err == nil}, err)
		return nil
	})
}

// ExportCSV handles GET /orders/export. Streams the accounting CSV,
// optionally filtered by status and source.
func (h *OrderHandler) ExportCSV(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actor := common.ActorFromContext(c.Context())
		if !actor.IsAdmin() {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, "Unauthorized", common.StatusForbidden, common.ErrUnauthorized))
			return nil
		}

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if source := c.Query("source"); source != "" {
			filter["source"] = source
		}

		orders, err := h.orderService.Find(c.Context(), filter, nil)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		data, err := ordersvc.ExportOrdersCSV(orders)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		c.Set("Content-Type", "text/csv; charset=utf-8")
		c.Set("Content-Disposition", `attachment; filename="ordrar.csv"`)
		return c.Send(data)
	})
}

// PrintLabel handles GET /orders/:id/label?format=html|escpos.
func (h *OrderHandler) PrintLabel(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.orderService.FindOneById(c.Context(), id)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeDatabaseQuery, "Order not found", common.StatusNotFound, err))
			return nil
		}

		switch c.Query("format", "html") {
		case "escpos":
			c.Set("Content-Type", "application/octet-stream")
			c.Set("Content-Disposition", `attachment; filename="label.bin"`)
			return c.Send(ordersvc.RenderLabelESCPOS(&order))
		default:
			c.Set("Content-Type", "text/html; charset=utf-8")
			return c.SendString(ordersvc.RenderLabelHTML(&order))
		}
	})
}
