package basehdl

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "b8_shield/internal/api/base/service"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
)

// BaseHandler exposes generic CRUD endpoints for one model. Domain handlers
// embed it and add their business operations on top.
type BaseHandler[T any, CreateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T]
}

// ParseRequestBody binds the JSON request body into out.
func (h *BaseHandler[T, CreateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	return c.Bind().Body(out)
}

// ValidateInput runs the shared validator over a bound input struct.
func (h *BaseHandler[T, CreateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("%s: %v", common.MsgValidationError, err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// ProcessFilter reads an optional JSON filter from the query string.
func (h *BaseHandler[T, CreateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	filter := map[string]interface{}{}
	raw := c.Query("filter")
	if raw == "" {
		return filter, nil
	}
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			"The filter query parameter must be valid JSON",
			common.StatusBadRequest,
			err,
		)
	}
	return filter, nil
}

// ParamObjectID reads and validates an ObjectID path parameter.
func (h *BaseHandler[T, CreateInput]) ParamObjectID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	id := c.Params(name)
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("URL parameter %s must not be empty", name),
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("%q is not a valid ObjectID (24 hex characters)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	oid, _ := primitive.ObjectIDFromHex(id)
	return oid, nil
}

// Find lists documents matching the optional JSON filter query parameter.
func (h *BaseHandler[T, CreateInput]) Find(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.Find(c.Context(), filter, nil)
		HandleResponse(c, data, err)
		return nil
	})
}

// FindOneById returns one document by its path id.
func (h *BaseHandler[T, CreateInput]) FindOneById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.BaseService.FindOneById(c.Context(), id)
		HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination returns a page of documents. page and limit come from
// query parameters.
func (h *BaseHandler[T, CreateInput]) FindWithPagination(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		page := int64(fiber.Query(c, "page", 1))
		limit := int64(fiber.Query(c, "limit", 50))

		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, nil)
		HandleResponse(c, data, err)
		return nil
	})
}

// CountDocuments counts documents matching the optional filter.
func (h *BaseHandler[T, CreateInput]) CountDocuments(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		HandleResponse(c, fiber.Map{"count": count}, err)
		return nil
	})
}

// DeleteById removes one document by its path id.
func (h *BaseHandler[T, CreateInput]) DeleteById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			HandleResponse(c, nil, err)
			return nil
		}

		err = h.BaseService.DeleteById(c.Context(), id)
		HandleResponse(c, fiber.Map{"deleted": err == nil}, err)
		return nil
	})
}
