// Package customerhdl exposes the customer endpoints, including the manual
// automation trigger and the login event.
package customerhdl

import (
	basehdl "b8_shield/internal/api/base/handler"
	basesvc "b8_shield/internal/api/base/service"
	customerdto "b8_shield/internal/api/customer/dto"
	customermodels "b8_shield/internal/api/customer/models"
	customersvc "b8_shield/internal/api/customer/service"
	"b8_shield/internal/common"

	"github.com/gofiber/fiber/v3"
)

// CustomerHandler handles customer HTTP requests.
type CustomerHandler struct {
	basehdl.BaseHandler[customermodels.Customer, customerdto.CreateCustomerInput]
	customerService *customersvc.CustomerService
}

// NewCustomerHandler creates the customer handler.
func NewCustomerHandler() (*CustomerHandler, error) {
	service, err := customersvc.NewCustomerService()
	if err != nil {
		return nil, err
	}
	h := &CustomerHandler{customerService: service}
	h.BaseService = service
	return h, nil
}

// Create handles POST /customers. Admin-only; the new-customer automation
// trigger runs inside the service.
func (h *CustomerHandler) Create(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actor := common.ActorFromContext(c.Context())
		if !actor.IsAdmin() {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, "Unauthorized", common.StatusForbidden, common.ErrUnauthorized))
			return nil
		}

		var input customerdto.CreateCustomerInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		customer, err := h.customerService.CreateCustomer(c.Context(), customermodels.Customer{
			Email:       input.Email,
			DisplayName: input.DisplayName,
			Phone:       input.Phone,
			Company:     input.Company,
			OrgNumber:   input.OrgNumber,
			Tags:        input.Tags,
		})
		basehdl.HandleResponse(c, customer, err)
		return nil
	})
}

// Update handles PUT /customers/:id. Profile fields only.
func (h *CustomerHandler) Update(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input customerdto.UpdateCustomerInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		set := map[string]interface{}{}
		if input.DisplayName != "" {
			set["displayName"] = input.DisplayName
		}
		if input.Phone != "" {
			set["phone"] = input.Phone
		}
		if input.Company != "" {
			set["company"] = input.Company
		}
		if input.OrgNumber != "" {
			set["orgNumber"] = input.OrgNumber
		}
		if input.Tags != nil {
			set["tags"] = input.Tags
		}

		customer, err := h.customerService.UpdateById(c.Context(), id, basesvc.UpdateData{Set: set})
		basehdl.HandleResponse(c, customer, err)
		return nil
	})
}

// Evaluate handles POST /customers/:id/evaluate: a manual automation run
// with an explicit trigger context. Returns the evaluation whether or not
// the status changed.
func (h *CustomerHandler) Evaluate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actor := common.ActorFromContext(c.Context())
		if !actor.IsAdmin() {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, "Unauthorized", common.StatusForbidden, common.ErrUnauthorized))
			return nil
		}

		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input customerdto.EvaluateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err))
			return nil
		}

		eval, err := h.customerService.DetectStatusChange(c.Context(), id, customersvc.AutomationContext{
			IsNewCustomer: input.IsNewCustomer,
			HasLoggedIn:   input.HasLoggedIn,
			HasNewOrder:   input.HasNewOrder,
		})
		basehdl.HandleResponse(c, eval, err)
		return nil
	})
}

// LoginEvent handles POST /customers/login-event for the acting user: stamps
// the login, records the activity and runs the automation.
func (h *CustomerHandler) LoginEvent(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		actor := common.ActorFromContext(c.Context())
		if actor == nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuth, "Unauthorized", common.StatusUnauthorized, common.ErrUnauthorized))
			return nil
		}

		err := h.customerService.RecordLogin(c.Context(), actor.ID)
		basehdl.HandleResponse(c, fiber.Map{"recorded": err == nil}, err)
		return nil
	})
}

// CreateActivity handles POST /customers/:id/activities.
func (h *CustomerHandler) CreateActivity(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input customerdto.CreateActivityInput
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
		activity := customermodels.Activity{
			CustomerID:  id,
			Type:        input.Type,
			Description: input.Description,
		}
		if actor != nil {
			activity.CreatedBy = actor.ID.Hex()
		}

		created, err := h.customerService.ActivityService().InsertOne(c.Context(), activity)
		basehdl.HandleResponse(c, created, err)
		return nil
	})
}
