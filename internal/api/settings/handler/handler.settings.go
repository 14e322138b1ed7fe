// Package settingshdl exposes the settings key/value endpoints.
package settingshdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "b8_shield/internal/api/base/handler"
	settingssvc "b8_shield/internal/api/settings/service"
	"b8_shield/internal/common"
	"b8_shield/internal/global"
)

// updateSettingInput is the PUT body.
type updateSettingInput struct {
	Value interface{} `json:"value" validate:"required"`
}

// SettingsHandler handles settings HTTP requests.
type SettingsHandler struct {
	settingsService *settingssvc.SettingsService
}

// NewSettingsHandler creates the settings handler.
func NewSettingsHandler() (*SettingsHandler, error) {
	service, err := settingssvc.NewSettingsService()
	if err != nil {
		return nil, err
	}
	return &SettingsHandler{settingsService: service}, nil
}

// Get handles GET /settings/:key.
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		setting, err := h.settingsService.Get(c.Context(), c.Params("key"))
		basehdl.HandleResponse(c, setting, err)
		return nil
	})
}

// Put handles PUT /settings/:key.
func (h *SettingsHandler) Put(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input updateSettingInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid request body", common.StatusBadRequest, err))
			return nil
		}
		if global.Validate != nil {
			if err := global.Validate.Struct(&input); err != nil {
				basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Invalid input", common.StatusBadRequest, err))
				return nil
			}
		}

		updatedBy := ""
		if actor := common.ActorFromContext(c.Context()); actor != nil {
			updatedBy = actor.ID.Hex()
		}

		setting, err := h.settingsService.Set(c.Context(), c.Params("key"), input.Value, updatedBy)
		basehdl.HandleResponse(c, setting, err)
		return nil
	})
}
