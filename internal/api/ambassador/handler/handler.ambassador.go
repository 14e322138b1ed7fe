// Package ambassadorhdl exposes the ambassador module endpoints: contacts,
// activities and the trigger dashboard.
package ambassadorhdl

import (
	"time"

	ambassadordto "b8_shield/internal/api/ambassador/dto"
	ambassadormodels "b8_shield/internal/api/ambassador/models"
	ambassadorsvc "b8_shield/internal/api/ambassador/service"
	basehdl "b8_shield/internal/api/base/handler"
	"b8_shield/internal/common"

	"github.com/gofiber/fiber/v3"
)

// AmbassadorHandler handles ambassador HTTP requests.
type AmbassadorHandler struct {
	basehdl.BaseHandler[ambassadormodels.Contact, ambassadordto.CreateContactInput]
	dashboardService *ambassadorsvc.DashboardService
}

// NewAmbassadorHandler creates the ambassador handler.
func NewAmbassadorHandler() (*AmbassadorHandler, error) {
	dashboard, err := ambassadorsvc.NewDashboardService()
	if err != nil {
		return nil, err
	}
	h := &AmbassadorHandler{dashboardService: dashboard}
	h.BaseService = dashboard.ContactService()
	return h, nil
}

func toPlatforms(in map[string]ambassadordto.PlatformInput) map[string]ambassadormodels.Platform {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]ambassadormodels.Platform, len(in))
	for name, p := range in {
		out[name] = ambassadormodels.Platform{
			Handle:      p.Handle,
			Followers:   p.Followers,
			Subscribers: p.Subscribers,
			URL:         p.URL,
		}
	}
	return out
}

// Create handles POST /ambassadors.
func (h *AmbassadorHandler) Create(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input ambassadordto.CreateContactInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		contact, err := h.dashboardService.ContactService().CreateContact(c.Context(), ambassadormodels.Contact{
			Name:      input.Name,
			Email:     input.Email,
			Phone:     input.Phone,
			Platforms: toPlatforms(input.Platforms),
			Tags:      input.Tags,
			Notes:     input.Notes,
		})
		basehdl.HandleResponse(c, contact, err)
		return nil
	})
}

// Update handles PUT /ambassadors/:id.
func (h *AmbassadorHandler) Update(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input ambassadordto.UpdateContactInput
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
		if input.Name != "" {
			set["name"] = input.Name
		}
		if input.Email != "" {
			set["email"] = input.Email
		}
		if input.Phone != "" {
			set["phone"] = input.Phone
		}
		if input.Status != "" {
			set["status"] = input.Status
		}
		if input.Notes != "" {
			set["notes"] = input.Notes
		}
		if input.Tags != nil {
			set["tags"] = ambassadorsvc.MergeTags(input.Tags)
		}
		if platforms := toPlatforms(input.Platforms); platforms != nil {
			set["platforms"] = platforms
		}

		contact, err := h.dashboardService.ContactService().UpdateContact(c.Context(), id, set)
		basehdl.HandleResponse(c, contact, err)
		return nil
	})
}

// Activate handles POST /ambassadors/:id/activate. One-way.
func (h *AmbassadorHandler) Activate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		contact, err := h.dashboardService.ContactService().Activate(c.Context(), id)
		basehdl.HandleResponse(c, contact, err)
		return nil
	})
}

// CreateActivity handles POST /ambassadors/:id/activities. Tags are merged
// from explicit tags and the description text.
func (h *AmbassadorHandler) CreateActivity(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input ambassadordto.CreateActivityInput
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
		activity := ambassadormodels.AmbassadorActivity{
			ContactID:    id,
			Type:         input.Type,
			Description:  input.Description,
			Tags:         input.Tags,
			Priority:     input.Priority,
			FollowUpDate: input.FollowUpDate,
		}
		if actor != nil {
			activity.CreatedBy = actor.ID.Hex()
		}

		created, err := h.dashboardService.RecordActivity(c.Context(), activity)
		basehdl.HandleResponse(c, created, err)
		return nil
	})
}

// ListActivities handles GET /ambassadors/:id/activities.
func (h *AmbassadorHandler) ListActivities(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		activities, err := h.dashboardService.ActivityService().FindByContact(c.Context(), id)
		basehdl.HandleResponse(c, activities, err)
		return nil
	})
}

// DeleteActivity handles DELETE /ambassadors/activities/:id. Activities are
// deleted independently of their contact.
func (h *AmbassadorHandler) DeleteActivity(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		err = h.dashboardService.ActivityService().DeleteById(c.Context(), id)
		basehdl.HandleResponse(c, fiber.Map{"deleted": err == nil}, err)
		return nil
	})
}

// Triggers handles GET /ambassadors/triggers: the scored, gated attention
// list for the dashboard.
func (h *AmbassadorHandler) Triggers(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		results, err := h.dashboardService.Triggers(c.Context(), time.Now())
		basehdl.HandleResponse(c, results, err)
		return nil
	})
}

// Dashboard handles GET /ambassadors/dashboard: status counts plus the
// trigger list in one payload.
func (h *AmbassadorHandler) Dashboard(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		summary, err := h.dashboardService.Dashboard(c.Context(), time.Now())
		basehdl.HandleResponse(c, summary, err)
		return nil
	})
}
