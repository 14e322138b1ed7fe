// Package affiliatehdl exposes affiliate click tracking endpoints.
package affiliatehdl

import (
	affiliatemodels "b8_shield/internal/api/affiliate/models"
	affiliatesvc "b8_shield/internal/api/affiliate/service"
	basehdl "b8_shield/internal/api/base/handler"
	"b8_shield/internal/common"

	"github.com/gofiber/fiber/v3"
)

// clickInput is the public click payload.
type clickInput struct {
	AffiliateCode string `json:"affiliateCode" validate:"required,no_xss"`
	LandingPage   string `json:"landingPage" validate:"no_xss"`
	Referrer      string `json:"referrer" validate:"no_xss"`
}

// AffiliateHandler handles affiliate HTTP requests.
type AffiliateHandler struct {
	basehdl.BaseHandler[affiliatemodels.AffiliateClick, clickInput]
	clickService *affiliatesvc.ClickService
}

// NewAffiliateHandler creates the affiliate handler.
func NewAffiliateHandler() (*AffiliateHandler, error) {
	service, err := affiliatesvc.NewClickService()
	if err != nil {
		return nil, err
	}
	h := &AffiliateHandler{clickService: service}
	h.BaseService = service
	return h, nil
}

// RecordClick handles POST /affiliate-clicks. Public: called from the
// storefront landing page before any login happens.
func (h *AffiliateHandler) RecordClick(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input clickInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		click, err := h.clickService.RecordClick(c.Context(), affiliatemodels.AffiliateClick{
			AffiliateCode: input.AffiliateCode,
			LandingPage:   input.LandingPage,
			Referrer:      input.Referrer,
			UserAgent:     string(c.Request().Header.UserAgent()),
			IP:            c.IP(),
		})
		basehdl.HandleResponse(c, click, err)
		return nil
	})
}

// Stats handles GET /affiliates/:code/stats.
func (h *AffiliateHandler) Stats(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		code := c.Params("code")
		if code == "" {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "Affiliate code must not be empty", common.StatusBadRequest, nil))
			return nil
		}

		stats, err := h.clickService.StatsByCode(c.Context(), code)
		basehdl.HandleResponse(c, stats, err)
		return nil
	})
}
