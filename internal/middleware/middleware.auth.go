// Package middleware - request authentication for the admin console API.
package middleware

import (
	"strings"
	"sync"

	basehdl "b8_shield/internal/api/base/handler"
	customersvc "b8_shield/internal/api/customer/service"
	"b8_shield/internal/common"
	"b8_shield/internal/logger"
	"b8_shield/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

var (
	customerServiceInstance *customersvc.CustomerService
	customerServiceOnce     sync.Once
)

func getCustomerService() *customersvc.CustomerService {
	customerServiceOnce.Do(func() {
		service, err := customersvc.NewCustomerService()
		if err != nil {
			panic(err)
		}
		customerServiceInstance = service
	})
	return customerServiceInstance
}

// Auth verifies the Firebase ID token from the Authorization header, loads
// the linked account and stores the actor in the request context. When
// adminOnly is set, non-admin actors are rejected.
func Auth(adminOnly bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Missing Authorization header")
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthToken, "Missing Authorization header", common.StatusUnauthorized, common.ErrUnauthorized))
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthToken, "Authorization header must be a Bearer token", common.StatusUnauthorized, common.ErrUnauthorized))
			return nil
		}

		token, err := utility.VerifyIDToken(c.Context(), parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("[AUTH] Token verification failed")
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthToken, "Invalid or expired token", common.StatusUnauthorized, common.ErrUnauthorized))
			return nil
		}

		customer, err := getCustomerService().FindByFirebaseUID(c.Context(), token.UID)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthCredentials, "No account linked to this token", common.StatusUnauthorized, common.ErrUnauthorized))
			return nil
		}

		actor := &common.Actor{
			ID:          customer.ID,
			FirebaseUID: customer.FirebaseUID,
			Email:       customer.Email,
			DisplayName: customer.DisplayName,
			Role:        customer.Role,
		}

		if adminOnly && !actor.IsAdmin() {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthRole, "Unauthorized", common.StatusForbidden, common.ErrUnauthorized))
			return nil
		}

		c.Locals("actor", actor)
		c.SetContext(common.SetActorToContext(c.Context(), actor))
		return c.Next()
	}
}
