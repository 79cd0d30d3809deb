package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/observability"
	apperrors "github.com/medimart/marketplace-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: request timeout, request
// logging and envelope error conversion. The logger sits outside the error
// middleware so it reads the status after error conversion has written it.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(envelopeErrorMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// envelopeErrorMiddleware is the single point where handler errors become
// response envelopes. Nothing past startup terminates the process; panics are
// recovered into 500 envelopes with a generic message.
func envelopeErrorMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				_ = response.Send(c, response.Envelope{
					Success:    false,
					StatusCode: domainErr.HTTPStatus,
					Message:    domainErr.Message,
				})
				err = nil
			}
		}()
		return c.Next()
	}
}
