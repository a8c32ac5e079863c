package middleware

import (
	"context"
	"time"

	"wordlearner/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	authTimeout    = 5 * time.Second
	passwordPrompt = "👋 Hi! This bot is private. Send the password to continue:"
	errorReply     = "Something went wrong. Please try again later."
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
			defer cancel()

			// Ensure user exists
			if err := authService.EnsureUserExists(ctx, userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return deny(c, errorReply)
			}

			// Check authorization
			authorized, err := authService.IsAuthorized(ctx, userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return deny(c, errorReply)
			}

			if !authorized {
				logger.Debug("Unauthorized update rejected", zap.Int64("user_id", userID))
				return deny(c, passwordPrompt)
			}

			return next(c)
		}
	}
}

// deny answers a callback with an alert, anything else with a message
func deny(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
