// Package handlers binds each HTTP method+path pair to one data operation
// against a named collection. Every outcome leaves through the response
// envelope.
package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"

	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/auth"
	"github.com/medimart/marketplace-service/internal/store"
	apperrors "github.com/medimart/marketplace-service/pkg/util"
)

var validate = validator.New()

// claimDocument embeds the caller's identity into a record, the way orders,
// payments and banners stamp their owner.
func claimDocument(claims *auth.Claims) store.Document {
	doc := store.Document{
		store.IDField: claims.ID,
		"email":       claims.Email,
	}
	if claims.Role != "" {
		doc["role"] = claims.Role
	}
	return doc
}

// requireClaims fetches the authenticated identity placed by the auth gate.
func requireClaims(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Unauthorized access - no token provided")
	}
	return claims, nil
}

// ownerFilter scopes a list to records whose embedded identity under field
// matches the caller.
func ownerFilter(field, id string) store.Filter {
	return store.Filter{field: store.Filter{store.IDField: id}}
}

// parseDocument reads the request body as a free-form document.
func parseDocument(c *fiber.Ctx) (store.Document, error) {
	var doc store.Document
	if err := c.BodyParser(&doc); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if doc == nil {
		doc = store.Document{}
	}
	return doc, nil
}

// mergeAndRespond applies a partial update. Merging into a missing id is a
// no-op that still reports success with null data.
func mergeAndRespond(c *fiber.Ctx, col store.Collection, id string, patch store.Document, message string) error {
	doc, err := col.Merge(c.UserContext(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return response.OK(c, message, nil)
	}
	if err != nil {
		return err
	}
	return response.OK(c, message, doc)
}

// validationError converts validator output into a 400 domain error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.NewValidationError(response.ValidationMessage(verrs))
	}
	return apperrors.NewValidationError("invalid payload")
}

// nowStamp formats creation timestamps the way they are stored.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
