package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medimart/marketplace-service/internal/api/dto"
	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/auth"
	"github.com/medimart/marketplace-service/internal/store"
	apperrors "github.com/medimart/marketplace-service/pkg/util"
)

// AuthHandler exposes login and profile endpoints.
type AuthHandler struct {
	users  store.Collection
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(users store.Collection, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login handles POST /login. Unknown emails are registered on the spot: the
// payload is inserted as the user record, then re-read before a token is
// issued against it.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	user, err := h.users.FindOneByField(c.UserContext(), "email", req.Email)
	if errors.Is(err, store.ErrNotFound) {
		payload, perr := parseDocument(c)
		if perr != nil {
			return perr
		}
		if _, perr := h.users.Insert(c.UserContext(), payload); perr != nil {
			return perr
		}
		user, err = h.users.FindOneByField(c.UserContext(), "email", req.Email)
	}
	if err != nil {
		return err
	}

	role, _ := user["role"].(string)
	token, _, err := h.tokens.Issue(store.ID(user), req.Email, role)
	if err != nil {
		return err
	}

	return response.OK(c, "Login successful", dto.LoginData{AccessToken: token})
}

// Profile handles GET /profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindOneByField(c.UserContext(), "email", claims.Email)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("User not found")
	}
	if err != nil {
		return err
	}
	return response.OK(c, "Profile retrieved successfully", user)
}

// UpdateUser handles PATCH /users/:id.
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	patch, err := parseDocument(c)
	if err != nil {
		return err
	}
	return mergeAndRespond(c, h.users, c.Params("id"), patch, "User updated successfully")
}
