package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/store"
	apperrors "github.com/medimart/marketplace-service/pkg/util"
)

// BannersHandler manages advertisement banner endpoints.
type BannersHandler struct {
	banners store.Collection
}

// NewBannersHandler constructs handler.
func NewBannersHandler(banners store.Collection) *BannersHandler {
	return &BannersHandler{banners: banners}
}

// CreateBanner handles POST /banners. The caller is stamped as the seller and
// new banners start active.
func (h *BannersHandler) CreateBanner(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}

	doc["seller"] = claimDocument(claims)
	doc["isActive"] = true
	doc["createdAt"] = nowStamp()

	created, err := h.banners.Insert(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return response.OK(c, "Ad-banner added successfully", created)
}

// UpdateBanner handles PATCH /banners/:id.
func (h *BannersHandler) UpdateBanner(c *fiber.Ctx) error {
	patch, err := parseDocument(c)
	if err != nil {
		return err
	}
	return mergeAndRespond(c, h.banners, c.Params("id"), patch, "Ad-banner updated successfully")
}

// ListBanners handles GET /banners.
func (h *BannersHandler) ListBanners(c *fiber.Ctx) error {
	docs, err := h.banners.Find(c.UserContext(), nil)
	if err != nil {
		return err
	}
	return response.OK(c, "Ad-banners fetched successfully", docs)
}

// ListMyBanners handles GET /banners/my-banners, scoped to the caller.
func (h *BannersHandler) ListMyBanners(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.banners.Find(c.UserContext(), ownerFilter("seller", claims.ID))
	if err != nil {
		return err
	}
	return response.OK(c, "Ad-banners fetched successfully", docs)
}

// DeleteBanner handles DELETE /banners/:id.
func (h *BannersHandler) DeleteBanner(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.banners.FindByID(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("Ad-banner not found")
	}
	if err != nil {
		return err
	}

	if err := h.banners.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.OK(c, "Ad-banner deleted successfully", doc)
}
