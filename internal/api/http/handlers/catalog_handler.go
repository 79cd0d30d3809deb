package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medimart/marketplace-service/internal/api/dto"
	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/cache"
	"github.com/medimart/marketplace-service/internal/store"
	apperrors "github.com/medimart/marketplace-service/pkg/util"
)

// CatalogHandler manages category and product endpoints.
type CatalogHandler struct {
	categories store.Collection
	products   store.Collection
	cache      *cache.Cache
	logger     *zap.Logger
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(categories, products store.Collection, listCache *cache.Cache, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{categories: categories, products: products, cache: listCache, logger: logger}
}

// CreateCategory handles POST /categories. Category names are unique;
// duplicates are rejected with 403, the code deployed clients expect.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}
	name, _ := doc["name"].(string)
	if name == "" {
		return apperrors.NewValidationError("field name is required")
	}

	_, err = h.categories.FindOneByField(c.UserContext(), "name", name)
	if err == nil {
		return apperrors.NewConflict("Already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	created, err := h.categories.Insert(c.UserContext(), doc)
	if err != nil {
		return err
	}
	h.invalidateCategories(c)
	return response.OK(c, "Category created successfully", created)
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	if docs, err := h.cache.GetCategories(c.UserContext()); err == nil {
		return response.OK(c, "Categories fetched successfully", docs)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		h.logger.Warn("category cache read failed", zap.Error(err))
	}

	docs, err := h.categories.Find(c.UserContext(), nil)
	if err != nil {
		return err
	}
	if err := h.cache.SetCategories(c.UserContext(), docs); err != nil {
		h.logger.Warn("category cache write failed", zap.Error(err))
	}
	return response.OK(c, "Categories fetched successfully", docs)
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.categories.FindByID(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("Category not found")
	}
	if err != nil {
		return err
	}

	if err := h.categories.Delete(c.UserContext(), id); err != nil {
		return err
	}
	h.invalidateCategories(c)
	return response.OK(c, "Category deleted successfully", doc)
}

func (h *CatalogHandler) invalidateCategories(c *fiber.Ctx) {
	if err := h.cache.InvalidateCategories(c.UserContext()); err != nil {
		h.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}

// CreateProduct handles POST /products.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(err)
	}

	doc := store.Document{
		"name":        req.Name,
		"genericName": req.GenericName,
		"description": req.Description,
		"image":       req.Image,
		"category":    req.Category,
		"company":     req.Company,
		"massUnit":    req.MassUnit,
		"price":       req.Price,
		"discount":    req.Discount,
		"createdAt":   nowStamp(),
	}
	if req.SellerEmail != "" {
		doc["sellerEmail"] = req.SellerEmail
	}

	created, err := h.products.Insert(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return response.OK(c, "Medicine added successfully", created)
}

// ListProducts handles GET /products with an optional seller email filter.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var filter store.Filter
	if email := c.Query("email"); email != "" {
		filter = store.Filter{"sellerEmail": email}
	}

	docs, err := h.products.Find(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return response.OK(c, "Medicines fetched successfully", docs)
}

// GetProduct handles GET /products/:id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	doc, err := h.products.FindByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("Product not found")
	}
	if err != nil {
		return err
	}
	return response.OK(c, "Product fetched successfully", doc)
}

// UpdateProduct handles PATCH /products/:id.
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	patch, err := parseDocument(c)
	if err != nil {
		return err
	}
	return mergeAndRespond(c, h.products, c.Params("id"), patch, "Product updated successfully")
}

// DeleteProduct handles DELETE /products/:id.
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.products.FindByID(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("Product not found")
	}
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.OK(c, "Product deleted successfully", doc)
}
