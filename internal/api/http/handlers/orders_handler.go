package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/store"
)

// OrdersHandler manages order and payment endpoints.
type OrdersHandler struct {
	orders   store.Collection
	payments store.Collection
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders, payments store.Collection) *OrdersHandler {
	return &OrdersHandler{orders: orders, payments: payments}
}

// CreateOrder handles POST /orders. New orders are stamped with the caller's
// identity, a pending status and a creation timestamp.
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}

	doc["user"] = claimDocument(claims)
	doc["status"] = "pending"
	doc["createdAt"] = nowStamp()

	created, err := h.orders.Insert(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return response.OK(c, "Order added successfully", created)
}

// UpdateOrder handles PATCH /orders/:id.
func (h *OrdersHandler) UpdateOrder(c *fiber.Ctx) error {
	patch, err := parseDocument(c)
	if err != nil {
		return err
	}
	return mergeAndRespond(c, h.orders, c.Params("id"), patch, "Order updated successfully")
}

// ListMyOrders handles GET /orders, scoped to the caller's records.
func (h *OrdersHandler) ListMyOrders(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.orders.Find(c.UserContext(), ownerFilter("user", claims.ID))
	if err != nil {
		return err
	}
	return response.OK(c, "Orders fetched successfully", docs)
}

// CreatePayment handles POST /payments.
func (h *OrdersHandler) CreatePayment(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}

	doc["user"] = claimDocument(claims)
	doc["status"] = "pending"
	doc["createdAt"] = nowStamp()

	created, err := h.payments.Insert(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return response.OK(c, "Payment added successfully", created)
}

// UpdatePayment handles PATCH /payments/:id.
func (h *OrdersHandler) UpdatePayment(c *fiber.Ctx) error {
	patch, err := parseDocument(c)
	if err != nil {
		return err
	}
	return mergeAndRespond(c, h.payments, c.Params("id"), patch, "Payment updated successfully")
}

// ListPayments handles GET /payments across all callers.
func (h *OrdersHandler) ListPayments(c *fiber.Ctx) error {
	docs, err := h.payments.Find(c.UserContext(), nil)
	if err != nil {
		return err
	}
	return response.OK(c, "Payments fetched successfully", docs)
}

// ListMyPayments handles GET /payments/my-payments.
func (h *OrdersHandler) ListMyPayments(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.payments.Find(c.UserContext(), ownerFilter("user", claims.ID))
	if err != nil {
		return err
	}
	return response.OK(c, "Payments fetched successfully", docs)
}
