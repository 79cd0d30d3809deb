package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/medimart/marketplace-service/internal/api/response"
	"github.com/medimart/marketplace-service/internal/store"
	apperrors "github.com/medimart/marketplace-service/pkg/util"
)

// RentalsHandler manages the car-rental endpoints: cars and bookings.
type RentalsHandler struct {
	cars     store.Collection
	bookings store.Collection
}

// NewRentalsHandler constructs handler.
func NewRentalsHandler(cars, bookings store.Collection) *RentalsHandler {
	return &RentalsHandler{cars: cars, bookings: bookings}
}

// CreateCar handles POST /cars. The caller is stamped as the owner.
func (h *RentalsHandler) CreateCar(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}

	doc["owner"] = claimDocument(claims)
	doc["createdAt"] = nowStamp()

	created, err := h.cars.Insert(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return response.OK(c, "Car added successfully", created)
}

// ListCars handles GET /cars.
func (h *RentalsHandler) ListCars(c *fiber.Ctx) error {
	docs, err := h.cars.Find(c.UserContext(), nil)
	if err != nil {
		return err
	}
	return response.OK(c, "Cars fetched successfully", docs)
}

// GetCar handles GET /cars/:id.
func (h *RentalsHandler) GetCar(c *fiber.Ctx) error {
	doc, err := h.cars.FindByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("Car not found")
	}
	if err != nil {
		return err
	}
	return response.OK(c, "Car fetched successfully", doc)
}

// UpdateCar handles PATCH /cars/:id.
func (h *RentalsHandler) UpdateCar(c *fiber.Ctx) error {
	patch, err := parseDocument(c)
	if err != nil {
		return err
	}
	return mergeAndRespond(c, h.cars, c.Params("id"), patch, "Car updated successfully")
}

// DeleteCar handles DELETE /cars/:id.
func (h *RentalsHandler) DeleteCar(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.cars.FindByID(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("Car not found")
	}
	if err != nil {
		return err
	}

	if err := h.cars.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.OK(c, "Car deleted successfully", doc)
}

// ListMyCars handles GET /my-cars, scoped to the caller's cars.
func (h *RentalsHandler) ListMyCars(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.cars.Find(c.UserContext(), ownerFilter("owner", claims.ID))
	if err != nil {
		return err
	}
	return response.OK(c, "Cars fetched successfully", docs)
}

// CreateBooking handles POST /bookings. New bookings are stamped with the
// caller's identity, a pending status and a creation timestamp.
func (h *RentalsHandler) CreateBooking(c *fiber.Ctx) error {
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

	created, err := h.bookings.Insert(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return response.OK(c, "Booking added successfully", created)
}

// ListMyBookings handles GET /bookings, scoped to the caller's records.
func (h *RentalsHandler) ListMyBookings(c *fiber.Ctx) error {
	claims, err := requireClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.bookings.Find(c.UserContext(), ownerFilter("user", claims.ID))
	if err != nil {
		return err
	}
	return response.OK(c, "Bookings fetched successfully", docs)
}

// UpdateBooking handles PATCH /bookings/:id.
func (h *RentalsHandler) UpdateBooking(c *fiber.Ctx) error {
	patch, err := parseDocument(c)
	if err != nil {
		return err
	}
	return mergeAndRespond(c, h.bookings, c.Params("id"), patch, "Booking updated successfully")
}

// DeleteBooking handles DELETE /bookings/:id.
func (h *RentalsHandler) DeleteBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.bookings.FindByID(c.UserContext(), id)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound("Booking not found")
	}
	if err != nil {
		return err
	}

	if err := h.bookings.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return response.OK(c, "Booking deleted successfully", doc)
}
