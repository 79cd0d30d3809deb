package dto

// CreateProductRequest is the one create payload with a fixed field set.
// Other collections accept free-form documents.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	GenericName string  `json:"genericName" validate:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category" validate:"required"`
	Company     string  `json:"company" validate:"required"`
	MassUnit    string  `json:"massUnit" validate:"required"`
	Price       float64 `json:"price" validate:"required"`
	Discount    float64 `json:"discount"`
	SellerEmail string  `json:"sellerEmail"`
}
