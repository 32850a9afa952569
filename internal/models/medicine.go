package models

// Medicine is a catalog entry as the medicine collaborator reports it. Stock
// is the quantity ceiling for add-to-cart and cart increments.
type Medicine struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
	CategoryID  string  `json:"categoryId"`
	SellerID    string  `json:"sellerId"`
	Status      string  `json:"status"`
}

// MedicineFilter carries the shop page's optional query filters.
type MedicineFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Category string `form:"category"`
}

// CreateMedicineRequest is the admin/seller listing payload.
type CreateMedicineRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock" binding:"gte=0"`
	CategoryID  string  `json:"categoryId" binding:"required"`
}

// UpdateMedicineRequest patches a listing; zero values are omitted from the
// outbound patch body.
type UpdateMedicineRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       string   `json:"image,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Status      string   `json:"status,omitempty"`
}
