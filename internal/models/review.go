package models

import "time"

// Review is a customer review as the review collaborator reports it.
type Review struct {
	ID         string    `json:"id"`
	MedicineID string    `json:"medicineId"`
	CustomerID string    `json:"customerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateReviewRequest is the customer review payload.
type CreateReviewRequest struct {
	MedicineID string `json:"medicineId" binding:"required"`
	Rating     int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    string `json:"comment"`
}

// UpdateReviewRequest patches a review's rating or comment.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating,omitempty" binding:"omitempty,gte=1,lte=5"`
	Comment string `json:"comment,omitempty"`
}
