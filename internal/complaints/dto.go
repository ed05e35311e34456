package complaints

import (
	"github.com/google/uuid"

	"github.com/craftpress/printshop-backend/pkg/enums"
)

// CreateRequest opens a new complaint, optionally tied to one of the
// caller's orders.
type CreateRequest struct {
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	Subject     string     `json:"subject" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"required,min=10"`
}

// UpdateStatusRequest moves a complaint through triage. Response is the
// staff reply shown to the customer.
type UpdateStatusRequest struct {
	Status   string  `json:"status" validate:"required"`
	Response *string `json:"response,omitempty"`
}

// Filters narrows the admin complaint listing.
type Filters struct {
	Status *enums.ComplaintStatus
}
