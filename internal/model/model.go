package model

import "time"

type RequestStatus string

const (
	StatusPending    RequestStatus = "Pending"
	StatusInProgress RequestStatus = "InProgress"
	StatusComplete   RequestStatus = "Complete"
)

type ShippingOption string

const (
	ShippingDelivery ShippingOption = "Shipping"
	ShippingPickup   ShippingOption = "Pickup"
)

type ModelSourceKind string

const (
	ModelLink   ModelSourceKind = "link"
	ModelUpload ModelSourceKind = "upload"
)

// ModelSource is the tagged model-input value: either a link to a hosted
// model or a simulated upload filename.
type ModelSource struct {
	Kind   ModelSourceKind `json:"kind"`
	Link   string          `json:"link,omitempty"`
	Upload string          `json:"upload,omitempty"`
}

// PriceRange is a budget window. Custom marks a user-specified range as
// opposed to a preset; min <= max is intended but not enforced.
type PriceRange struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Custom bool    `json:"custom,omitempty"`
}

// PrintRequest is a submitted print job. Status only moves forward:
// Pending -> InProgress -> Complete. MakerID is set once, on the first
// claim, and never overwritten.
type PrintRequest struct {
	ID             string         `json:"id"`
	RequesterID    string         `json:"requester_id"`
	Title          string         `json:"title"`
	Material       string         `json:"material"`
	Quantity       int            `json:"quantity"`
	UrgencyDays    int            `json:"urgency_days"`
	Description    string         `json:"description,omitempty"`
	PriceRange     PriceRange     `json:"price_range"`
	Colors         []string       `json:"colors"`
	Model          ModelSource    `json:"model"`
	Shipping       ShippingOption `json:"shipping_option"`
	PickupLocation string         `json:"pickup_location,omitempty"`
	Status         RequestStatus  `json:"status"`
	MakerID        string         `json:"maker_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Offer is a maker's bid on a request. Offers are immutable and never
// deleted; a maker may submit any number of them on the same request.
type Offer struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	MakerID   string    `json:"maker_id"`
	Price     float64   `json:"price"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RequestWithOffers is the requester-view projection entry.
type RequestWithOffers struct {
	PrintRequest
	Offers []Offer `json:"offers"`
}

// Identity is a resolved actor. Ephemeral identities are anonymous and
// session-scoped; token-backed identities are persistent.
type Identity struct {
	ID        string `json:"id"`
	Ephemeral bool   `json:"ephemeral"`
}
