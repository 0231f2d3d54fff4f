package request

import "github.com/gilboash/printlink/internal/model"

// Form carries the raw values of a request submission, keyed by the field
// schema. Validation happens in ValidateForm before anything is persisted.
type Form struct {
	Title          string               `json:"title"`
	Material       string               `json:"material"`
	Quantity       int                  `json:"quantity"`
	UrgencyDays    int                  `json:"urgency_days"`
	Description    string               `json:"description"`
	PriceRange     model.PriceRange     `json:"price_range"`
	Colors         []string             `json:"colors"`
	Model          model.ModelSource    `json:"model"`
	Shipping       model.ShippingOption `json:"shipping_option"`
	PickupLocation string               `json:"pickup_location"`
}

func (f Form) textValue(key string) string {
	switch key {
	case "title":
		return f.Title
	case "material":
		return f.Material
	case "description":
		return f.Description
	}
	return ""
}

func (f Form) numberValue(key string) int {
	switch key {
	case "quantity":
		return f.Quantity
	case "urgency_days":
		return f.UrgencyDays
	}
	return 0
}
