package request

import (
	"fmt"
	"strings"

	"github.com/gilboash/printlink/internal/model"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldSelect      FieldType = "select"
	FieldSelectOther FieldType = "select_other"
	FieldMultiTag    FieldType = "multi_tag"
	FieldBudget      FieldType = "budget"
	FieldModelSource FieldType = "model_source"
	FieldShipping    FieldType = "shipping"
)

// FieldSpec describes one form field: key, label, type tag, required flag
// and type-specific metadata. The ordered schema below is the single source
// of truth for validation; any UI renders from the same data.
type FieldSpec struct {
	Key      string             `json:"key"`
	Label    string             `json:"label"`
	Type     FieldType          `json:"type"`
	Required bool               `json:"required"`
	Options  []string           `json:"options,omitempty"`
	Presets  []model.PriceRange `json:"presets,omitempty"`
}

// OtherTag is the free-text fallback entry for tag fields; a suffix may
// follow it, e.g. "Other: glitter".
const OtherTag = "Other"

var requestSchema = []FieldSpec{
	{Key: "title", Label: "Job title", Type: FieldText, Required: true},
	{Key: "material", Label: "Material", Type: FieldSelectOther, Required: true,
		Options: []string{"PLA", "ABS", "PETG", "Resin", OtherTag}},
	{Key: "quantity", Label: "Quantity", Type: FieldNumber, Required: true},
	{Key: "urgency_days", Label: "Days until needed", Type: FieldNumber, Required: true},
	{Key: "description", Label: "Description", Type: FieldText},
	{Key: "price_range", Label: "Budget", Type: FieldBudget, Required: true,
		Presets: []model.PriceRange{
			{Min: 5, Max: 25},
			{Min: 25, Max: 100},
			{Min: 100, Max: 500},
		}},
	{Key: "colors", Label: "Finish colors", Type: FieldMultiTag, Required: true,
		Options: []string{"Black", "White", "Gray", "Red", "Blue", "Green", OtherTag}},
	{Key: "model", Label: "Model source", Type: FieldModelSource, Required: true},
	{Key: "shipping_option", Label: "Delivery", Type: FieldShipping, Required: true,
		Options: []string{string(model.ShippingDelivery), string(model.ShippingPickup)}},
}

// Schema returns the ordered field schema.
func Schema() []FieldSpec {
	out := make([]FieldSpec, len(requestSchema))
	copy(out, requestSchema)
	return out
}

type validateFunc func(spec FieldSpec, form Form) *model.ValidationError

// One validator per field type; adding a type means adding exactly one entry
// here, never another branch in a conditional chain.
var validators = map[FieldType]validateFunc{
	FieldText:        validateText,
	FieldNumber:      validateNumber,
	FieldSelect:      validateSelect,
	FieldSelectOther: validateSelectOther,
	FieldMultiTag:    validateMultiTag,
	FieldBudget:      validateBudget,
	FieldModelSource: validateModelSource,
	FieldShipping:    validateShipping,
}

// ValidateForm walks the schema in order and returns a ValidationError for
// the first unsatisfied field, or nil when the form is acceptable.
func ValidateForm(form Form) error {
	for _, spec := range requestSchema {
		validate, ok := validators[spec.Type]
		if !ok {
			return fmt.Errorf("no validator registered for field type %q", spec.Type)
		}
		if verr := validate(spec, form); verr != nil {
			return verr
		}
	}
	return nil
}

func validateText(spec FieldSpec, form Form) *model.ValidationError {
	if spec.Required && strings.TrimSpace(form.textValue(spec.Key)) == "" {
		return &model.ValidationError{Field: spec.Key, Reason: "required"}
	}
	return nil
}

func validateNumber(spec FieldSpec, form Form) *model.ValidationError {
	if spec.Required && form.numberValue(spec.Key) <= 0 {
		return &model.ValidationError{Field: spec.Key, Reason: "must be positive"}
	}
	return nil
}

func validateSelect(spec FieldSpec, form Form) *model.ValidationError {
	value := form.textValue(spec.Key)
	if value == "" {
		if spec.Required {
			return &model.ValidationError{Field: spec.Key, Reason: "required"}
		}
		return nil
	}
	for _, opt := range spec.Options {
		if value == opt {
			return nil
		}
	}
	return &model.ValidationError{Field: spec.Key, Reason: "unknown option"}
}

func validateSelectOther(spec FieldSpec, form Form) *model.ValidationError {
	// Free-text fallback: any non-empty value is acceptable.
	if spec.Required && strings.TrimSpace(form.textValue(spec.Key)) == "" {
		return &model.ValidationError{Field: spec.Key, Reason: "required"}
	}
	return nil
}

func validateMultiTag(spec FieldSpec, form Form) *model.ValidationError {
	if spec.Required && len(form.Colors) == 0 {
		return &model.ValidationError{Field: spec.Key, Reason: "select at least one"}
	}
	for _, tag := range form.Colors {
		if !knownTag(spec.Options, tag) && !strings.HasPrefix(tag, OtherTag) {
			return &model.ValidationError{Field: spec.Key, Reason: fmt.Sprintf("unknown tag %q", tag)}
		}
	}
	return nil
}

func knownTag(options []string, tag string) bool {
	for _, opt := range options {
		if tag == opt {
			return true
		}
	}
	return false
}

func validateBudget(spec FieldSpec, form Form) *model.ValidationError {
	pr := form.PriceRange
	if pr.Custom {
		if pr.Min <= 0 {
			return &model.ValidationError{Field: spec.Key, Reason: "min must be positive"}
		}
		if pr.Max <= 0 {
			return &model.ValidationError{Field: spec.Key, Reason: "max must be positive"}
		}
		return nil
	}
	if spec.Required && pr.Min == 0 && pr.Max == 0 {
		return &model.ValidationError{Field: spec.Key, Reason: "required"}
	}
	return nil
}

func validateModelSource(spec FieldSpec, form Form) *model.ValidationError {
	switch form.Model.Kind {
	case model.ModelLink:
		if strings.TrimSpace(form.Model.Link) == "" {
			return &model.ValidationError{Field: spec.Key, Reason: "link required"}
		}
	case model.ModelUpload:
		if strings.TrimSpace(form.Model.Upload) == "" {
			return &model.ValidationError{Field: spec.Key, Reason: "upload filename required"}
		}
	case "":
		if spec.Required {
			return &model.ValidationError{Field: spec.Key, Reason: "required"}
		}
	default:
		return &model.ValidationError{Field: spec.Key, Reason: "unknown model source"}
	}
	return nil
}

func validateShipping(spec FieldSpec, form Form) *model.ValidationError {
	switch form.Shipping {
	case model.ShippingDelivery:
		return nil
	case model.ShippingPickup:
		if strings.TrimSpace(form.PickupLocation) == "" {
			return &model.ValidationError{Field: "pickup_location", Reason: "required for pickup"}
		}
		return nil
	case "":
		if spec.Required {
			return &model.ValidationError{Field: spec.Key, Reason: "required"}
		}
		return nil
	default:
		return &model.ValidationError{Field: spec.Key, Reason: "unknown shipping option"}
	}
}
