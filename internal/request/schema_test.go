package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilboash/printlink/internal/model"
)

func validForm() Form {
	return Form{
		Title:       "Replacement bracket",
		Material:    "PLA",
		Quantity:    2,
		UrgencyDays: 7,
		PriceRange:  model.PriceRange{Min: 5, Max: 25},
		Colors:      []string{"Black"},
		Model:       model.ModelSource{Kind: model.ModelLink, Link: "https://example.com/bracket.stl"},
		Shipping:    model.ShippingDelivery,
	}
}

func TestValidateFormAcceptsValidForm(t *testing.T) {
	assert.NoError(t, ValidateForm(validForm()))
}

func TestValidateFormFirstFailingField(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(f *Form)
		expectedField string
	}{
		{
			name:          "missing title",
			mutate:        func(f *Form) { f.Title = "   " },
			expectedField: "title",
		},
		{
			name:          "missing material",
			mutate:        func(f *Form) { f.Material = "" },
			expectedField: "material",
		},
		{
			name:          "custom material is accepted",
			mutate:        func(f *Form) { f.Material = "Nylon carbon fiber" },
			expectedField: "",
		},
		{
			name:          "zero quantity",
			mutate:        func(f *Form) { f.Quantity = 0 },
			expectedField: "quantity",
		},
		{
			name:          "negative urgency",
			mutate:        func(f *Form) { f.UrgencyDays = -1 },
			expectedField: "urgency_days",
		},
		{
			name:          "description is optional",
			mutate:        func(f *Form) { f.Description = "" },
			expectedField: "",
		},
		{
			name:          "empty budget",
			mutate:        func(f *Form) { f.PriceRange = model.PriceRange{} },
			expectedField: "price_range",
		},
		{
			name:          "custom budget with zero min",
			mutate:        func(f *Form) { f.PriceRange = model.PriceRange{Custom: true, Max: 50} },
			expectedField: "price_range",
		},
		{
			name:          "custom budget with zero max",
			mutate:        func(f *Form) { f.PriceRange = model.PriceRange{Custom: true, Min: 5} },
			expectedField: "price_range",
		},
		{
			name:          "valid custom budget",
			mutate:        func(f *Form) { f.PriceRange = model.PriceRange{Custom: true, Min: 5, Max: 50} },
			expectedField: "",
		},
		{
			name:          "no colors",
			mutate:        func(f *Form) { f.Colors = nil },
			expectedField: "colors",
		},
		{
			name:          "unknown color tag",
			mutate:        func(f *Form) { f.Colors = []string{"Chartreuse"} },
			expectedField: "colors",
		},
		{
			name:          "other color with suffix is accepted",
			mutate:        func(f *Form) { f.Colors = []string{"Black", "Other: glitter"} },
			expectedField: "",
		},
		{
			name:          "missing model source",
			mutate:        func(f *Form) { f.Model = model.ModelSource{} },
			expectedField: "model",
		},
		{
			name:          "link model without link",
			mutate:        func(f *Form) { f.Model = model.ModelSource{Kind: model.ModelLink} },
			expectedField: "model",
		},
		{
			name:          "upload model without filename",
			mutate:        func(f *Form) { f.Model = model.ModelSource{Kind: model.ModelUpload} },
			expectedField: "model",
		},
		{
			name:          "upload model with filename",
			mutate:        func(f *Form) { f.Model = model.ModelSource{Kind: model.ModelUpload, Upload: "bracket.stl"} },
			expectedField: "",
		},
		{
			name:          "missing shipping option",
			mutate:        func(f *Form) { f.Shipping = "" },
			expectedField: "shipping_option",
		},
		{
			name:          "unknown shipping option",
			mutate:        func(f *Form) { f.Shipping = "Teleport" },
			expectedField: "shipping_option",
		},
		{
			name:          "pickup without location",
			mutate:        func(f *Form) { f.Shipping = model.ShippingPickup },
			expectedField: "pickup_location",
		},
		{
			name: "pickup with location",
			mutate: func(f *Form) {
				f.Shipping = model.ShippingPickup
				f.PickupLocation = "Makerspace, 5th Ave"
			},
			expectedField: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			err := ValidateForm(form)
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.expectedField, verr.Field)
		})
	}
}

func TestValidateFormReportsFirstFailureOnly(t *testing.T) {
	// Title precedes quantity in the schema, so a form broken in both
	// places reports the title.
	form := validForm()
	form.Title = ""
	form.Quantity = 0

	var verr *model.ValidationError
	require.ErrorAs(t, ValidateForm(form), &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestSchemaIsACopy(t *testing.T) {
	schema := Schema()
	require.NotEmpty(t, schema)
	schema[0].Key = "mutated"

	assert.Equal(t, "title", Schema()[0].Key)
}
