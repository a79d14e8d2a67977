package calc

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field names accepted by UpdateField.
const (
	FieldUnitWeight      = "unitWeight"
	FieldDamHeight       = "damHeight"
	FieldWaterLevel      = "waterLevel"
	FieldCrestWidth      = "crestWidth"
	FieldUpstreamSlope   = "upstreamSlope"
	FieldDownstreamSlope = "downstreamSlope"
	FieldQuestion        = "question"
)

// ErrIncompleteForm is returned by Validate when any dam parameter is empty.
var ErrIncompleteForm = errors.New("Please fill in all fields")

// FieldSpec describes one dam parameter input.
type FieldSpec struct {
	Name        string
	Label       string
	Unit        string
	Placeholder string
}

// Fields lists the six dam parameters in display order.
var Fields = []FieldSpec{
	{Name: FieldUnitWeight, Label: "Unit Weight", Unit: "kg/m³", Placeholder: "Unit Weight (kg/m³)"},
	{Name: FieldDamHeight, Label: "Dam Height", Unit: "m", Placeholder: "Dam Height (m)"},
	{Name: FieldWaterLevel, Label: "Water Level", Unit: "m", Placeholder: "Water Level (m)"},
	{Name: FieldCrestWidth, Label: "Crest Width", Unit: "m", Placeholder: "Crest Width (m)"},
	{Name: FieldUpstreamSlope, Label: "Upstream Slope", Placeholder: "Upstream Slope (1/2H:1V)"},
	{Name: FieldDownstreamSlope, Label: "Downstream Slope", Placeholder: "Downstream Slope (1.5H:1V)"},
}

// Form holds the raw text of the calculation inputs. Values are never
// parsed; the model receives them verbatim.
type Form struct {
	UnitWeight      string `validate:"required"`
	DamHeight       string `validate:"required"`
	WaterLevel      string `validate:"required"`
	CrestWidth      string `validate:"required"`
	UpstreamSlope   string `validate:"required"`
	DownstreamSlope string `validate:"required"`

	// Question is optional free text appended to the prompt.
	Question string
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Value returns the current text of the named field.
func (f Form) Value(name string) string {
	switch name {
	case FieldUnitWeight:
		return f.UnitWeight
	case FieldDamHeight:
		return f.DamHeight
	case FieldWaterLevel:
		return f.WaterLevel
	case FieldCrestWidth:
		return f.CrestWidth
	case FieldUpstreamSlope:
		return f.UpstreamSlope
	case FieldDownstreamSlope:
		return f.DownstreamSlope
	case FieldQuestion:
		return f.Question
	}
	return ""
}

// UpdateField returns a copy of f with one field replaced. Unknown names
// leave the form unchanged.
func (f Form) UpdateField(name, value string) Form {
	switch name {
	case FieldUnitWeight:
		f.UnitWeight = value
	case FieldDamHeight:
		f.DamHeight = value
	case FieldWaterLevel:
		f.WaterLevel = value
	case FieldCrestWidth:
		f.CrestWidth = value
	case FieldUpstreamSlope:
		f.UpstreamSlope = value
	case FieldDownstreamSlope:
		f.DownstreamSlope = value
	case FieldQuestion:
		f.Question = value
	}
	return f
}

// Validate returns ErrIncompleteForm if any dam parameter is empty.
func (f Form) Validate() error {
	if err := formValidator().Struct(f); err != nil {
		return ErrIncompleteForm
	}
	return nil
}

// Complete reports whether the form can be submitted.
func (f Form) Complete() bool {
	return f.Validate() == nil
}
