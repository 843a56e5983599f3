package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAttributes() PatientAttributes {
	return PatientAttributes{
		Name:   "Hazel Grace",
		City:   "New York",
		Age:    30,
		Gender: "female",
		Height: 1.75,
		Weight: 70.2,
	}
}

func TestPatientAttributes_ValidateOK(t *testing.T) {
	assert.NoError(t, validAttributes().Validate())
}

func TestPatientAttributes_ValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PatientAttributes)
		field  string
	}{
		{"empty name", func(a *PatientAttributes) { a.Name = "" }, "name"},
		{"empty city", func(a *PatientAttributes) { a.City = "" }, "city"},
		{"zero age", func(a *PatientAttributes) { a.Age = 0 }, "age"},
		{"negative age", func(a *PatientAttributes) { a.Age = -5 }, "age"},
		{"age 120", func(a *PatientAttributes) { a.Age = 120 }, "age"},
		{"unknown gender", func(a *PatientAttributes) { a.Gender = "unknown" }, "gender"},
		{"empty gender", func(a *PatientAttributes) { a.Gender = "" }, "gender"},
		{"zero height", func(a *PatientAttributes) { a.Height = 0 }, "height"},
		{"negative height", func(a *PatientAttributes) { a.Height = -1.6 }, "height"},
		{"zero weight", func(a *PatientAttributes) { a.Weight = 0 }, "weight"},
		{"negative weight", func(a *PatientAttributes) { a.Weight = -70 }, "weight"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attrs := validAttributes()
			tc.mutate(&attrs)

			err := attrs.Validate()
			assert.Error(t, err)

			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestPatientAttributes_ValidateFailsFast(t *testing.T) {
	// Multiple violations report only the first field in declaration order.
	attrs := PatientAttributes{}
	err := attrs.Validate()

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
}

func TestPatient_ValidateRequiresID(t *testing.T) {
	p := Patient{PatientAttributes: validAttributes()}
	err := p.Validate()

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "id", vErr.Field)

	p.ID = "P001"
	assert.NoError(t, p.Validate())
}

func TestPatient_ValidateAgeBounds(t *testing.T) {
	p := Patient{ID: "P001", PatientAttributes: validAttributes()}

	p.Age = 1
	assert.NoError(t, p.Validate())

	p.Age = 119
	assert.NoError(t, p.Validate())
}

func TestBMI_ReferenceValue(t *testing.T) {
	assert.Equal(t, 22.92, BMI(1.75, 70.2))
}

func TestBMI_RoundsToTwoDecimals(t *testing.T) {
	assert.Equal(t, 24.22, BMI(1.80, 78.48)) // 24.2222...
	assert.Equal(t, 30.86, BMI(1.80, 100.0)) // 30.8641...
}

func TestVerdictFor_Bands(t *testing.T) {
	cases := []struct {
		bmi     float64
		verdict string
	}{
		{10, "Underweight"},
		{18.49, "Underweight"},
		{18.5, "Normal weight"},
		{22.92, "Normal weight"},
		{24.89, "Normal weight"},
		{25, "Overweight"},
		{29.89, "Overweight"},
		{29.9, "Obese"},
		{35, "Obese"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.verdict, VerdictFor(tc.bmi), "bmi %v", tc.bmi)
	}
}

func TestVerdictFor_BoundaryGap(t *testing.T) {
	// Values in [24.9, 25) belong to no named band and fall through to Obese.
	// This matches the long-standing classification table and must stay put.
	assert.Equal(t, "Obese", VerdictFor(24.9))
	assert.Equal(t, "Obese", VerdictFor(24.95))
	assert.Equal(t, "Obese", VerdictFor(24.99))
}

func TestView_DerivesFields(t *testing.T) {
	view := validAttributes().View()

	assert.Equal(t, 22.92, view.BMI)
	assert.Equal(t, "Normal weight", view.Verdict)
	assert.Equal(t, "Hazel Grace", view.Name)
}

func TestView_ZeroHeightKeysToZero(t *testing.T) {
	// A hand-edited document can carry a zero height; the view must not
	// produce an infinite BMI.
	attrs := validAttributes()
	attrs.Height = 0

	view := attrs.View()
	assert.Equal(t, 0.0, view.BMI)
}

func TestView_JSONShape(t *testing.T) {
	raw, err := json.Marshal(validAttributes().View())
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	for _, key := range []string{"name", "city", "age", "gender", "height", "weight", "bmi", "verdict"} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "id")
}

func TestPatientAttributes_JSONExcludesDerived(t *testing.T) {
	raw, err := json.Marshal(validAttributes())
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "bmi")
	assert.NotContains(t, decoded, "verdict")
	assert.Len(t, decoded, 6)
}
