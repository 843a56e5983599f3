package model

import (
	"fmt"
	"math"
)

// Gender values accepted for a patient record.
var validGenders = []string{"male", "female", "others"}

// PatientAttributes is the persisted shape of a patient record: exactly the six
// stored fields, keyed by patient id in the collection document. The derived
// bmi/verdict pair is computed on serialization and never stored.
type PatientAttributes struct {
	Name   string  `json:"name" gorm:"column:name"`
	City   string  `json:"city" gorm:"column:city"`
	Age    int     `json:"age" gorm:"column:age"`
	Gender string  `json:"gender" gorm:"column:gender"`
	Height float64 `json:"height" gorm:"column:height"`
	Weight float64 `json:"weight" gorm:"column:weight"`
}

// Patient is the create payload: the caller-supplied id plus the stored attributes.
type Patient struct {
	ID string `json:"id" example:"P001"`
	PatientAttributes
}

// PatientView is the serialized form returned by the API: the stored attributes
// plus the derived fields, recomputed from height/weight on every read.
type PatientView struct {
	PatientAttributes
	BMI     float64 `json:"bmi"`
	Verdict string  `json:"verdict"`
}

// ValidationError reports the first field that violated its constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Validate checks every stored attribute against its constraint and fails fast
// on the first violation.
func (a PatientAttributes) Validate() error {
	if a.Name == "" {
		return validationErr("name", "must not be empty")
	}
	if a.City == "" {
		return validationErr("city", "must not be empty")
	}
	if a.Age <= 0 || a.Age >= 120 {
		return validationErr("age", "must be between 1 and 119")
	}
	if !isValidGender(a.Gender) {
		return validationErr("gender", "must be one of male, female, others")
	}
	if a.Height <= 0 {
		return validationErr("height", "must be greater than 0")
	}
	if a.Weight <= 0 {
		return validationErr("weight", "must be greater than 0")
	}
	return nil
}

// Validate checks the id and then the attributes.
func (p Patient) Validate() error {
	if p.ID == "" {
		return validationErr("id", "must not be empty")
	}
	return p.PatientAttributes.Validate()
}

func isValidGender(gender string) bool {
	for _, g := range validGenders {
		if gender == g {
			return true
		}
	}
	return false
}

// BMI computes weight(kg)/height(m)^2 rounded to two decimal places.
// 70.2 kg at 1.75 m yields 22.92.
func BMI(height, weight float64) float64 {
	return math.Round(weight/(height*height)*100) / 100
}

// VerdictFor classifies a BMI value. The bands are right-exclusive and the
// [24.9, 25) range matches none of them, so it falls through to Obese; that
// boundary behavior is load-bearing for compatibility and must not be "fixed".
func VerdictFor(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 24.9:
		return "Normal weight"
	case bmi >= 25 && bmi < 29.9:
		return "Overweight"
	default:
		return "Obese"
	}
}

// View serializes the attributes together with the derived fields.
func (a PatientAttributes) View() PatientView {
	bmi := 0.0
	if a.Height > 0 {
		bmi = BMI(a.Height, a.Weight)
	}
	return PatientView{
		PatientAttributes: a,
		BMI:               bmi,
		Verdict:           VerdictFor(bmi),
	}
}
