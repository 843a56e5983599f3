package model

// PatientUpdate is a sparse override set for an existing record. Nil fields mean
// "leave unchanged"; JSON nulls decode to nil and are treated the same way.
type PatientUpdate struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// Validate applies the per-field constraints to the fields that are present.
// Absent fields are skipped, not defaulted.
func (u PatientUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return validationErr("name", "must not be empty")
	}
	if u.City != nil && *u.City == "" {
		return validationErr("city", "must not be empty")
	}
	if u.Age != nil && (*u.Age <= 0 || *u.Age >= 120) {
		return validationErr("age", "must be between 1 and 119")
	}
	if u.Gender != nil && !isValidGender(*u.Gender) {
		return validationErr("gender", "must be one of male, female, others")
	}
	if u.Height != nil && *u.Height <= 0 {
		return validationErr("height", "must be greater than 0")
	}
	if u.Weight != nil && *u.Weight <= 0 {
		return validationErr("weight", "must be greater than 0")
	}
	return nil
}

// Merge overlays the present fields onto existing and re-validates the complete
// merged record, untouched fields included. Re-running the full validator is
// what rejects a merge that leaves the record inconsistent, and it keeps the
// derived fields a pure function of the merged height/weight.
func (u PatientUpdate) Merge(existing PatientAttributes) (PatientAttributes, error) {
	merged := existing
	if u.Name != nil {
		merged.Name = *u.Name
	}
	if u.City != nil {
		merged.City = *u.City
	}
	if u.Age != nil {
		merged.Age = *u.Age
	}
	if u.Gender != nil {
		merged.Gender = *u.Gender
	}
	if u.Height != nil {
		merged.Height = *u.Height
	}
	if u.Weight != nil {
		merged.Weight = *u.Weight
	}
	if err := merged.Validate(); err != nil {
		return PatientAttributes{}, err
	}
	return merged, nil
}
