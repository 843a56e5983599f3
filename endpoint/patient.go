package endpoint

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ariebrainware/patient-data-api/middleware"
	"github.com/ariebrainware/patient-data-api/model"
	"github.com/ariebrainware/patient-data-api/store"
	"github.com/ariebrainware/patient-data-api/util"
	"github.com/gin-gonic/gin"
)

var sortableFields = []string{"height", "weight", "bmi"}

func recordStore(c *gin.Context) (*store.Store, bool) {
	s := middleware.GetStore(c)
	if s == nil {
		util.CallServerError(c, fmt.Errorf("record store not available"))
		return nil, false
	}
	return s, true
}

func loadCollection(c *gin.Context, s *store.Store) (store.Collection, bool) {
	data, err := s.Load()
	if err != nil {
		util.LogStoreFailure(c.ClientIP(), "load", err)
		util.CallServerError(c, err)
		return nil, false
	}
	return data, true
}

// ListPatients returns the full collection keyed by id, derived fields included.
func ListPatients(c *gin.Context) {
	s, ok := recordStore(c)
	if !ok {
		return
	}
	data, ok := loadCollection(c, s)
	if !ok {
		return
	}

	views := make(map[string]model.PatientView, len(data))
	for id, attrs := range data {
		views[id] = attrs.View()
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: views})
}

// GetPatient returns one record by id.
func GetPatient(c *gin.Context) {
	s, ok := recordStore(c)
	if !ok {
		return
	}
	data, ok := loadCollection(c, s)
	if !ok {
		return
	}

	attrs, found := data[c.Param("id")]
	if !found {
		util.CallErrorNotFound(c, "Patient not found")
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Data: attrs.View()})
}

// sortKey picks the comparison value for one record. A zero height yields a
// BMI key of 0 rather than an infinity, mirroring the historical behavior of
// treating a missing field as 0 instead of excluding the record.
func sortKey(v model.PatientView, field string) float64 {
	switch field {
	case "height":
		return v.Height
	case "weight":
		return v.Weight
	default:
		return v.BMI
	}
}

// SortPatients returns all records ordered by height, weight, or derived bmi.
func SortPatients(c *gin.Context) {
	sortBy := c.Query("sort_by")
	order := c.Query("order")

	if !util.Contains(sortBy, sortableFields) {
		util.CallUserError(c, fmt.Sprintf("Invalid sort field. Select from %v.", sortableFields))
		return
	}
	if order != "asc" && order != "desc" {
		util.CallUserError(c, "Invalid order. Use 'asc' or 'desc'.")
		return
	}

	s, ok := recordStore(c)
	if !ok {
		return
	}
	data, ok := loadCollection(c, s)
	if !ok {
		return
	}

	// Fix the base order by id first so ties are broken the same way on every
	// request, then sort stably by the requested key.
	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	views := make([]model.PatientView, 0, len(ids))
	for _, id := range ids {
		views = append(views, data[id].View())
	}

	sort.SliceStable(views, func(i, j int) bool {
		if order == "desc" {
			return sortKey(views[i], sortBy) > sortKey(views[j], sortBy)
		}
		return sortKey(views[i], sortBy) < sortKey(views[j], sortBy)
	})

	util.CallSuccessOK(c, util.APISuccessParams{Data: views})
}

// CreatePatient validates and inserts a new record under a caller-supplied id.
func CreatePatient(c *gin.Context) {
	var req model.Patient
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		util.CallUserError(c, err.Error())
		return
	}

	s, ok := recordStore(c)
	if !ok {
		return
	}

	err := s.Update(func(data store.Collection) error {
		if _, exists := data[req.ID]; exists {
			return store.ErrDuplicateID
		}
		data[req.ID] = req.PatientAttributes
		return nil
	})
	if errors.Is(err, store.ErrDuplicateID) {
		util.CallUserError(c, "Patient with this ID already exists.")
		return
	}
	if err != nil {
		util.LogStoreFailure(c.ClientIP(), "save", err)
		util.CallServerError(c, err)
		return
	}

	util.LogRecordCreated(req.ID, c.ClientIP(), c.Request.UserAgent())
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Patient added successfully.",
		Data: gin.H{"id": req.ID},
	})
}

// UpdatePatient applies a sparse update to an existing record. The merged
// record is re-validated in full before it is persisted.
func UpdatePatient(c *gin.Context) {
	id := c.Param("id")

	var req model.PatientUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		util.CallUserError(c, err.Error())
		return
	}

	s, ok := recordStore(c)
	if !ok {
		return
	}

	err := s.Update(func(data store.Collection) error {
		existing, found := data[id]
		if !found {
			return store.ErrNotFound
		}
		merged, mergeErr := req.Merge(existing)
		if mergeErr != nil {
			return mergeErr
		}
		data[id] = merged
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		util.CallErrorNotFound(c, "Patient not found.")
		return
	}
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		util.CallUserError(c, validationErr.Error())
		return
	}
	if err != nil {
		util.LogStoreFailure(c.ClientIP(), "save", err)
		util.CallServerError(c, err)
		return
	}

	util.LogRecordUpdated(id, c.ClientIP(), c.Request.UserAgent())
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient updated successfully."})
}

// DeletePatient removes a record by id.
func DeletePatient(c *gin.Context) {
	id := c.Param("id")

	s, ok := recordStore(c)
	if !ok {
		return
	}

	err := s.Update(func(data store.Collection) error {
		if _, found := data[id]; !found {
			return store.ErrNotFound
		}
		delete(data, id)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		util.CallErrorNotFound(c, "Patient not found.")
		return
	}
	if err != nil {
		util.LogStoreFailure(c.ClientIP(), "save", err)
		util.CallServerError(c, err)
		return
	}

	util.LogRecordDeleted(id, c.ClientIP(), c.Request.UserAgent())
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient deleted successfully."})
}
