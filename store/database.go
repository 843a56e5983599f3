package store

import (
	"github.com/ariebrainware/patient-data-api/model"
	"gorm.io/gorm"
)

// patientRow is the relational projection of one collection entry.
type patientRow struct {
	PatientID string `gorm:"column:patient_id;primaryKey;type:varchar(64)"`
	model.PatientAttributes
}

func (patientRow) TableName() string {
	return "patient_records"
}

// DatabaseBackend keeps the collection in a gorm-managed table while exposing
// the same whole-document Load/Save contract as the file backend. MySQL in
// production, in-memory SQLite under APPENV=test.
type DatabaseBackend struct {
	db *gorm.DB
}

// NewDatabaseBackend migrates the patient_records table and returns the backend.
func NewDatabaseBackend(db *gorm.DB) (*DatabaseBackend, error) {
	if err := db.AutoMigrate(&patientRow{}); err != nil {
		return nil, err
	}
	return &DatabaseBackend{db: db}, nil
}

func (d *DatabaseBackend) Load() (Collection, error) {
	var rows []patientRow
	if err := d.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	data := make(Collection, len(rows))
	for _, row := range rows {
		data[row.PatientID] = row.PatientAttributes
	}
	return data, nil
}

// Save rewrites the table to match data in one transaction, keeping
// whole-collection granularity.
func (d *DatabaseBackend) Save(data Collection) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&patientRow{}).Error; err != nil {
			return err
		}
		for id, attrs := range data {
			row := patientRow{PatientID: id, PatientAttributes: attrs}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
