package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ariebrainware/patient-data-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of audit events
type AuditEventType string

const (
	EventEndpointCall       AuditEventType = "ENDPOINT_CALL"
	EventRecordCreated      AuditEventType = "RECORD_CREATED"
	EventRecordUpdated      AuditEventType = "RECORD_UPDATED"
	EventRecordDeleted      AuditEventType = "RECORD_DELETED"
	EventStoreFailure       AuditEventType = "STORE_FAILURE"
	EventRateLimitExceeded  AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity AuditEventType = "SUSPICIOUS_ACTIVITY"
)

// AuditEvent represents an audit event to be logged
type AuditEvent struct {
	EventType AuditEventType
	PatientID string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var auditLogger *log.Logger
var auditDB *gorm.DB

// SetAuditLoggerDB sets a gorm DB instance used by the audit logger.
// Call this during application startup after DB initialization; when the
// service runs on the file or redis store driver it is never called and
// events only go to stdout.
func SetAuditLoggerDB(db *gorm.DB) {
	auditDB = db
}

func init() {
	auditLogger = log.New(os.Stdout, "[AUDIT] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent logs an audit event to stdout and, when a DB is configured,
// persists it best-effort without ever failing the request.
func LogAuditEvent(event AuditEvent) {
	msg := fmt.Sprintf("Event=%s PatientID=%s IP=%s UserAgent=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.PatientID),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.UserAgent),
		sanitizeLogValue(event.Message),
	)

	if len(event.Details) > 0 {
		// Don't log Details map directly to avoid injection; log the count instead.
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	auditLogger.Println(msg)

	if auditDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	// Attempt to resolve city/country for the IP (best-effort, local DB then cache)
	city, country := GetIPLocation(event.IP)
	var location string
	switch {
	case city != "" && country != "":
		location = fmt.Sprintf("%s/%s", city, country)
	case country != "":
		location = country
	case city != "":
		location = city
	}

	entry := model.AuditLog{
		EventType: string(event.EventType),
		PatientID: sanitizeLogValue(event.PatientID),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(location),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}

	// best-effort write; ignore errors but log them
	if err := auditDB.Create(&entry).Error; err != nil {
		auditLogger.Printf("Failed to persist audit event: %v", err)
	}
}

// LogRecordCreated logs a successful record creation
func LogRecordCreated(patientID, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRecordCreated,
		PatientID: patientID,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Patient record created",
	})
}

// LogRecordUpdated logs a record update
func LogRecordUpdated(patientID, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRecordUpdated,
		PatientID: patientID,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Patient record updated",
	})
}

// LogRecordDeleted logs a record deletion
func LogRecordDeleted(patientID, ip, userAgent string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRecordDeleted,
		PatientID: patientID,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "Patient record deleted",
	})
}

// LogStoreFailure logs a record store I/O or format failure
func LogStoreFailure(ip, operation string, err error) {
	LogAuditEvent(AuditEvent{
		EventType: EventStoreFailure,
		IP:        ip,
		Message:   fmt.Sprintf("Store %s failed: %v", operation, err),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// GetAuditLoggerForTest returns the current audit logger for testing purposes
func GetAuditLoggerForTest() *log.Logger {
	return auditLogger
}

// SetAuditLoggerForTest sets a custom logger for testing purposes
func SetAuditLoggerForTest(logger *log.Logger) {
	auditLogger = logger
}
