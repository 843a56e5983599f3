package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/patient-data-api/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEndpointCallLogger_EmitsAuditEvent(t *testing.T) {
	var buf bytes.Buffer
	prev := util.GetAuditLoggerForTest()
	util.SetAuditLoggerForTest(log.New(&buf, "[AUDIT] ", 0))
	t.Cleanup(func() { util.SetAuditLoggerForTest(prev) })

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(EndpointCallLogger())
	r.GET("/patients/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/patients/P001", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "ENDPOINT_CALL")
	assert.Contains(t, out, "PatientID=P001")
	assert.Contains(t, out, "GET /patients/P001 -> 200")
}
