package util

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	fields := []string{"height", "weight", "bmi"}

	assert.True(t, Contains("bmi", fields))
	assert.False(t, Contains("age", fields))
	assert.False(t, Contains("", fields))
}

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.ReleaseMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	return c, rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestCallSuccessOK_WithData(t *testing.T) {
	c, rr := testContext()
	CallSuccessOK(c, APISuccessParams{Data: map[string]string{"P001": "x"}})

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "success", body["status"])
	assert.NotContains(t, body, "message")
	assert.Contains(t, body, "data")
}

func TestCallSuccessOK_WithMessage(t *testing.T) {
	c, rr := testContext()
	CallSuccessOK(c, APISuccessParams{Msg: "Patient updated successfully."})

	body := decode(t, rr)
	assert.Equal(t, "Patient updated successfully.", body["message"])
	assert.NotContains(t, body, "data")
}

func TestCallSuccessCreated(t *testing.T) {
	c, rr := testContext()
	CallSuccessCreated(c, APISuccessParams{Msg: "Patient added successfully."})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "success", decode(t, rr)["status"])
}

func TestErrorHelpers_UseDetailEnvelope(t *testing.T) {
	c, rr := testContext()
	CallErrorNotFound(c, "Patient not found")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, map[string]interface{}{"detail": "Patient not found"}, decode(t, rr))

	c, rr = testContext()
	CallUserError(c, "Invalid order. Use 'asc' or 'desc'.")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid order. Use 'asc' or 'desc'.", decode(t, rr)["detail"])

	c, rr = testContext()
	CallServerError(c, fmt.Errorf("disk unavailable"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "disk unavailable", decode(t, rr)["detail"])
}
