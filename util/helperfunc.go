package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the success envelope: {status, message} for mutations and
// {status, data} for reads.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// APIError is the failure envelope shared by every error status.
type APIError struct {
	Detail string `json:"detail"`
}

// APISuccessParams carries the optional message/data of a success response.
type APISuccessParams struct {
	Msg  string
	Data interface{}
}

// Contains function is to check item whether is exist or not in a list and will return bool
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

// CallSuccessOK returns a 200 success envelope with the given message and/or data.
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: params.Msg,
		Data:    params.Data,
	})
}

// CallSuccessCreated returns a 201 success envelope, used by record creation.
func CallSuccessCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Message: params.Msg,
		Data:    params.Data,
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, APIError{Detail: detail})
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, APIError{Detail: detail})
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, APIError{Detail: err.Error()})
}
