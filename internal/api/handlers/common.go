package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmccrea/courtside/internal/espn"
	"github.com/bmccrea/courtside/pkg/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// sendGatewayError maps gateway errors onto the response envelope. Provider
// detail is already logged at the gateway; adapters only signal category.
func sendGatewayError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, espn.ErrNotFound):
		utils.SendNotFound(c, notFoundMsg)
	case errors.Is(err, espn.ErrUnavailable):
		utils.SendUnavailable(c, "League data is currently unavailable")
	default:
		utils.SendInternalError(c, "Failed to fetch league data")
	}
}

// pageParams parses and validates page/page_size query parameters. The false
// return means a validation response has already been sent.
func pageParams(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.SendValidationError(c, "Invalid page", "page must be an integer >= 1")
		return 0, 0, false
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		utils.SendValidationError(c, "Invalid page_size", "page_size must be an integer between 1 and 50")
		return 0, 0, false
	}
	return page, pageSize, true
}

// intQuery parses an optional integer query parameter, returning def when
// absent.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.SendValidationError(c, "Invalid "+name, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// requiredIntQuery parses a mandatory integer query parameter.
func requiredIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		utils.SendValidationError(c, "Missing "+name, name+" is required")
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.SendValidationError(c, "Invalid "+name, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// intParam parses a required integer path parameter.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		utils.SendValidationError(c, "Invalid "+name, name+" must be an integer")
		return 0, false
	}
	return v, true
}
