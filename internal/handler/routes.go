package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

// pathID parses a positive integer path parameter. On failure it writes the
// 400 response itself and reports false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: name, Message: "must be a valid integer > 0"}}))
		return 0, false
	}
	return id, true
}

// pageQuery reads limit/offset. Atoi errors are ignored intentionally, as 0 is a
// valid default for limit/offset, handled by the service layer.
func pageQuery(c *gin.Context) repository.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return repository.Page{Limit: limit, Offset: offset}
}

func intQuery(c *gin.Context, name string, ferrs []service.FieldError) (*int, []service.FieldError) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ferrs
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, append(ferrs, service.FieldError{Field: name, Message: "must be an integer"})
	}
	return &v, ferrs
}

func floatQuery(c *gin.Context, name string, ferrs []service.FieldError) (*float64, []service.FieldError) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ferrs
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, append(ferrs, service.FieldError{Field: name, Message: "must be a finite number"})
	}
	return &v, ferrs
}

// malformedBody is returned when the request body is not decodable JSON.
func malformedBody(err error) error {
	return service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "malformed JSON: " + err.Error()}})
}
