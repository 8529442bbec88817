package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/response"
	"github.com/stemsi/roomgrid-backend/internal/service"
)

// failWithError maps a service error onto the API error envelope.
func failWithError(c *gin.Context, err error) {
	var schemaErr *ingest.SchemaError
	switch {
	case errors.Is(err, service.ErrTermNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrTermNotFound)
	case errors.Is(err, service.ErrNoActiveTerm):
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveTerm)
	case errors.Is(err, service.ErrBuildingNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrBuildingNotFound)
	case errors.As(err, &schemaErr):
		response.FailWithMessage(c, http.StatusUnprocessableEntity, response.ErrSchema,
			response.GetMessage(response.ErrSchema),
			map[string]string{"missing": strings.Join(schemaErr.Missing, ", ")},
		)
	case errors.Is(err, service.ErrSourceUnavailable):
		response.Fail(c, http.StatusBadGateway, response.ErrSourceUnavailable)
	case errors.Is(err, service.ErrNoSource),
		errors.Is(err, service.ErrCatalogNotLoaded),
		errors.Is(err, ingest.ErrEmptyInput):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrNoDataLoaded)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
