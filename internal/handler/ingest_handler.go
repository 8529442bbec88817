package handler

import (
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roomgrid-backend/internal/ingest"
	"github.com/stemsi/roomgrid-backend/internal/model"
	"github.com/stemsi/roomgrid-backend/internal/response"
	"github.com/stemsi/roomgrid-backend/internal/validator"
)

// maxUploadBytes caps a previewed CSV body.
const maxUploadBytes = 16 << 20

const defaultPreviewLimit = 50

type IngestHandler struct{}

func NewIngestHandler() *IngestHandler {
	return &IngestHandler{}
}

// PreviewCSV godoc
// POST /api/v1/ingest/csv?delimiter=;&offset=0&limit=50
//
// Normalizes an uploaded CSV export without storing it and returns a window
// of the parsed courses together with the parse counters.
func (h *IngestHandler) PreviewCSV(c *gin.Context) {
	var q model.IngestQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FailWithFields(c, http.StatusRequestEntityTooLarge, response.ErrInvalidPayload,
				map[string]string{"body": "request body too large"})
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	if !utf8.Valid(body) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload,
			map[string]string{"body": "body must be UTF-8 text"})
		return
	}

	opts := ingest.CSVOptions{}
	if q.Delimiter != "" {
		opts.Delimiter, _ = utf8.DecodeRuneInString(q.Delimiter)
	}

	res, err := ingest.NormalizeCSVWith(string(body), opts)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyInput) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"body": "no header row found"})
			return
		}
		failWithError(c, err)
		return
	}

	limit := q.Limit
	if limit == 0 {
		limit = defaultPreviewLimit
	}
	start := min(q.Offset, len(res.Courses))
	end := min(start+limit, len(res.Courses))

	response.SuccessWithPagination(c, http.StatusOK, gin.H{
		"courses":   res.Courses[start:end],
		"stats":     res.Stats,
		"locations": len(res.Locations()),
	}, &response.Pagination{Offset: start, Limit: limit, TotalItems: len(res.Courses)})
}
