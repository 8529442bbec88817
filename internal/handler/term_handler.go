package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roomgrid-backend/internal/response"
	"github.com/stemsi/roomgrid-backend/internal/service"
)

type TermHandler struct {
	catalogService *service.CatalogService
	courseService  *service.CourseService
}

func NewTermHandler(catalogService *service.CatalogService, courseService *service.CourseService) *TermHandler {
	return &TermHandler{catalogService: catalogService, courseService: courseService}
}

// ListTerms godoc
// GET /api/v1/terms
func (h *TermHandler) ListTerms(c *gin.Context) {
	terms, err := h.catalogService.Terms(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"terms": terms})
}

// RefreshTerm godoc
// POST /api/v1/terms/:term/refresh
func (h *TermHandler) RefreshTerm(c *gin.Context) {
	ctx := c.Request.Context()
	term, err := h.catalogService.Term(ctx, c.Param("term"))
	if err != nil {
		failWithError(c, err)
		return
	}

	if err := h.courseService.EnqueueRefresh(ctx, term); err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"message": "refresh queued", "term": term.Code})
}
