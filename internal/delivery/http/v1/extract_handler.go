package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ExtractHandler struct {
	extractor domain.Extractor
}

// NewExtractHandler registers the posting-extraction endpoints.
func NewExtractHandler(r *gin.RouterGroup, extractor domain.Extractor, limiter gin.HandlerFunc) {
	handler := &ExtractHandler{extractor: extractor}

	extract := r.Group("/extract")
	extract.Use(limiter)
	{
		extract.POST("/url", handler.FromURL)
		extract.POST("/parse", handler.FromText)
	}
}

type extractURLRequest struct {
	URL string `json:"url" binding:"required"`
}

type extractTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// FromURL godoc
// @Summary      Extract fields from a posting URL
// @Description  Fetches the page and returns a best-effort field mapping for review. Nothing is persisted.
// @Tags         extract
// @Accept       json
// @Produce      json
// @Param        body  body  extractURLRequest  true  "Posting URL"
// @Success      200  {object}  response.Response{data=domain.ExtractedFields}
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /extract/url [post]
// @Security     BearerAuth
func (h *ExtractHandler) FromURL(c *gin.Context) {
	var req extractURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing 'url' field"))
		return
	}

	fields, err := h.extractor.ExtractFromURL(c.Request.Context(), req.URL)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Fields extracted", fields)
}

// FromText godoc
// @Summary      Extract fields from pasted posting text
// @Description  Parses raw posting text the user pasted and returns a best-effort field mapping for review.
// @Tags         extract
// @Accept       json
// @Produce      json
// @Param        body  body  extractTextRequest  true  "Posting text"
// @Success      200  {object}  response.Response{data=domain.ExtractedFields}
// @Failure      400  {object}  response.Response
// @Router       /extract/parse [post]
// @Security     BearerAuth
func (h *ExtractHandler) FromText(c *gin.Context) {
	var req extractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Missing 'text' field"))
		return
	}

	fields, err := h.extractor.ParseText(c.Request.Context(), req.Text)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Fields extracted", fields)
}
