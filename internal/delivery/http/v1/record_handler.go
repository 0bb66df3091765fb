package v1

import (
	"net/http"
	"strconv"
	"strings"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/usecase"
	"go-jobtracker-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	sessions *SessionStore
	exportUC usecase.ExportUsecase
}

// NewRecordHandler registers the grid endpoints.
func NewRecordHandler(r *gin.RouterGroup, sessions *SessionStore, exportUC usecase.ExportUsecase) {
	handler := &RecordHandler{sessions: sessions, exportUC: exportUC}

	records := r.Group("/records")
	{
		records.GET("", handler.LoadAll)
		records.POST("", handler.Create)
		records.PATCH("/:id", handler.UpdateField)
		records.DELETE("/:id", handler.DeleteRow)
		records.GET("/export", handler.Export)
	}
}

func (h *RecordHandler) session(c *gin.Context) *GridSession {
	userID := c.GetString(string(domain.KeyUserID))
	credential := c.GetString(string(domain.KeyCredential))
	return h.sessions.Get(userID, credential)
}

// LoadAll godoc
// @Summary      Load all applications
// @Description  Full reload of the user's applications ordered by application date (newest first, undated last)
// @Tags         records
// @Produce      json
// @Param        page       query  int  false  "Page number (pagination is a read-only view of the loaded set)"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response{data=[]domain.ApplicationRecord}
// @Failure      401  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /records [get]
// @Security     BearerAuth
func (h *RecordHandler) LoadAll(c *gin.Context) {
	sess := h.session(c)

	rows, err := sess.Engine.LoadAll(c.Request.Context())
	if err != nil {
		sess.Buffer.Drain()
		c.Error(err)
		return
	}
	deltas := sess.Buffer.Drain()

	if pageStr := c.Query("page"); pageStr != "" {
		page, _ := strconv.Atoi(pageStr)
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		result := paginate(rows, page, pageSize)
		response.SuccessWithDeltas(c, http.StatusOK, "Applications loaded", result, deltas)
		return
	}

	response.SuccessWithDeltas(c, http.StatusOK, "Applications loaded", rows, deltas)
}

// Create godoc
// @Summary      Create an application row
// @Description  Empty body adds a blank row with defaults; a reviewed-extraction payload creates a populated row. The id is assigned by the store.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body  map[string]interface{}  false  "Reviewed field values"
// @Success      201  {object}  response.Response{data=domain.ApplicationRecord}
// @Failure      401  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /records [post]
// @Security     BearerAuth
func (h *RecordHandler) Create(c *gin.Context) {
	sess := h.session(c)

	var fields map[string]any
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.Error(apperror.BadRequest("Invalid request body"))
			return
		}
	}

	var (
		rec *domain.ApplicationRecord
		err error
	)
	if len(fields) == 0 {
		rec, err = sess.Engine.CreateBlank(c.Request.Context())
	} else {
		rec, err = sess.Engine.CreateFromReviewed(c.Request.Context(), fields)
	}
	if err != nil {
		sess.Buffer.Drain()
		c.Error(err)
		return
	}
	deltas := sess.Buffer.Drain()

	payload := gin.H{"record": rec}
	if len(fields) == 0 {
		// Blank rows go straight into edit mode on the first editable field.
		payload["focus_field"] = domain.FieldCompany
	}
	response.SuccessWithDeltas(c, http.StatusCreated, "Application added", payload, deltas)
}

// UpdateField godoc
// @Summary      Update fields of an application
// @Description  Partial update for one committed cell edit. The displayed value is kept even if the remote write fails; reload to reconcile.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Record ID"
// @Param        body  body  map[string]interface{}  true  "Changed fields"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /records/{id} [patch]
// @Security     BearerAuth
func (h *RecordHandler) UpdateField(c *gin.Context) {
	sess := h.session(c)
	id := c.Param("id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	if len(fields) == 0 {
		c.Error(apperror.BadRequest("No fields to update"))
		return
	}

	if err := sess.Engine.UpdateField(c.Request.Context(), id, fields); err != nil {
		sess.Buffer.Drain()
		c.Error(err)
		return
	}
	deltas := sess.Buffer.Drain()

	response.SuccessWithDeltas(c, http.StatusOK, "Saved", nil, deltas)
}

// DeleteRow godoc
// @Summary      Delete an application
// @Description  Removes the row remotely and locally. Confirmation is the caller's job.
// @Tags         records
// @Produce      json
// @Param        id  path  string  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /records/{id} [delete]
// @Security     BearerAuth
func (h *RecordHandler) DeleteRow(c *gin.Context) {
	sess := h.session(c)
	id := c.Param("id")

	if err := sess.Engine.DeleteRow(c.Request.Context(), id); err != nil {
		sess.Buffer.Drain()
		c.Error(err)
		return
	}
	deltas := sess.Buffer.Drain()

	response.SuccessWithDeltas(c, http.StatusOK, "Application deleted", nil, deltas)
}

// Export godoc
// @Summary      Export the displayed applications
// @Description  Renders the currently loaded collection as CSV or XLSX. A pure projection: nothing is fetched or mutated.
// @Tags         records
// @Produce      application/octet-stream
// @Param        format   query  string  false  "csv or xlsx (default xlsx)"
// @Param        columns  query  string  false  "Comma-separated column subset"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /records/export [get]
// @Security     BearerAuth
func (h *RecordHandler) Export(c *gin.Context) {
	sess := h.session(c)

	req := usecase.ExportRequest{Format: c.Query("format")}
	if cols := c.Query("columns"); cols != "" {
		req.Columns = splitColumns(cols)
	}

	data, filename, err := h.exportUC.Export(c.Request.Context(), sess.Engine.Snapshot(), req)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if req.Format == "csv" {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func paginate(rows []domain.ApplicationRecord, page, pageSize int) domain.PaginatedResult[domain.ApplicationRecord] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	total := len(rows)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	return domain.PaginatedResult[domain.ApplicationRecord]{
		Data:       rows[start:end],
		Total:      int64(total),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func splitColumns(raw string) []string {
	var out []string
	for _, col := range strings.Split(raw, ",") {
		if col = strings.TrimSpace(col); col != "" {
			out = append(out, col)
		}
	}
	return out
}
