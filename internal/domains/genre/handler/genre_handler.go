package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/genre"
	"videocatalog-backend/internal/shared/listing"
	"videocatalog-backend/internal/shared/response"
	"videocatalog-backend/internal/shared/utils"
)

type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(svc genre.Service) *GenreHandler {
	return &GenreHandler{service: svc}
}

// Create - POST /v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req genre.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Data(c, http.StatusCreated, created)
}

// Index - GET /v1/genres?search=&is_active=&categories=&page=&per_page=&sort=&dir=&trashed=
func (h *GenreHandler) Index(c *gin.Context) {
	filter := genre.ListFilter{
		Params: listing.Parse(c.Request.URL.Query(), genre.SortableColumns),
	}

	isActive, err := utils.ParseBoolPtr(c.Query("is_active"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.IsActive = isActive

	if raw := c.Query("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Categories = append(filter.Categories, part)
			}
		}
	}

	genres, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Collection(c, genres, response.NewMeta(total, filter.Page, filter.PerPage))
}

// Show - GET /v1/genres/:id
func (h *GenreHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Data(c, http.StatusOK, found)
}

// Update - PUT /v1/genres/:id
func (h *GenreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	var req genre.UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Data(c, http.StatusOK, updated)
}

// Destroy - DELETE /v1/genres/:id
func (h *GenreHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), []uuid.UUID{id}); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// DestroyCollection - DELETE /v1/genres?ids=a,b,c
func (h *GenreHandler) DestroyCollection(c *gin.Context) {
	ids, err := utils.ParseUUIDList(c.Query("ids"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if len(ids) == 0 {
		response.BadRequest(c, "ids is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), ids); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// Restore - POST /v1/genres/:id/restore
func (h *GenreHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	if err := h.service.Restore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

func respondError(c *gin.Context, err error) {
	if response.IsValidationError(err) {
		response.ValidationError(c, err)
		return
	}
	response.Error(c, genre.GetHTTPStatusCode(err), err.Error())
}
