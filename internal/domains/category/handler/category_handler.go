package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/category"
	"videocatalog-backend/internal/shared/listing"
	"videocatalog-backend/internal/shared/response"
	"videocatalog-backend/internal/shared/utils"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// Create - POST /v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
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

// Index - GET /v1/categories?search=&page=&per_page=&sort=&dir=&is_active=&genres=&trashed=
func (h *CategoryHandler) Index(c *gin.Context) {
	filter := category.ListFilter{
		Params: listing.Parse(c.Request.URL.Query(), category.SortableColumns),
	}

	isActive, err := utils.ParseBoolPtr(c.Query("is_active"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.IsActive = isActive

	genres, err := utils.ParseUUIDList(c.Query("genres"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	filter.Genres = genres

	categories, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Collection(c, categories, response.NewMeta(total, filter.Page, filter.PerPage))
}

// Show - GET /v1/categories/:id
func (h *CategoryHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Data(c, http.StatusOK, found)
}

// Update - PUT /v1/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req category.UpdateCategoryRequest
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

// Destroy - DELETE /v1/categories/:id
func (h *CategoryHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), []uuid.UUID{id}); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// DestroyCollection - DELETE /v1/categories?ids=a,b,c
func (h *CategoryHandler) DestroyCollection(c *gin.Context) {
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

// Restore - POST /v1/categories/:id/restore
func (h *CategoryHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
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
	response.Error(c, category.GetHTTPStatusCode(err), err.Error())
}
