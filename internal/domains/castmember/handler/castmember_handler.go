package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/castmember"
	"videocatalog-backend/internal/shared/listing"
	"videocatalog-backend/internal/shared/response"
	"videocatalog-backend/internal/shared/utils"
)

type CastMemberHandler struct {
	service castmember.Service
}

func NewCastMemberHandler(svc castmember.Service) *CastMemberHandler {
	return &CastMemberHandler{service: svc}
}

// Create - POST /v1/cast-members
func (h *CastMemberHandler) Create(c *gin.Context) {
	var req castmember.CreateCastMemberRequest
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

// Index - GET /v1/cast-members?search=&type=&page=&per_page=&sort=&dir=&trashed=
func (h *CastMemberHandler) Index(c *gin.Context) {
	filter := castmember.ListFilter{
		Params: listing.Parse(c.Request.URL.Query(), castmember.SortableColumns),
	}

	if raw := c.Query("type"); raw != "" {
		t, err := strconv.Atoi(raw)
		memberType := castmember.MemberType(t)
		if err != nil || !memberType.Valid() {
			response.BadRequest(c, "type must be 1 (director) or 2 (actor)")
			return
		}
		filter.Type = &memberType
	}

	members, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Collection(c, members, response.NewMeta(total, filter.Page, filter.PerPage))
}

// Show - GET /v1/cast-members/:id
func (h *CastMemberHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cast member id")
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Data(c, http.StatusOK, found)
}

// Update - PUT /v1/cast-members/:id
func (h *CastMemberHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cast member id")
		return
	}

	var req castmember.UpdateCastMemberRequest
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

// Destroy - DELETE /v1/cast-members/:id
func (h *CastMemberHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cast member id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), []uuid.UUID{id}); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// DestroyCollection - DELETE /v1/cast-members?ids=a,b,c
func (h *CastMemberHandler) DestroyCollection(c *gin.Context) {
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

// Restore - POST /v1/cast-members/:id/restore
func (h *CastMemberHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cast member id")
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
	response.Error(c, castmember.GetHTTPStatusCode(err), err.Error())
}
