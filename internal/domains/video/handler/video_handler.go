package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"videocatalog-backend/internal/domains/video"
	"videocatalog-backend/internal/shared/listing"
	"videocatalog-backend/internal/shared/response"
	"videocatalog-backend/internal/shared/utils"
)

type VideoHandler struct {
	service video.Service
}

func NewVideoHandler(svc video.Service) *VideoHandler {
	return &VideoHandler{service: svc}
}

// bindAttributes fills the attribute bag from either a JSON body or a
// multipart form. Files only arrive via multipart.
func bindAttributes(c *gin.Context, attrs *video.VideoAttributes) error {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		return c.ShouldBindJSON(attrs)
	}

	attrs.Title = c.PostForm("title")
	attrs.Description = c.PostForm("description")

	if raw := c.PostForm("year_launched"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return errInvalidField("year_launched")
		}
		attrs.YearLaunched = year
	}

	if raw := c.PostForm("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			return errInvalidField("duration")
		}
		attrs.Duration = duration
	}

	if raw := c.PostForm("opened"); raw != "" {
		opened, err := strconv.ParseBool(raw)
		if err != nil {
			return errInvalidField("opened")
		}
		attrs.Opened = &opened
	}

	attrs.Rating = video.Rating(c.PostForm("rating"))

	var err error
	if attrs.CategoriesID, err = formUUIDList(c, "categories_id"); err != nil {
		return err
	}
	if attrs.GenresID, err = formUUIDList(c, "genres_id"); err != nil {
		return err
	}
	if attrs.CastMembers, err = formUUIDList(c, "cast_members_id"); err != nil {
		return err
	}

	for _, field := range video.FileFields {
		fh, err := c.FormFile(field)
		if err != nil {
			continue
		}
		switch field {
		case video.FieldThumbFile:
			attrs.ThumbFile = fh
		case video.FieldBannerFile:
			attrs.BannerFile = fh
		case video.FieldTrailerFile:
			attrs.TrailerFile = fh
		case video.FieldVideoFile:
			attrs.VideoFile = fh
		}
	}

	return nil
}

// formUUIDList reads an id list posted either as repeated fields
// (name, name[]) or as one comma-separated value.
func formUUIDList(c *gin.Context, field string) ([]uuid.UUID, error) {
	values := c.PostFormArray(field)
	if len(values) == 0 {
		values = c.PostFormArray(field + "[]")
	}
	if len(values) == 1 && strings.Contains(values[0], ",") {
		ids, err := utils.ParseUUIDList(values[0])
		if err != nil {
			return nil, errInvalidField(field)
		}
		return ids, nil
	}

	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, errInvalidField(field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type invalidFieldError struct{ field string }

func (e invalidFieldError) Error() string { return "invalid value for " + e.field }

func errInvalidField(field string) error { return invalidFieldError{field: field} }

// Create - POST /v1/videos
func (h *VideoHandler) Create(c *gin.Context) {
	var req video.CreateVideoRequest
	if err := bindAttributes(c, &req.VideoAttributes); err != nil {
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

// Index - GET /v1/videos?search=&categories=&genres=&page=&per_page=&sort=&dir=&trashed=
func (h *VideoHandler) Index(c *gin.Context) {
	filter := video.ListFilter{
		Params: listing.Parse(c.Request.URL.Query(), video.SortableColumns),
	}

	var err error
	if filter.Categories, err = utils.ParseUUIDList(c.Query("categories")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if filter.Genres, err = utils.ParseUUIDList(c.Query("genres")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	videos, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Collection(c, videos, response.NewMeta(total, filter.Page, filter.PerPage))
}

// Show - GET /v1/videos/:id
func (h *VideoHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Data(c, http.StatusOK, found)
}

// Update - PUT /v1/videos/:id
func (h *VideoHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req video.UpdateVideoRequest
	if err := bindAttributes(c, &req.VideoAttributes); err != nil {
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

// Destroy - DELETE /v1/videos/:id
func (h *VideoHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), []uuid.UUID{id}); err != nil {
		respondError(c, err)
		return
	}

	response.NoContent(c)
}

// DestroyCollection - DELETE /v1/videos?ids=a,b,c
func (h *VideoHandler) DestroyCollection(c *gin.Context) {
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

// Restore - POST /v1/videos/:id/restore
func (h *VideoHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid video id")
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
	response.Error(c, video.GetHTTPStatusCode(err), err.Error())
}
