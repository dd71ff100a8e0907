package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Meta carries pagination info for list responses.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"last_page"`
}

func NewMeta(total int64, page, perPage int) *Meta {
	lastPage := int(total) / perPage
	if int(total)%perPage != 0 || lastPage == 0 {
		lastPage++
	}
	return &Meta{
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		LastPage: lastPage,
	}
}

// Data renders a single-entity envelope: {"data": {...}}.
func Data(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{"data": data})
}

// Collection renders a list envelope: {"data": [...], "meta": {...}}.
func Collection(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": meta,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// IsValidationError reports whether err carries ozzo field errors.
func IsValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}

// ValidationError renders a 422 with a field-keyed message map:
// {"message": "...", "errors": {"name": ["name is required"]}}.
// Falls back to a bare 422 when err is not an ozzo error map.
func ValidationError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for field, fieldErr := range verrs {
			fields[field] = append(fields[field], fieldErr.Error())
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "The given data was invalid.",
			"errors":  fields,
		})
		return
	}

	Error(c, http.StatusUnprocessableEntity, err.Error())
}

// FieldError renders a 422 for a single field, used for relation
// integrity failures (e.g. categories_id referencing a deleted row).
func FieldError(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  map[string][]string{field: {message}},
	})
}
