package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/openfun/joanie-sub003/internal/pkg/response"
)

// listSpec describes how one collection answers list queries: which
// free-text search applies and which structured filter fields exist.
// A query parameter the resource does not declare is rejected with a field error,
// exactly like an out-of-range choice on the real API.
type listSpec[T any] struct {
	search  func(item T, needle string) bool
	filters map[string]func(item T, values []string) bool
}

// listHandler serves a paginated, searchable, filterable collection
// endpoint in the DRF envelope shape.
func listHandler[T any](col *collection[T], spec listSpec[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Request.URL.Query()
		for name := range query {
			if name == "page" || name == "page_size" || name == "search" {
				continue
			}
			if _, known := spec.filters[name]; !known {
				c.JSON(http.StatusBadRequest, gin.H{name: []string{"Unknown filter field."}})
				return
			}
		}

		items := col.List()

		if needle := c.Query("search"); needle != "" && spec.search != nil {
			lowered := strings.ToLower(needle)
			items = keep(items, func(item T) bool { return spec.search(item, lowered) })
		}
		for name, match := range spec.filters {
			values := query[name]
			if len(values) == 0 {
				continue
			}
			items = keep(items, func(item T) bool { return match(item, values) })
		}

		writePage(c, items)
	}
}

// retrieveHandler serves the detail endpoint of a collection.
func retrieveHandler[T any](col *collection[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, found := col.Get(c.Param("id"))
		if !found {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// deleteHandler serves the delete endpoint of a collection.
func deleteHandler[T any](col *collection[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !col.Remove(c.Param("id")) {
			notFound(c)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func keep[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// anyOf reports whether value equals one of the requested filter values.
func anyOf(value string, values []string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// containsFold reports whether haystack contains the already-lowered
// needle, ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// writePage slices items into the requested page and writes the
// {count, next, previous, results} envelope. Page numbers are
// one-based on the wire.
func writePage[T any](c *gin.Context, items []T) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	count := len(items)
	start := (page - 1) * pageSize
	if start > count {
		start = count
	}
	end := start + pageSize
	if end > count {
		end = count
	}

	var next, previous *string
	if end < count {
		u := pageURL(c, page+1)
		next = &u
	}
	if page > 1 {
		u := pageURL(c, page-1)
		previous = &u
	}

	c.JSON(http.StatusOK, response.NewPaginated(items[start:end], count, next, previous))
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	values := u.Query()
	values.Set("page", strconv.Itoa(page))
	u.RawQuery = values.Encode()
	return u.String()
}

// payloadValidator checks write payloads against their validate tags,
// reporting violations under the json field names like the real API.
var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindAndValidate reads the JSON body into payload and validates it.
// On failure the DRF-style error response has already been written and
// false is returned.
func bindAndValidate(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error."})
		return false
	}

	err := payloadValidator.Struct(payload)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid payload."})
		return false
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	c.JSON(http.StatusBadRequest, fields)
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "This field is required."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fe.Value())
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "excluded_with":
		return "This field is not compatible with " + strings.ToLower(fe.Param()) + "."
	case "min", "gt", "gte", "lte", "len":
		return "Ensure this value satisfies the constraint " + fe.Tag() + "=" + fe.Param() + "."
	default:
		return "Enter a valid value."
	}
}
