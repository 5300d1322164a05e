package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/middleware"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type paramKind int

const (
	textParam paramKind = iota
	refParam
	// nullableRefParam also accepts "null" to match records without a reference
	nullableRefParam
	// hexParam is an ObjectID kept in its hex form, for the SQL tables
	hexParam
	boolParam
)

// queryFilter maps a query parameter onto the stored field of the same name
type queryFilter struct {
	name string
	kind paramKind
}

func text(name string) queryFilter { return queryFilter{name: name, kind: textParam} }
func ref(name string) queryFilter { return queryFilter{name: name, kind: refParam} }
func nullable(name string) queryFilter { return queryFilter{name: name, kind: nullableRefParam} }
func hex(name string) queryFilter { return queryFilter{name: name, kind: hexParam} }
func flag(name string) queryFilter { return queryFilter{name: name, kind: boolParam} }

// bind decodes the request body into req and runs its validation tags
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// storeError converts repository sentinels into HTTP errors. Anything else is left for
// the error handler to report as a 500.
func storeError(err error, entity string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, entity+" not found")
	case errors.Is(err, repositories.ErrDuplicate):
		return echo.NewHTTPError(http.StatusBadRequest, entity+" already exists")
	}
	return err
}

func conflict(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

// exists reports whether any record matches filter
func exists[T any](c echo.Context, store repositories.Store[T], filter repositories.Filter) (bool, error) {
	_, err := store.FindOne(c.Request().Context(), filter)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	}
	return false, err
}

// listOptions reads the filters and optional page/limit from the query string. Without
// page or limit the whole matching set is returned.
func listOptions(c echo.Context, filters ...queryFilter) (repositories.ListOptions, error) {
	filter := repositories.Filter{}
	for _, f := range filters {
		raw := c.QueryParam(f.name)
		if raw == "" {
			continue
		}
		switch f.kind {
		case refParam, nullableRefParam:
			if f.kind == nullableRefParam && raw == "null" {
				filter[f.name] = nil
				continue
			}
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return repositories.ListOptions{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+f.name)
			}
			filter[f.name] = id
		case hexParam:
			if !primitive.IsValidObjectID(raw) {
				return repositories.ListOptions{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+f.name)
			}
			filter[f.name] = raw
		case boolParam:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return repositories.ListOptions{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+f.name)
			}
			filter[f.name] = b
		default:
			filter[f.name] = raw
		}
	}

	opts := repositories.ListOptions{Filter: filter}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 && limit < 1 {
		return opts, nil
	}
	page, limit = pageBounds(page, limit)
	opts.Skip = int64((page - 1) * limit)
	opts.Limit = int64(limit)
	return opts, nil
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func listRecords[T any](c echo.Context, store repositories.Store[T], filters ...queryFilter) error {
	opts, err := listOptions(c, filters...)
	if err != nil {
		return err
	}
	docs, err := store.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

func getRecord[T any](c echo.Context, store repositories.Store[T], entity string) error {
	doc, err := store.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err, entity)
	}
	return c.JSON(http.StatusOK, doc)
}

// changes turns a bound update request into the fields it sets. Nil pointers are left
// out by their omitempty tags.
func changes(req interface{}) (repositories.Fields, error) {
	raw, err := bson.Marshal(req)
	if err != nil {
		return nil, err
	}
	var fields repositories.Fields
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// updateRecord replaces the fields set in req on the record named by the id path
// parameter and returns the new version
func updateRecord[T any](c echo.Context, store repositories.Store[T], entity string, req interface{}) (*T, error) {
	ctx := c.Request().Context()
	fields, err := changes(req)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		doc, err := store.GetByID(ctx, c.Param("id"))
		if err != nil {
			return nil, storeError(err, entity)
		}
		return doc, nil
	}
	doc, err := store.Update(ctx, c.Param("id"), fields)
	if err != nil {
		return nil, storeError(err, entity)
	}
	return doc, nil
}

func deleteRecord[T any](c echo.Context, store repositories.Store[T], entity string) (*T, error) {
	doc, err := store.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, storeError(err, entity)
	}
	return doc, nil
}

func deleted(c echo.Context, entity string) error {
	return c.JSON(http.StatusOK, echo.Map{"message": entity + " deleted successfully"})
}

// pathID parses an ObjectID path parameter. Malformed ids are reported as not found.
func pathID(c echo.Context, name, entity string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusNotFound, entity+" not found")
	}
	return id, nil
}

// viewerID returns the viewer from the bearer token, falling back to the viewer_id
// query parameter. An anonymous viewer is the zero id.
func viewerID(c echo.Context) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(c.QueryParam("viewer_id"))
	if claims, ok := middleware.ViewerClaims(c); ok {
		raw = claims.UserID
	}
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid viewer_id")
	}
	return id, nil
}
