package services

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"belediyeBack/internal/cache"
	"belediyeBack/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
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

// validateStruct runs the struct tags of s and converts failures into a
// *models.ValidationError keyed by JSON field path.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &models.ValidationError{}
	for _, fe := range verrs {
		ve.Add(fieldPath(fe), fieldMessage(fe))
	}
	return ve
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must contain at least " + fe.Param() + " items"
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must contain at most " + fe.Param() + " items"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or more"
	case "lte":
		return "must be " + fe.Param() + " or less"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must match the format " + fe.Param()
	case "email":
		return "must be a valid e-mail address"
	case "e164":
		return "must be a phone number in international format"
	case "url":
		return "must be a valid URL"
	case "latitude", "longitude":
		return "must be a valid " + fe.Tag()
	}
	return "is invalid"
}

func now(c clockwork.Clock) time.Time {
	if c == nil {
		return time.Now()
	}
	return c.Now()
}

// windowKey is for public lists whose rows depend on the current time. The list
// is queried at the returned minute and cached under it, so a scheduled row shows
// up at the first minute boundary after it becomes visible.
func windowKey(c clockwork.Clock, entity, kind string, query interface{}) (string, time.Time) {
	at := now(c).UTC().Truncate(time.Minute)
	return cache.QueryKey(entity, kind, query) + ":" + at.Format("200601021504"), at
}

func cacheOrNoop(c cache.Cache) cache.Cache {
	if c == nil {
		return cache.Noop{}
	}
	return c
}

func invalidate(ctx context.Context, c cache.Cache, entities ...string) {
	c = cacheOrNoop(c)
	for _, e := range entities {
		c.Invalidate(ctx, e)
	}
}

// mergePatch applies a JSON merge body onto the loaded record. Fields absent
// from the body keep their stored values.
func mergePatch(dst interface{}, body []byte) error {
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return models.NewValidationError("body", "malformed JSON")
	}
	return nil
}

func toList[T any](items []T, total int) models.List[T] {
	if items == nil {
		items = []T{}
	}
	return models.List[T]{Items: items, Total: total}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
