// ABOUTME: Client-side form validation built on go-playground/validator.
// ABOUTME: Failures carry per-field messages and never reach the network.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/2389-research/inkwell/internal/render"
	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("richtext", func(fl validator.FieldLevel) bool {
		return !render.IsEmptyContent(fl.Field().String())
	})
}

// tagMessages are generic messages used when a field has no specific one.
var tagMessages = map[string]string{
	"required": "The field '%s' is required.",
	"email":    "The field '%s' must be a valid email address.",
	"min":      "The field '%s' must be at least %s characters long.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"url":      "The field '%s' must be a valid URL.",
	"eqfield":  "The field '%s' must match %s.",
	"richtext": "The field '%s' is required.",
}

// fieldMessages override tagMessages per field.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Full name is required",
		"max":      "Name must be under 100 characters",
	},
	"email": {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
	},
	"subject": {
		"required": "Subject is required",
		"max":      "Subject must be under 200 characters",
	},
	"message": {
		"required": "Message is required",
		"max":      "Message must be under 5000 characters",
	},
	"title": {
		"required": "Title is required",
		"max":      "Title must be under 200 characters",
	},
	"content": {
		"required": "Content is required",
		"richtext": "Content is required",
	},
	"coverImage": {
		"url": "Cover image must be a valid URL",
	},
	"username": {
		"required": "Username is required",
	},
	"bio": {
		"max": "Bio must be under 500 characters",
	},
	"text": {
		"required": "Comment cannot be empty",
		"max":      "Comment must be under 1000 characters",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters",
	},
	"confirmPassword": {
		"eqfield": "Passwords do not match",
	},
}

// Error is a client-side validation failure.
type Error struct {
	// Fields maps a form field to its message.
	Fields map[string]string
	order  []string
}

func (e *Error) Error() string {
	if len(e.order) == 0 {
		return "invalid input"
	}
	return e.Fields[e.order[0]]
}

// Field returns the message for name, or "".
func (e *Error) Field(name string) string {
	return e.Fields[name]
}

// Messages returns every message in form order.
func (e *Error) Messages() []string {
	out := make([]string, 0, len(e.order))
	for _, f := range e.order {
		out = append(out, e.Fields[f])
	}
	return out
}

func newError() *Error {
	return &Error{Fields: map[string]string{}}
}

func (e *Error) add(field, msg string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = msg
	e.order = append(e.order, field)
}

func (e *Error) orNil() error {
	if len(e.order) == 0 {
		return nil
	}
	return e
}

func message(fe validator.FieldError) string {
	if msgs, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := msgs[fe.Tag()]; ok {
			return msg
		}
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, fe.Field(), fe.Param())
		}
		return fmt.Sprintf(msg, fe.Field())
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", fe.Field(), fe.Tag())
}

// check validates s and returns a *Error, or nil.
func check(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := newError()
	for _, fe := range verrs {
		out.add(fe.Field(), message(fe))
	}
	return out.orNil()
}
