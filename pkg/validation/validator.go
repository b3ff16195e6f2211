package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the validator behind Gin's binding: errors carry JSON field
// names, and the pwd and objectid aliases become available to request structs.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8,max=72")            // bcrypt input limit
		v.RegisterAlias("objectid", "len=24,hexadecimal") // Mongo ObjectID hex
	}
}

// ToDetails converts binding errors into a field -> message map for the error envelope.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return map[string]string{ute.Field: "must be a " + ute.Type.String()}
	}
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldName(fe)] = Message(fe.Tag(), fe.Param(), fe.Kind())
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

// fieldName keeps the element index for slice entries, e.g. sections[2].
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return ns
}

var fixedMessages = map[string]string{
	"required":    "is required",
	"email":       "must be a valid email",
	"numeric":     "must be numeric",
	"number":      "must be a valid number",
	"hexadecimal": "must be hexadecimal",
	"url":         "must be a valid URL",
	"uuid":        "must be a valid UUID",
	"boolean":     "must be a boolean value",
	"pwd":         "must be 8 to 72 characters long",
	"objectid":    "must be a valid id",
	"unique":      "must contain unique items",
}

// Message renders the message for a single failed tag.
func Message(tag, param string, kind reflect.Kind) string {
	if msg, ok := fixedMessages[tag]; ok {
		return msg
	}
	switch tag {
	case "len":
		if isNumberKind(kind) {
			return "must be exactly " + param
		}
		return "must be exactly " + param + " characters long"
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		if kind == reflect.Slice || kind == reflect.Map {
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		if kind == reflect.Slice || kind == reflect.Map {
			return "must contain at most " + param + " items"
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	}
	if param != "" {
		return "failed " + tag + "=" + param
	}
	return "failed " + tag
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
