package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Template string `json:"template" binding:"omitempty,objectid"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signup{Email: "nope", Password: "short", Template: "xyz"})
	d := ToDetails(err)

	assert.Equal(t, "is required", d["name"])
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "must be 8 to 72 characters long", d["password"])
	assert.Contains(t, d, "template")
}

func TestToDetailsAcceptsObjectID(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signup{
		Name: "A", Email: "a@x.com", Password: "longenough", Template: "65f1c0a2b3c4d5e6f7a8b9c0",
	})
	assert.NoError(t, err)
}

func TestToDetailsPayloadErrors(t *testing.T) {
	var se *json.SyntaxError = &json.SyntaxError{}
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(se))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsNamesMistypedField(t *testing.T) {
	var body struct {
		Salary float64 `json:"salary"`
	}
	err := json.Unmarshal([]byte(`{"salary":"lots"}`), &body)

	assert.Equal(t, map[string]string{"salary": "must be a float64"}, ToDetails(err))
}

type sectionsRequest struct {
	Sections []string `json:"sections" binding:"required,dive,max=5"`
}

func TestToDetailsIndexesSliceElements(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&sectionsRequest{Sections: []string{"ok", "far too long"}})

	assert.Equal(t, map[string]string{"sections[1]": "must be at most 5 characters long"}, ToDetails(err))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		tag, param string
		kind       reflect.Kind
		want       string
	}{
		{"required", "", reflect.String, "is required"},
		{"len", "6", reflect.String, "must be exactly 6 characters long"},
		{"gte", "0", reflect.Float64, "must be greater than or equal to 0"},
		{"min", "1", reflect.Slice, "must contain at least 1 items"},
		{"max", "120", reflect.Int, "must be at most 120"},
		{"oneof", "offer rejection", reflect.String, "must be one of: offer, rejection"},
		{"e164", "", reflect.String, "failed e164"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.tag, tt.param, tt.kind))
		})
	}
}
