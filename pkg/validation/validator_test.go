package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"omitempty,pwd"`
	Role     string  `json:"role" validate:"omitempty,role"`
	Status   string  `json:"status" validate:"omitempty,classstatus"`
	Price    float64 `json:"price" validate:"money"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetails_ValidationErrors(t *testing.T) {
	v := newValidator()

	err := v.Struct(sample{Password: "short", Role: "guest", Status: "archived", Price: -1})

	details := ToDetails(err)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "must be at least 8 characters long", details["password"])
	assert.Equal(t, "must be one of student, instructor, admin", details["role"])
	assert.Equal(t, "must be one of pending, approved, denied", details["status"])
	assert.Equal(t, "must be greater than or equal to 0", details["price"])
}

func TestToDetails_Valid(t *testing.T) {
	v := newValidator()

	err := v.Struct(sample{Email: "u@test.com", Role: "Instructor", Status: "approved", Price: 12.5})

	assert.NoError(t, err)
	assert.Nil(t, ToDetails(err))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var dst sample
	err := json.Unmarshal([]byte(`{"email":`), &dst)

	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
}
