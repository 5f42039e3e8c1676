package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/apperrors"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBindError_FieldMessages(t *testing.T) {
	Register()

	req := models.RegisterRequest{
		FirstName: "Ruth",
		Email:     "not-an-email",
		Password:  "short",
	}
	err := binding.Validator.ValidateStruct(&req)
	require.Error(t, err)

	appErr := FromBindError(err)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "is required", appErr.Fields["lastName"])
	assert.Equal(t, "must be a valid email address", appErr.Fields["email"])
	assert.Equal(t, "must be at least 8 characters", appErr.Fields["password"])
	assert.NotContains(t, appErr.Fields, "firstName")
}

func TestFromBindError_SliceLimit(t *testing.T) {
	Register()

	interests := make([]string, 21)
	for i := range interests {
		interests[i] = "prayer"
	}
	err := binding.Validator.ValidateStruct(&models.UpdateInterestsRequest{Interests: interests})
	require.Error(t, err)

	appErr := FromBindError(err)
	assert.Equal(t, "must contain at most 20 items", appErr.Fields["interests"])
}

func TestFromBindError_Malformed(t *testing.T) {
	appErr := FromBindError(errors.New("unexpected EOF"))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "Invalid request body", appErr.Message)
	assert.Empty(t, appErr.Fields)
}
