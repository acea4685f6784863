package validators

import (
	"testing"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.CreatePostRequest{Text: "hello"}))

	err := v.Validate(models.CreatePostRequest{})
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))

	err = v.Validate(models.CreateLocalUserRequest{Username: "no spaces!", Email: "x@example.com", Password: "longenough"})
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
}
