package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

func TestValidateSuccess(t *testing.T) {
	v := validation.New()

	req := registerRequest{
		Username: "book.lover_99",
		Email:    "reader@example.com",
		Password: "password123",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       registerRequest
		wantField string
	}{
		{
			name: "missing username",
			req: registerRequest{
				Email:    "reader@example.com",
				Password: "password123",
			},
			wantField: "username",
		},
		{
			name: "username with forbidden characters",
			req: registerRequest{
				Username: "not ok!",
				Email:    "reader@example.com",
				Password: "password123",
			},
			wantField: "username",
		},
		{
			name: "invalid email",
			req: registerRequest{
				Username: "reader",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantField: "email",
		},
		{
			name: "password too short",
			req: registerRequest{
				Username: "reader",
				Email:    "reader@example.com",
				Password: "short",
			},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var derr *domainerrors.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, domainerrors.CodeValidation, derr.Code)
			assert.Contains(t, derr.Details, tt.wantField)
		})
	}
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{Username: "reader", Password: "password123"})
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, derr.Details, "email")
	assert.NotContains(t, derr.Details, "Email")
}
