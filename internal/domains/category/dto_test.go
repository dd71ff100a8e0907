package category

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCategoryRequest
		wantErr string // field key expected in the validation error map
	}{
		{
			name: "valid minimal",
			req:  CreateCategoryRequest{Name: "test"},
		},
		{
			name:    "missing name",
			req:     CreateCategoryRequest{},
			wantErr: "name",
		},
		{
			name:    "name too long",
			req:     CreateCategoryRequest{Name: strings.Repeat("a", 256)},
			wantErr: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.wantErr)
		})
	}
}
