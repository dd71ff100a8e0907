package castmember

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberTypeValid(t *testing.T) {
	assert.True(t, TypeDirector.Valid())
	assert.True(t, TypeActor.Valid())
	assert.False(t, MemberType(0).Valid())
	assert.False(t, MemberType(3).Valid())
}

func TestCreateCastMemberRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCastMemberRequest
		wantErr string
	}{
		{
			name: "valid director",
			req:  CreateCastMemberRequest{Name: "John Ford", Type: TypeDirector},
		},
		{
			name: "valid actor",
			req:  CreateCastMemberRequest{Name: "Anna", Type: TypeActor},
		},
		{
			name:    "missing name",
			req:     CreateCastMemberRequest{Type: TypeActor},
			wantErr: "name",
		},
		{
			name:    "missing type",
			req:     CreateCastMemberRequest{Name: "Anna"},
			wantErr: "type",
		},
		{
			name:    "unknown type",
			req:     CreateCastMemberRequest{Name: "Anna", Type: MemberType(9)},
			wantErr: "type",
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
