package video

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAttributes() VideoAttributes {
	return VideoAttributes{
		Title:        "The Searchers",
		Description:  "A western",
		YearLaunched: 1956,
		Rating:       Rating14,
		Duration:     119,
		CategoriesID: []uuid.UUID{uuid.New()},
		GenresID:     []uuid.UUID{uuid.New()},
		CastMembers:  []uuid.UUID{uuid.New()},
	}
}

func TestRatingValid(t *testing.T) {
	for _, r := range RatingList {
		assert.True(t, r.Valid(), "rating %s should be valid", r)
	}
	assert.False(t, Rating("PG-13").Valid())
	assert.False(t, Rating("").Valid())
}

func TestVideoAttributesValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*VideoAttributes)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(a *VideoAttributes) {},
		},
		{
			name:    "missing title",
			mutate:  func(a *VideoAttributes) { a.Title = "" },
			wantErr: "title",
		},
		{
			name:    "missing description",
			mutate:  func(a *VideoAttributes) { a.Description = "" },
			wantErr: "description",
		},
		{
			name:    "zero year",
			mutate:  func(a *VideoAttributes) { a.YearLaunched = 0 },
			wantErr: "year_launched",
		},
		{
			name:    "zero duration",
			mutate:  func(a *VideoAttributes) { a.Duration = 0 },
			wantErr: "duration",
		},
		{
			name:    "unknown rating",
			mutate:  func(a *VideoAttributes) { a.Rating = "PG-13" },
			wantErr: "rating",
		},
		{
			name:    "missing rating",
			mutate:  func(a *VideoAttributes) { a.Rating = "" },
			wantErr: "rating",
		},
		{
			name:    "empty categories",
			mutate:  func(a *VideoAttributes) { a.CategoriesID = nil },
			wantErr: "categories_id",
		},
		{
			name:    "empty genres",
			mutate:  func(a *VideoAttributes) { a.GenresID = nil },
			wantErr: "genres_id",
		},
		{
			name:    "empty cast members",
			mutate:  func(a *VideoAttributes) { a.CastMembers = nil },
			wantErr: "cast_members_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := validAttributes()
			tt.mutate(&attrs)

			err := attrs.Validate()
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

func TestVideoFileNameAccessors(t *testing.T) {
	v := &Video{ID: uuid.New()}

	assert.Nil(t, v.FileName(FieldThumbFile))

	v.SetFileName(FieldThumbFile, "abc.jpg")
	require.NotNil(t, v.FileName(FieldThumbFile))
	assert.Equal(t, "abc.jpg", *v.FileName(FieldThumbFile))

	assert.Equal(t, "videos/"+v.ID.String(), v.UploadDir())
}
