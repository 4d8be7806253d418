package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/subarr/internal/models"
	apperrors "github.com/killallgit/subarr/pkg/errors"
	"github.com/killallgit/subarr/pkg/logger"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

const profilesYAML = `
profiles:
  - name: hd
    default: true
    resolutions: [1080p, 720p]
    qualities: [WEB-DL, BluRay]
    encoders: [x265]
    min_size_mb: 200
    max_size_mb: 4000
    exclude_keywords: [CAM]
  - name: "  uhd  "
    resolutions: [2160p]
`

func TestImporter_ImportFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/subarr/profiles.yaml", []byte(profilesYAML), 0o644))

	store := new(MockStore)
	var upserted []string
	store.On("UpsertProfile", mock.Anything, mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) {
			upserted = append(upserted, args.Get(1).(*models.Profile).Name)
		}).
		Return(nil)

	imported, err := NewImporter(store, fs, logger.Discard()).ImportFile(context.Background(), "/etc/subarr/profiles.yaml")

	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, []string{"hd", "uhd"}, upserted)

	hd := imported[0]
	assert.True(t, hd.IsDefault)
	assert.Equal(t, []string{"1080p", "720p"}, []string(hd.Resolutions))
	assert.Equal(t, []string{"x265"}, []string(hd.Encoders))
	assert.Equal(t, int64(200), hd.MinSizeMB)
	assert.Equal(t, int64(4000), hd.MaxSizeMB)
	assert.Equal(t, []string{"CAM"}, []string(hd.ExcludeKeywords))
	assert.False(t, imported[1].IsDefault)
}

func TestImporter_MissingFile(t *testing.T) {
	_, err := NewImporter(new(MockStore), afero.NewMemMapFs(), logger.Discard()).
		ImportFile(context.Background(), "/nope.yaml")
	assert.Error(t, err)
}

func TestImporter_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"no profiles", "profiles: []\n"},
		{"unknown field", "profiles:\n  - name: hd\n    bitrate: 9000\n"},
		{"missing name", "profiles:\n  - resolutions: [1080p]\n"},
		{"duplicate names", "profiles:\n  - name: hd\n  - name: hd\n"},
		{"two defaults", "profiles:\n  - name: a\n    default: true\n  - name: b\n    default: true\n"},
		{"inverted sizes", "profiles:\n  - name: hd\n    min_size_mb: 500\n    max_size_mb: 100\n"},
		{"negative size", "profiles:\n  - name: hd\n    min_size_mb: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)

			_, err := NewImporter(store, afero.NewMemMapFs(), logger.Discard()).
				Import(context.Background(), strings.NewReader(tt.doc))

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
			store.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything)
		})
	}
}

func TestImporter_StoreFailure(t *testing.T) {
	store := new(MockStore)
	store.On("UpsertProfile", mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	_, err := NewImporter(store, afero.NewMemMapFs(), logger.Discard()).
		Import(context.Background(), strings.NewReader("profiles:\n  - name: hd\n"))

	assert.Equal(t, apperrors.ErrCodeStorageFailure, apperrors.GetCode(err))
}
