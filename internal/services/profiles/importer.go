package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/killallgit/subarr/internal/models"
	apperrors "github.com/killallgit/subarr/pkg/errors"
)

// Store persists profiles by name
type Store interface {
	UpsertProfile(ctx context.Context, profile *models.Profile) error
}

// Importer loads quality profiles from YAML documents of the form
//
//	profiles:
//	  - name: hd
//	    default: true
//	    resolutions: [1080p]
type Importer struct {
	store Store
	fs    afero.Fs
	log   logrus.FieldLogger
}

type document struct {
	Profiles []models.Profile `yaml:"profiles"`
}

// NewImporter creates an importer reading files from fs
func NewImporter(store Store, fs afero.Fs, log logrus.FieldLogger) *Importer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Importer{store: store, fs: fs, log: log}
}

// ImportFile reads path and upserts every profile it declares
func (i *Importer) ImportFile(ctx context.Context, path string) ([]models.Profile, error) {
	f, err := i.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening profiles file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// Import decodes a profiles document from r, validates it as a whole and then
// upserts each profile in file order.
func (i *Importer) Import(ctx context.Context, r io.Reader) ([]models.Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.ValidationError("profiles", "document is empty")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid profiles document")
	}
	if err := validate(doc.Profiles); err != nil {
		return nil, err
	}

	for idx := range doc.Profiles {
		p := &doc.Profiles[idx]
		if err := i.store.UpsertProfile(ctx, p); err != nil {
			return nil, apperrors.StorageFailure("upsert profile", err).WithDetail("name", p.Name)
		}
		i.log.WithField("profile", p.Name).WithField("default", p.IsDefault).Info("Imported profile")
	}
	return doc.Profiles, nil
}

func validate(profiles []models.Profile) error {
	if len(profiles) == 0 {
		return apperrors.ValidationError("profiles", "no profiles declared")
	}
	for idx := range profiles {
		profiles[idx].Name = strings.TrimSpace(profiles[idx].Name)
		p := profiles[idx]
		if p.Name == "" {
			return apperrors.ValidationError("name", fmt.Sprintf("profile #%d has no name", idx+1))
		}
		if p.MinSizeMB < 0 || p.MaxSizeMB < 0 {
			return apperrors.ValidationError("size", fmt.Sprintf("profile %q has a negative size bound", p.Name))
		}
		if p.MaxSizeMB > 0 && p.MinSizeMB > p.MaxSizeMB {
			return apperrors.ValidationError("size", fmt.Sprintf("profile %q has min_size_mb above max_size_mb", p.Name))
		}
	}

	names := lo.Map(profiles, func(p models.Profile, _ int) string { return p.Name })
	if dups := lo.FindDuplicates(names); len(dups) > 0 {
		return apperrors.ValidationError("name", "duplicate profile names: "+strings.Join(dups, ", "))
	}
	if defaults := lo.CountBy(profiles, func(p models.Profile) bool { return p.IsDefault }); defaults > 1 {
		return apperrors.ValidationError("default", fmt.Sprintf("%d profiles are marked default", defaults))
	}
	return nil
}
