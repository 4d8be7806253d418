package folders

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/killallgit/subarr/internal/models"
)

// ErrOutsideRoot is returned when asked to touch a path no media root contains
var ErrOutsideRoot = errors.New("path is outside the configured media roots")

// Descriptor carries the subscription fields a folder name is derived from
type Descriptor struct {
	MediaType    models.MediaType
	Title        string
	Year         int
	SeasonNumber *int
}

// Roots are the library directories per media type
type Roots struct {
	TV    string
	Movie string
	Anime string
}

func (r Roots) forType(t models.MediaType) string {
	switch t {
	case models.MediaTypeTV:
		return r.TV
	case models.MediaTypeMovie:
		return r.Movie
	case models.MediaTypeAnime:
		return r.Anime
	}
	return ""
}

func (r Roots) all() []string {
	return []string{r.TV, r.Movie, r.Anime}
}

// Manager creates and removes per-subscription media folders
type Manager struct {
	fs    afero.Fs
	roots Roots
	mode  os.FileMode
}

// NewManager creates a folder manager over fs
func NewManager(fs afero.Fs, roots Roots, mode os.FileMode) *Manager {
	if mode == 0 {
		mode = 0o755
	}
	return &Manager{fs: fs, roots: roots, mode: mode}
}

// NewOSManager creates a folder manager on the real filesystem
func NewOSManager(roots Roots, mode os.FileMode) *Manager {
	return NewManager(afero.NewOsFs(), roots, mode)
}

// CreateFolder creates the folder for d and returns its path.
// An existing folder is reused.
func (m *Manager) CreateFolder(ctx context.Context, d Descriptor) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	root := m.roots.forType(d.MediaType)
	if root == "" {
		return "", fmt.Errorf("no media root configured for %q", d.MediaType)
	}
	name := FolderName(d.Title, d.Year)
	if name == "" {
		return "", fmt.Errorf("cannot derive a folder name from title %q", d.Title)
	}

	path := filepath.Join(root, name)
	if d.MediaType == models.MediaTypeTV && d.SeasonNumber != nil {
		path = filepath.Join(path, fmt.Sprintf("Season %02d", *d.SeasonNumber))
	}

	if err := m.fs.MkdirAll(path, m.mode); err != nil {
		return "", fmt.Errorf("creating media folder %s: %w", path, err)
	}
	return path, nil
}

// DeleteFolder removes path recursively. A missing path is not an error.
func (m *Manager) DeleteFolder(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := filepath.Clean(path)
	if !m.withinRoots(clean) {
		return fmt.Errorf("deleting %s: %w", path, ErrOutsideRoot)
	}
	if err := m.fs.RemoveAll(clean); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting media folder %s: %w", clean, err)
	}
	return nil
}

// withinRoots reports whether path is strictly below one of the media roots
func (m *Manager) withinRoots(path string) bool {
	for _, root := range m.roots.all() {
		if root == "" {
			continue
		}
		rel, err := filepath.Rel(filepath.Clean(root), path)
		if err != nil || rel == "." {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

var nameCleaner = transform.Chain(
	norm.NFC,
	runes.Remove(runes.Predicate(unicode.IsControl)),
	runes.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return ' '
		}
		return r
	}),
)

// FolderName builds "Title (Year)" with characters that are unsafe in
// file names replaced. The year is omitted when unknown.
func FolderName(title string, year int) string {
	cleaned, _, err := transform.String(nameCleaner, title)
	if err != nil {
		cleaned = title
	}
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		return ""
	}
	if year > 0 {
		return fmt.Sprintf("%s (%d)", cleaned, year)
	}
	return cleaned
}
