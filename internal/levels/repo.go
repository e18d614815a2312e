// Package levels supplies Sokoban level layouts from a read-only zip archive
// of plain-text level files, one per level, addressed by 1-based number.
// A small default level set is embedded in the binary.
package levels

import (
	"archive/zip"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/game"
)

//go:embed levels.zip
var builtin embed.FS

var (
	// ErrNotFound is returned when a level index is outside the archive's range.
	ErrNotFound = errors.New("levels: level not found")

	// ErrCorruptArchive is returned when the backing archive cannot be
	// opened or an entry cannot be decoded.
	ErrCorruptArchive = errors.New("levels: corrupt archive")
)

// Repo is a read-only source of level layouts.
type Repo struct {
	reader *zip.Reader
	count  int
}

// Open opens a level archive at the given path.
func Open(path string) (*Repo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptArchive, path, err)
	}
	return newRepo(data, path)
}

// OpenEmbedded opens the level set shipped with the binary.
func OpenEmbedded() (*Repo, error) {
	data, err := builtin.ReadFile("levels.zip")
	if err != nil {
		return nil, fmt.Errorf("%w: embedded set: %v", ErrCorruptArchive, err)
	}
	return newRepo(data, "embedded")
}

func newRepo(data []byte, name string) (*Repo, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArchive, name, err)
	}

	count := 0
	for _, f := range reader.File {
		if strings.HasPrefix(f.Name, "level") && strings.HasSuffix(f.Name, ".sok") {
			count++
		}
	}

	return &Repo{reader: reader, count: count}, nil
}

// Count returns the total number of levels in the archive.
func (r *Repo) Count() int {
	return r.count
}

// Load returns the layout rows for the given 1-based level number. Any legacy
// player glyph in the raw text is rewritten to the canonical one.
func (r *Repo) Load(level int) ([]string, error) {
	if level < 1 || level > r.count {
		return nil, fmt.Errorf("%w: level %d of %d", ErrNotFound, level, r.count)
	}

	f, err := r.reader.Open(fmt.Sprintf("level%d.sok", level))
	if err != nil {
		return nil, fmt.Errorf("%w: level %d: %v", ErrNotFound, level, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: level %d: %v", ErrCorruptArchive, level, err)
	}

	text := strings.ReplaceAll(string(data), string(game.LegacyPlayer), string(game.CellPlayer))
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, "\r")
	}
	return rows, nil
}
