// Package sources holds acquisition-layer implementations of
// analysis.SessionSource. The analytics core never knows where its laps
// came from.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pitwallhq/pitwall/internal/analysis"
)

// SessionFile is the on-disk shape of an exported session: metadata, entry
// list and raw laps as delivered by the timing feed.
type SessionFile struct {
	Session analysis.SessionMeta `json:"session"`
	Drivers []analysis.Driver    `json:"drivers"`
	Laps    []analysis.RawLap    `json:"laps"`
}

// FileSource loads sessions from JSON files named
// <year>_<round>_<session_type>.json under a base directory.
type FileSource struct {
	baseDirectory string
	logger        analysis.Logger
}

func NewFileSource(baseDirectory string, logger analysis.Logger) *FileSource {
	return &FileSource{
		baseDirectory: baseDirectory,
		logger:        logger,
	}
}

func (s *FileSource) LoadSession(ctx context.Context, ref analysis.SessionRef) (*analysis.SessionData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.baseDirectory, fmt.Sprintf("%s.json", ref.Key()))

	f, err := os.Open(path)

	if err != nil {
		return nil, errors.Wrapf(err, "could not open session file for %s", ref)
	}

	defer f.Close()

	var file SessionFile

	if err := json.NewDecoder(f).Decode(&file); err != nil {
		return nil, errors.Wrapf(err, "could not decode session file %s", path)
	}

	laps := analysis.NormalizeLaps(file.Laps)

	s.logger.Debugf("Loaded %s: %d drivers, %d laps (%d raw)", ref, len(file.Drivers), len(laps), len(file.Laps))

	meta := file.Session

	if meta.Year == 0 {
		meta.Year = ref.Year
		meta.Round = ref.Round
		meta.SessionType = ref.SessionType
	}

	return &analysis.SessionData{
		Meta:    meta,
		Drivers: file.Drivers,
		Laps:    laps,
	}, nil
}
