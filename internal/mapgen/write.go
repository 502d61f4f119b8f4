package mapgen

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// WriteFile writes the map document to path through a temporary file in the
// same directory, so a failed write never leaves a partial artifact.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return newError(KindOutput, "write map", eris.New("mapgen: empty output path"))
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".parking-map-*.html")
	if err != nil {
		return newError(KindOutput, "write map", eris.Wrapf(err, "mapgen: create temp file in %s", dir))
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return newError(KindOutput, "write map", eris.Wrap(err, "mapgen: write temp file"))
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return newError(KindOutput, "write map", eris.Wrap(err, "mapgen: close temp file"))
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return newError(KindOutput, "write map", eris.Wrap(err, "mapgen: chmod temp file"))
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return newError(KindOutput, "write map", eris.Wrapf(err, "mapgen: rename to %s", path))
	}

	zap.L().Info("mapgen: map saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
