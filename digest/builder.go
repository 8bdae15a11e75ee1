package digest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"kindledigest/types"
)

// Format selects the digest packaging.
type Format string

const (
	FormatAuto Format = "auto"
	FormatEPUB Format = "epub"
	FormatHTML Format = "html"
)

// Build writes the digest artifact into dir and returns its path. In auto
// mode EPUB is attempted first; if packaging fails the run degrades to the
// HTML document rather than aborting.
func Build(d *types.Digest, dir string, format Format, logger *zap.Logger) (string, error) {
	switch format {
	case FormatHTML:
		return writeHTML(d, dir)
	case FormatEPUB:
		return writeEPUB(d, dir)
	case FormatAuto:
		path, err := writeEPUB(d, dir)
		if err != nil {
			logger.Warn("epub packaging failed, falling back to html", zap.Error(err))
			return writeHTML(d, dir)
		}
		return path, nil
	default:
		return "", fmt.Errorf("digest: unknown format %q", format)
	}
}

// swappable in tests to exercise the auto-mode fallback.
var buildEPUB = BuildEPUB

func writeEPUB(d *types.Digest, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("ai_digest_%s.epub", d.Date.Format("2006-01-02")))
	if err := buildEPUB(d, dir, path); err != nil {
		return "", err
	}
	return path, nil
}

func writeHTML(d *types.Digest, dir string) (string, error) {
	path := filepath.Join(dir, "digest.html")
	if err := os.WriteFile(path, BuildHTML(d), 0o644); err != nil {
		return "", fmt.Errorf("digest: failed to write html: %w", err)
	}
	return path, nil
}
