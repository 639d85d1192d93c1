package holidayapi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileSource implements Source using saved API responses on disk.
// Each country lives in <dir>/<COUNTRY>.json with the same body the API returns.
type FileSource struct {
	dir    string
	logger *zap.Logger
}

// NewFileSource creates a new FileSource instance
func NewFileSource(dir string, logger *zap.Logger) *FileSource {
	return &FileSource{
		dir:    dir,
		logger: logger,
	}
}

// Holidays reads the saved response for country
func (fs *FileSource) Holidays(ctx context.Context, country string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Country: country, Err: err}
	}

	path := fs.path(country)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TransportError{Country: country, Err: fmt.Errorf("failed to read holidays file: %w", err)}
	}

	result, err := decode(country, data)
	if err != nil {
		return nil, err
	}

	fs.logger.Info("Holidays file loaded",
		zap.String("file", path),
		zap.String("country", country),
		zap.Int("count", len(result.Holidays)))

	return result, nil
}

func (fs *FileSource) path(country string) string {
	// Country codes are short tokens; strip anything that could escape dir
	name := strings.ToUpper(filepath.Base(filepath.Clean("/" + country)))
	return filepath.Join(fs.dir, name+".json")
}
