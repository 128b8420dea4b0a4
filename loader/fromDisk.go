package loader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/robbyt/go-wasmbridge/internal/helpers"
)

// FromDisk loads a module from the local filesystem.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

// NewFromDisk creates a loader for path. A "file://" prefix is accepted, and relative
// paths are resolved against the current working directory at construction time.
// The file itself is not opened until GetReader is called.
func NewFromDisk(path string) (*FromDisk, error) {
	path = strings.TrimPrefix(path, "file://")

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}
	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}

	if path == "" || path == "." || path == "/" || path == "\\" {
		return nil, fmt.Errorf("%w: path is empty or invalid", ErrModuleNotAvailable)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to resolve path: %w", ErrModuleNotAvailable, err)
	}

	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}

	return &FromDisk{
		path:      absPath,
		sourceURL: u,
	}, nil
}

func (l *FromDisk) String() string {
	noChkSum := fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)

	reader, err := l.GetReader()
	if err != nil {
		return noChkSum
	}
	defer reader.Close()

	chksum, err := helpers.SHA256Reader(reader)
	if err != nil {
		return noChkSum
	}

	return fmt.Sprintf("loader.FromDisk{Path: %s, SHA256: %s}", l.path, chksum[:8])
}

// GetReader opens the file. A missing or unreadable file is reported as
// ErrModuleNotAvailable, still wrapping the underlying fs error.
func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModuleNotAvailable, err)
	}
	return f, nil
}

// GetSourceURL returns the source URL of the module.
func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}
