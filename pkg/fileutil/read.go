package fileutil

import (
	"fmt"
	"io"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
)

// MaxFileSize is the largest artifact or listing accepted (4MB).
const MaxFileSize = 4 << 20

// ErrFileTooLarge indicates that content exceeded the read limit.
var ErrFileTooLarge = errors.New("content exceeds maximum size")

// ReadAllWithLimit reads r to EOF, failing with ErrFileTooLarge once more
// than limit bytes arrive. A non-positive limit means MaxFileSize.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading content")
	}
	if int64(len(data)) > limit {
		return nil, errors.WithDetail(ErrFileTooLarge, fmt.Sprintf("limit is %d bytes", limit))
	}
	return data, nil
}
