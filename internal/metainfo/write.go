package metainfo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	bencode "github.com/jackpal/bencode-go"
)

// Write bencodes doc into the file at path. The document is serialized to a
// uniquely named temp file in the target directory and renamed into place,
// so a failed run never leaves partial output behind.
func Write(path string, doc Document) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmpName := fmt.Sprintf(".%s.%s.mkt-tmp", base, uuid.New().String()[:8])
	tmpPath := filepath.Join(dir, tmpName)

	fd, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmpPath, err)
	}
	defer func() {
		_ = os.Remove(tmpPath) // no-op if rename succeeded
	}()

	if err := bencode.Marshal(fd, doc); err != nil {
		fd.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
