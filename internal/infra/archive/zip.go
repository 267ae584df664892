package archive

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seqvault/seqvault/internal/domain"
)

// Writer packages a console export bundle into a point-in-time zip archive.
type Writer struct{}

func (Writer) WriteArchive(ctx context.Context, path string, bundle domain.ExportBundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(file)
	if err := writeEntries(zw, bundle); err != nil {
		_ = zw.Close()
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := zw.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("finalize archive: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

func writeEntries(zw *zip.Writer, bundle domain.ExportBundle) error {
	format := domain.NormalizeDefinitionFormat(bundle.Format)
	entry, err := zw.Create(bundle.Name + format.Ext())
	if err != nil {
		return fmt.Errorf("create definition entry: %w", err)
	}
	if _, err := entry.Write(bundle.Definition); err != nil {
		return fmt.Errorf("write definition entry: %w", err)
	}

	metadata := bundle.Metadata
	if len(metadata) == 0 {
		placeholder, err := json.Marshal(map[string]string{"name": bundle.Name})
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		metadata = placeholder
	}
	entry, err = zw.Create("metadata.json")
	if err != nil {
		return fmt.Errorf("create metadata entry: %w", err)
	}
	if _, err := entry.Write(metadata); err != nil {
		return fmt.Errorf("write metadata entry: %w", err)
	}
	return nil
}
