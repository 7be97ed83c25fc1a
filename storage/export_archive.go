package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"
)

const exportPrefix = "exports/"

// ExportArchive хранит копию каждой выгрузки в объектном хранилище.
type ExportArchive struct {
	uploader FileUploader
	now      func() time.Time
}

func NewExportArchive(uploader FileUploader) *ExportArchive {
	return &ExportArchive{uploader: uploader, now: time.Now}
}

// Store загружает data под ключом exports/<UTC время>-<fileName>.
func (a *ExportArchive) Store(ctx context.Context, fileName, contentType string, data []byte) (*UploadResult, error) {
	key := ExportKey(a.now(), fileName)
	res, err := a.uploader.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("archive export %s: %w", fileName, err)
	}
	return res, nil
}

func ExportKey(at time.Time, fileName string) string {
	return exportPrefix + at.UTC().Format("20060102T150405Z") + "-" + fileName
}
