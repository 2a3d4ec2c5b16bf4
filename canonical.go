package xlpanel

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
)

// canonicalizeZip rewrites an xlsx package with entries sorted by name and no
// modification times, so identical workbook parts always yield identical bytes.
func canonicalizeZip(data []byte, w io.Writer) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("read package: %w", err)
	}
	files := make([]*zip.File, len(zr.File))
	copy(files, zr.File)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	zw := zip.NewWriter(w)
	for _, zf := range files {
		dst, err := zw.CreateHeader(&zip.FileHeader{Name: zf.Name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("create entry %q: %w", zf.Name, err)
		}
		src, err := zf.Open()
		if err != nil {
			return fmt.Errorf("open entry %q: %w", zf.Name, err)
		}
		_, err = io.Copy(dst, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("copy entry %q: %w", zf.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}
	return nil
}
