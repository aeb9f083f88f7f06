package export

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const dataURLPrefix = "data:image/png;base64,"

// DataURL encodes PNG bytes as a data URL.
func DataURL(png []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

func WritePNG(path string, png []byte) error {
	if len(png) == 0 {
		return fmt.Errorf("write %s: empty image", path)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FileName builds a timestamped export path such as
// dir/mentorcanvas-20261014-090000.png.
func FileName(dir, ext string, now time.Time) string {
	return filepath.Join(dir, "mentorcanvas-"+now.Format("20060102-150405")+"."+ext)
}
