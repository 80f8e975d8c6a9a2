package uploadsvc

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxExtLen = 10

// newUploadName формирует имя вида <unix-ms>-<uuid><ext>. Исходное имя файла
// в путь не попадает, от него остаётся только продезинфицированное расширение.
func newUploadName(originalName string) string {
	ext := sanitizeExt(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// sanitizeExt пропускает только короткие расширения из латиницы и цифр.
func sanitizeExt(ext string) string {
	if len(ext) < 2 || len(ext) > maxExtLen {
		return ""
	}

	ext = strings.ToLower(ext)
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}

	return ext
}
