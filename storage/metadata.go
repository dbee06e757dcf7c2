package storage

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMimeType 探测内容的MIME类型。
// 优先从内容字节探测；探测结果为通用二进制类型时，
// 回退到按文件扩展名判断。
func DetectMimeType(filename string, data []byte) string {
	if len(data) > 0 {
		detected := mimetype.Detect(data)
		if detected.String() != "application/octet-stream" {
			return detected.String()
		}
	}

	// 根据文件扩展名猜测MIME类型
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	return "application/octet-stream"
}

// DetectMimeTypeFromFile 探测本地文件的MIME类型
func DetectMimeTypeFromFile(sourceFile string) string {
	detected, err := mimetype.DetectFile(sourceFile)
	if err != nil {
		return DetectMimeType(sourceFile, nil)
	}
	return detected.String()
}
