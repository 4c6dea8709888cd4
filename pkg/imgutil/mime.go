package imgutil

import (
	"net/http"
	"path/filepath"
	"strings"
)

var extensionMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// DetectMIME はバイト列のシグネチャから MIME タイプを推定します。
// 判別できない場合はファイル名の拡張子を参照し、それでも不明なら空文字を返します。
func DetectMIME(data []byte, filename string) string {
	if len(data) > 0 {
		if mimeType := http.DetectContentType(data); strings.HasPrefix(mimeType, "image/") {
			return mimeType
		}
	}
	return extensionMIME[strings.ToLower(filepath.Ext(filename))]
}

// IsImageMIME は画像の MIME タイプかどうかを返します。パラメータ部分は無視します。
func IsImageMIME(mimeType string) bool {
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.HasPrefix(mimeType, "image/")
}

// ExtensionFor は MIME タイプに対応する拡張子を返します。未知の場合は ".png" です。
func ExtensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	case "image/heif":
		return ".heif"
	default:
		return ".png"
	}
}
