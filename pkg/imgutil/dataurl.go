package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var dataURLRegex = regexp.MustCompile(`^data:([^;,]+);base64,`)

// ToDataURL はバイト列を data URL に変換します。
func ToDataURL(data []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURL は base64 形式の data URL を MIME タイプとバイト列に分解します。
// プレフィックスのない生の base64 文字列の場合は fallbackMIME を使います。
func ParseDataURL(value, fallbackMIME string) ([]byte, string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, "", errors.New("empty data URL")
	}

	mimeType := fallbackMIME
	payload := value
	if m := dataURLRegex.FindStringSubmatch(value); len(m) == 2 {
		mimeType = m[1]
		payload = value[len(m[0]):]
	} else if strings.HasPrefix(value, "data:") {
		return nil, "", errors.New("data URL is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64 payload: %w", err)
	}
	return data, mimeType, nil
}
