package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgutil"
	"github.com/shouni/gemini-studio-kit/pkg/prompt"
)

// urlSuffix はファイルの代わりに URL を受け付けるフィールドの接尾辞です。
const urlSuffix = "_url"

// form はリクエストの値を型付きで読み出し、変換エラーを蓄積します。
type form struct {
	r      *http.Request
	h      *Handler
	op     domain.OperationKind
	fields []prompt.FieldError
}

func (f *form) has(name string) bool {
	_, ok := f.r.Form[name]
	return ok
}

func (f *form) str(name, def string) string {
	if !f.has(name) {
		return def
	}
	return f.r.Form.Get(name)
}

func (f *form) int(name string, def int) int {
	raw := strings.TrimSpace(f.str(name, ""))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f.fail(name, "must be an integer")
		return def
	}
	return v
}

func (f *form) float(name string, def float64) float64 {
	raw := strings.TrimSpace(f.str(name, ""))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.fail(name, "must be a number")
		return def
	}
	return v
}

func (f *form) bool(name string, def bool) bool {
	raw := strings.TrimSpace(f.str(name, ""))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		f.fail(name, "must be a boolean")
		return def
	}
	return v
}

func (f *form) fail(name, reason string) {
	f.fields = append(f.fields, prompt.FieldError{Field: name, Reason: reason})
}

func (f *form) err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return &prompt.ValidationError{Operation: f.op, Fields: f.fields}
}

// image はアップロードされたファイル、または <name>_url の URL から画像を読み込みます。
// どちらもなければゼロ値を返し、必須チェックは呼び出し先に任せます。
func (f *form) image(ctx context.Context, name string) (domain.ImageAsset, error) {
	if f.r.MultipartForm != nil {
		if headers := f.r.MultipartForm.File[name]; len(headers) > 0 {
			return readUpload(f.op, name, headers[0].Filename, headers[0].Header.Get("Content-Type"), func() (io.ReadCloser, error) {
				return headers[0].Open()
			})
		}
	}

	source := strings.TrimSpace(f.str(name+urlSuffix, ""))
	if source == "" {
		return domain.ImageAsset{}, nil
	}
	if strings.HasPrefix(source, "data:") {
		data, mimeType, err := imgutil.ParseDataURL(source, "")
		if err != nil {
			return domain.ImageAsset{}, &domain.EncodingError{Operation: f.op, Filename: name, Err: err}
		}
		return domain.ImageAsset{Data: data, MIMEType: mimeType, Filename: name + imgutil.ExtensionFor(mimeType)}, nil
	}
	if f.h.loader == nil {
		return domain.ImageAsset{}, &domain.EncodingError{Operation: f.op, Filename: source, Err: errors.New("URL sources are disabled")}
	}
	asset, err := f.h.loader.Load(ctx, source)
	if err != nil {
		return domain.ImageAsset{}, domain.WithOperation(err, f.op)
	}
	return asset, nil
}

func readUpload(op domain.OperationKind, field, filename, declared string, open func() (io.ReadCloser, error)) (domain.ImageAsset, error) {
	rc, err := open()
	if err != nil {
		return domain.ImageAsset{}, &domain.EncodingError{Operation: op, Filename: filename, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.ImageAsset{}, &domain.EncodingError{Operation: op, Filename: filename, Err: err}
	}
	if len(data) == 0 {
		return domain.ImageAsset{}, nil
	}

	// 宣言された MIME が画像ならそのまま使い、そうでなければ内容から推定します。
	mimeType := declared
	if !imgutil.IsImageMIME(mimeType) {
		mimeType = imgutil.DetectMIME(data, filename)
	}
	if !imgutil.IsImageMIME(mimeType) {
		return domain.ImageAsset{}, &domain.EncodingError{Operation: op, Filename: filename, Err: fmt.Errorf("%s is not a recognized image", field)}
	}
	return domain.ImageAsset{Data: data, MIMEType: mimeType, Filename: filename}, nil
}
