package encoder

import (
	"context"
	"errors"
	"sync"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgutil"
	"golang.org/x/sync/errgroup"
)

var (
	errEmptyData   = errors.New("asset has no data")
	errMissingMIME = errors.New("asset has no MIME type")
	errNotImage    = errors.New("result is not an image")
)

// Encode はアセットを転送可能な画像パーツに変換します。
// 宣言された MIME タイプはそのまま引き継ぎ、書き換えません。
func Encode(asset domain.ImageAsset) (domain.ContentPart, error) {
	if len(asset.Data) == 0 {
		return domain.ContentPart{}, &domain.EncodingError{Filename: asset.Filename, Err: errEmptyData}
	}
	if asset.MIMEType == "" {
		return domain.ContentPart{}, &domain.EncodingError{Filename: asset.Filename, Err: errMissingMIME}
	}
	return domain.ImagePart(asset.Data, asset.MIMEType), nil
}

// EncodeRoles は役割ごとのアセットを並行してエンコードします。
// 完了順は結果に影響しません。並び順はリクエスト組み立て時にレイアウトで決まります。
func EncodeRoles(ctx context.Context, assets map[domain.ImageRole]domain.ImageAsset) (map[domain.ImageRole]domain.ContentPart, error) {
	var mu sync.Mutex
	parts := make(map[domain.ImageRole]domain.ContentPart, len(assets))

	eg, egCtx := errgroup.WithContext(ctx)
	for role, asset := range assets {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			part, err := Encode(asset)
			if err != nil {
				return err
			}
			mu.Lock()
			parts[role] = part
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// DecodeResult は画像の結果をアセットに戻します。バイト列と MIME タイプは元の結果と一致します。
// 結果に MIME タイプがない場合はシグネチャから推定します。
func DecodeResult(result domain.OperationResult, filename string) (domain.ImageAsset, error) {
	if result.Kind != domain.ResultImage {
		return domain.ImageAsset{}, &domain.EncodingError{Filename: filename, Err: errNotImage}
	}
	data, err := result.Bytes()
	if err != nil {
		return domain.ImageAsset{}, &domain.EncodingError{Filename: filename, Err: err}
	}
	if len(data) == 0 {
		return domain.ImageAsset{}, &domain.EncodingError{Filename: filename, Err: errEmptyData}
	}

	mimeType := result.MIMEType
	if mimeType == "" {
		mimeType = imgutil.DetectMIME(data, filename)
	}
	if filename == "" {
		filename = "result" + imgutil.ExtensionFor(mimeType)
	}
	return domain.ImageAsset{Data: data, MIMEType: mimeType, Filename: filename}, nil
}
