package encoder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgutil"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// HTTPClient は URL から画像を取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// AssetReader は gs:// や s3:// のアセットを開くためのインターフェースです。
type AssetReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

var (
	_ HTTPClient  = httpkit.ClientInterface(nil)
	_ AssetReader = remoteio.InputReader(nil)
)

// URLGuard は取得前に URL を検証する関数です。
type URLGuard func(rawURL string) (bool, error)

// storageSchemes は AssetReader に渡すスキームです。ローカルパスは受け付けません。
var storageSchemes = []string{"gs://", "s3://"}

// Loader は外部のソース文字列から ImageAsset を作成します。
type Loader struct {
	httpClient HTTPClient
	reader     AssetReader
	guard      URLGuard
}

// LoaderOption は Loader の設定です。
type LoaderOption func(*Loader)

// WithURLGuard は取得前の追加検証を設定します。
// SSRF 対策は httpkit のクライアントが接続時に行うため、通常は不要です。
func WithURLGuard(g URLGuard) LoaderOption {
	return func(l *Loader) { l.guard = g }
}

// NewLoader は依存関係を注入して Loader を初期化します。
// httpClient と reader はどちらか一方があれば動作し、nil の側のソースは読み込みエラーになります。
func NewLoader(httpClient HTTPClient, reader AssetReader, opts ...LoaderOption) (*Loader, error) {
	if httpClient == nil && reader == nil {
		return nil, fmt.Errorf("httpClient or reader is required")
	}
	l := &Loader{
		httpClient: httpClient,
		reader:     reader,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load は source を読み込んで ImageAsset を返します。
// http(s):// は HTTPClient、gs:// と s3:// は AssetReader で取得し、それ以外はエラーです。
func (l *Loader) Load(ctx context.Context, source string) (domain.ImageAsset, error) {
	source = strings.TrimSpace(source)
	filename := baseName(source)

	data, err := l.fetch(ctx, source)
	if err != nil {
		return domain.ImageAsset{}, &domain.EncodingError{Filename: filename, Err: err}
	}
	if len(data) == 0 {
		return domain.ImageAsset{}, &domain.EncodingError{Filename: filename, Err: errEmptyData}
	}

	mimeType := imgutil.DetectMIME(data, filename)
	if !imgutil.IsImageMIME(mimeType) {
		slog.WarnContext(ctx, "画像として判別できないソースです", "source", source)
		return domain.ImageAsset{}, &domain.EncodingError{Filename: filename, Err: fmt.Errorf("source is not a recognized image")}
	}

	return domain.ImageAsset{Data: data, MIMEType: mimeType, Filename: filename}, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if source == "" {
		return nil, fmt.Errorf("empty source")
	}

	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		if l.httpClient == nil {
			return nil, fmt.Errorf("no HTTP client configured for %s", source)
		}
		if err := l.checkURL(source); err != nil {
			return nil, err
		}
		return l.httpClient.FetchBytes(ctx, source)
	case isStorageURI(source):
		if l.reader == nil {
			return nil, fmt.Errorf("no reader configured for %s", source)
		}
		rc, err := l.reader.Open(ctx, source)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	default:
		return nil, fmt.Errorf("unsupported source: %s", source)
	}
}

func (l *Loader) checkURL(source string) error {
	if l.guard == nil {
		return nil
	}
	safe, err := l.guard(source)
	if err != nil {
		return fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	if !safe {
		return fmt.Errorf("安全ではないURLが指定されました: %s", source)
	}
	return nil
}

func isStorageURI(source string) bool {
	for _, scheme := range storageSchemes {
		if strings.HasPrefix(source, scheme) {
			return true
		}
	}
	return false
}

func baseName(source string) string {
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(source)
}
