package domain

import (
	"errors"
	"fmt"
)

// MissingInputError は必須の画像またはテキストが指定されていないことを表します。
// ネットワーク呼び出しの前に検出され、利用者が入力を直せば解消します。
type MissingInputError struct {
	Operation OperationKind
	Field     string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: missing required input %q", e.Operation, e.Field)
}

// EncodingError はローカルでの読み込みや変換の失敗です。
type EncodingError struct {
	Operation OperationKind
	Filename  string
	Err       error
}

func (e *EncodingError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<unnamed>"
	}
	if e.Operation != "" {
		return fmt.Sprintf("%s: encode %s: %v", e.Operation, name, e.Err)
	}
	return fmt.Sprintf("encode %s: %v", name, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// RemoteServiceError は通信・認証・クォータ・サービス側の失敗です。元のエラーはそのまま保持します。
type RemoteServiceError struct {
	Operation OperationKind
	Model     string
	Err       error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s: remote service (%s): %v", e.Operation, e.Model, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

// NoImageReturnedError は画像出力の操作で画像パーツが1つも返らなかったことを表します。
// 安全フィルター等で起こりうる想定内の失敗で、再試行できます。
type NoImageReturnedError struct {
	Operation    OperationKind
	FinishReason string
	Text         string
}

func (e *NoImageReturnedError) Error() string {
	msg := fmt.Sprintf("%s: no image was returned", e.Operation)
	if e.FinishReason != "" {
		msg += fmt.Sprintf(" (finish reason: %s)", e.FinishReason)
	}
	if e.Text != "" {
		msg += ": " + e.Text
	}
	return msg
}

// EmptyResponseError はテキスト出力の操作でテキストが返らなかったことを表します。
type EmptyResponseError struct {
	Operation    OperationKind
	FinishReason string
}

func (e *EmptyResponseError) Error() string {
	if e.FinishReason != "" {
		return fmt.Sprintf("%s: empty response (finish reason: %s)", e.Operation, e.FinishReason)
	}
	return fmt.Sprintf("%s: empty response", e.Operation)
}

// InvalidRequestError はリクエストの組み立て規約違反です。呼び出し側のバグを意味します。
type InvalidRequestError struct {
	Operation OperationKind
	Reason    string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: invalid request: %s", e.Operation, e.Reason)
}

// IsRetryable は同じ操作をそのまま再実行すれば成功しうるエラーかどうかを返します。
func IsRetryable(err error) bool {
	var remote *RemoteServiceError
	var noImage *NoImageReturnedError
	var empty *EmptyResponseError
	return errors.As(err, &remote) || errors.As(err, &noImage) || errors.As(err, &empty)
}

// IsUserCorrectable は入力を直す必要があるエラーかどうかを返します。
func IsUserCorrectable(err error) bool {
	var missing *MissingInputError
	return errors.As(err, &missing)
}

// WithOperation は操作名が未設定の型付きエラーに操作名を付与します。
func WithOperation(err error, op OperationKind) error {
	var (
		missing  *MissingInputError
		encoding *EncodingError
		remote   *RemoteServiceError
		noImage  *NoImageReturnedError
		empty    *EmptyResponseError
		invalid  *InvalidRequestError
	)
	switch {
	case errors.As(err, &missing):
		if missing.Operation == "" {
			missing.Operation = op
		}
	case errors.As(err, &encoding):
		if encoding.Operation == "" {
			encoding.Operation = op
		}
	case errors.As(err, &remote):
		if remote.Operation == "" {
			remote.Operation = op
		}
	case errors.As(err, &noImage):
		if noImage.Operation == "" {
			noImage.Operation = op
		}
	case errors.As(err, &empty):
		if empty.Operation == "" {
			empty.Operation = op
		}
	case errors.As(err, &invalid):
		if invalid.Operation == "" {
			invalid.Operation = op
		}
	}
	return err
}
