package domain

import (
	"encoding/base64"
	"fmt"
)

// ImageAsset は利用者がアップロードした画像、または過去の生成結果から復元した画像です。
// Encoder からは読み取り専用として扱われます。
type ImageAsset struct {
	Data     []byte
	MIMEType string
	Filename string
}

// IsZero はアセットが未指定かどうかを返します。
func (a ImageAsset) IsZero() bool {
	return len(a.Data) == 0 && a.MIMEType == "" && a.Filename == ""
}

// PartKind は ContentPart の種別です。
type PartKind string

const (
	PartImage PartKind = "image"
	PartText  PartKind = "text"
)

// ContentPart はリモートサービスとの間でやり取りする最小単位です。
// Kind が PartImage のときは Data と MIMEType、PartText のときは Text のみが意味を持ちます。
type ContentPart struct {
	Kind     PartKind
	Data     []byte
	MIMEType string
	Text     string
}

// ImagePart は画像パーツを作成します。
func ImagePart(data []byte, mimeType string) ContentPart {
	return ContentPart{Kind: PartImage, Data: data, MIMEType: mimeType}
}

// TextPart はテキストパーツを作成します。
func TextPart(text string) ContentPart {
	return ContentPart{Kind: PartText, Text: text}
}

// IsImage は画像パーツかどうかを返します。
func (p ContentPart) IsImage() bool { return p.Kind == PartImage }

// Base64 は転送用の base64 ペイロードを返します。
func (p ContentPart) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

func (p ContentPart) String() string {
	if p.IsImage() {
		return fmt.Sprintf("image(%s, %d bytes)", p.MIMEType, len(p.Data))
	}
	return fmt.Sprintf("text(%d chars)", len(p.Text))
}

// ResultKind は OperationResult の種別です。
type ResultKind string

const (
	ResultImage ResultKind = "image"
	ResultText  ResultKind = "text"
)

// OperationResult は1回の操作の成功結果です。
// 画像の場合は Base64 と MIMEType、テキストの場合は Text が設定されます。
type OperationResult struct {
	Kind     ResultKind
	Base64   string
	MIMEType string
	Text     string
}

// ImageResult は画像バイト列から結果を作成します。
func ImageResult(data []byte, mimeType string) OperationResult {
	return OperationResult{
		Kind:     ResultImage,
		Base64:   base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	}
}

// TextResult はテキストの結果を作成します。
func TextResult(text string) OperationResult {
	return OperationResult{Kind: ResultText, Text: text}
}

// Bytes は画像結果の生バイト列を返します。
func (r OperationResult) Bytes() ([]byte, error) {
	if r.Kind != ResultImage {
		return nil, fmt.Errorf("result is %s, not an image", r.Kind)
	}
	return base64.StdEncoding.DecodeString(r.Base64)
}

// DataURL は画像結果を data URL 形式で返します。MIME が不明な場合は image/png とみなします。
func (r OperationResult) DataURL() string {
	mimeType := r.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, r.Base64)
}
