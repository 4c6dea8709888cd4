package domain

import (
	"fmt"
	"strings"
)

// OperationKind は利用者向けの12操作（と付随操作）を識別します。
type OperationKind string

const (
	OpGenerate    OperationKind = "generate"
	OpEdit        OperationKind = "edit"
	OpUpscale     OperationKind = "upscale"
	OpBuildPrompt OperationKind = "build-prompt"
	OpSuggestions OperationKind = "suggestions"
	OpAnalyze     OperationKind = "analyze"
	OpCompose     OperationKind = "compose"
	OpMerge       OperationKind = "merge"
	OpReconstruct OperationKind = "reconstruct"
	OpMockup      OperationKind = "mockup"
	OpPerspective OperationKind = "perspective"
	OpFeedback    OperationKind = "feedback"
	OpRelight     OperationKind = "relight"
)

// OutputKind はリモートに要求する出力の種類です。
type OutputKind string

const (
	OutputImage OutputKind = "image"
	OutputText  OutputKind = "text"
)

// ImageRole はリクエスト内で画像が担う役割です。
// 指示文は「1枚目の画像」「2枚目の画像」のように位置で参照するため、役割ごとの順序が固定されています。
type ImageRole string

const (
	RoleSubject    ImageRole = "subject"
	RoleObject     ImageRole = "object"
	RoleBackground ImageRole = "background"
	RoleMidground  ImageRole = "midground"
	RoleForeground ImageRole = "foreground"
	RolePalette    ImageRole = "palette"
	RoleDesign     ImageRole = "design"
	RoleComposite  ImageRole = "composite"
	RoleReference  ImageRole = "reference"
)

type operationDef struct {
	output OutputKind
	layout []ImageRole
}

// operationDefs は操作ごとの出力種別と画像の並び順の唯一の定義です。
var operationDefs = map[OperationKind]operationDef{
	OpGenerate:    {output: OutputImage},
	OpEdit:        {output: OutputImage, layout: []ImageRole{RoleSubject}},
	OpUpscale:     {output: OutputImage, layout: []ImageRole{RoleSubject}},
	OpBuildPrompt: {output: OutputText},
	OpSuggestions: {output: OutputText, layout: []ImageRole{RoleReference}},
	OpAnalyze:     {output: OutputText, layout: []ImageRole{RoleSubject}},
	OpCompose:     {output: OutputImage, layout: []ImageRole{RoleBackground, RoleMidground, RoleForeground, RolePalette}},
	OpMerge:       {output: OutputImage, layout: []ImageRole{RoleObject, RoleBackground}},
	OpReconstruct: {output: OutputImage, layout: []ImageRole{RoleComposite}},
	OpMockup:      {output: OutputImage, layout: []ImageRole{RoleDesign}},
	OpPerspective: {output: OutputImage, layout: []ImageRole{RoleSubject}},
	OpFeedback:    {output: OutputText, layout: []ImageRole{RoleSubject}},
	OpRelight:     {output: OutputImage, layout: []ImageRole{RoleSubject}},
}

// OutputFor は操作の出力種別を返します。
func OutputFor(op OperationKind) (OutputKind, bool) {
	def, ok := operationDefs[op]
	return def.output, ok
}

// Layout は操作の画像ロール順を返します。
func Layout(op OperationKind) []ImageRole {
	def := operationDefs[op]
	return append([]ImageRole(nil), def.layout...)
}

// OperationRequest は1回のリモート呼び出しに対応するリクエストです。構築後は変更しません。
type OperationRequest struct {
	Operation OperationKind
	Output    OutputKind
	Parts     []ContentPart
}

// NewOperationRequest は役割付きの画像パーツと指示文から、操作の固定レイアウトに従ってリクエストを組み立てます。
// 画像は Layout の順に並び、指示文は常に最後に置かれます。レイアウトにない役割が渡された場合はエラーです。
func NewOperationRequest(op OperationKind, images map[ImageRole]ContentPart, instruction string) (OperationRequest, error) {
	def, ok := operationDefs[op]
	if !ok {
		return OperationRequest{}, &InvalidRequestError{Operation: op, Reason: "unknown operation"}
	}
	if strings.TrimSpace(instruction) == "" {
		return OperationRequest{}, &InvalidRequestError{Operation: op, Reason: "instruction text is empty"}
	}

	allowed := make(map[ImageRole]struct{}, len(def.layout))
	for _, role := range def.layout {
		allowed[role] = struct{}{}
	}
	for role, part := range images {
		if _, ok := allowed[role]; !ok {
			return OperationRequest{}, &InvalidRequestError{Operation: op, Reason: fmt.Sprintf("image role %q is not part of the layout", role)}
		}
		if !part.IsImage() || part.MIMEType == "" || len(part.Data) == 0 {
			return OperationRequest{}, &InvalidRequestError{Operation: op, Reason: fmt.Sprintf("image role %q has no data or MIME type", role)}
		}
	}

	parts := make([]ContentPart, 0, len(images)+1)
	for _, role := range def.layout {
		if part, ok := images[role]; ok {
			parts = append(parts, part)
		}
	}
	parts = append(parts, TextPart(instruction))

	return OperationRequest{
		Operation: op,
		Output:    def.output,
		Parts:     parts,
	}, nil
}

// ImageCount はリクエストに含まれる画像パーツ数を返します。
func (r OperationRequest) ImageCount() int {
	n := 0
	for _, p := range r.Parts {
		if p.IsImage() {
			n++
		}
	}
	return n
}

// Response はリモートから返された最初の候補を正規化したものです。
type Response struct {
	Parts        []ContentPart
	FinishReason string
}
