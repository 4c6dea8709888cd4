package studio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/encoder"
	"github.com/shouni/gemini-studio-kit/pkg/generator"
	"github.com/shouni/gemini-studio-kit/pkg/prompt"
)

// GeneratedBackgroundName は背景生成の結果に付けるファイル名です。
const GeneratedBackgroundName = "generated-background.png"

// Studio は各操作の入口です。入力の検証、エンコード、指示文の組み立て、送信、結果の取り出しを順に行います。
// 状態を持たないため並行して利用できます。
type Studio struct {
	dispatcher *generator.Dispatcher
}

// New は依存関係を注入して Studio を初期化します。
func New(dispatcher *generator.Dispatcher) (*Studio, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	return &Studio{dispatcher: dispatcher}, nil
}

// Generate はテキストから画像を生成します。
func (s *Studio) Generate(ctx context.Context, p prompt.GenerateParams, opts ...generator.CallOption) (domain.OperationResult, error) {
	if err := requireText(domain.OpGenerate, "prompt", p.Prompt); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpGenerate, nil, prompt.Generate(p), opts...)
}

// Edit は自由記述の指示で画像を編集します。
func (s *Studio) Edit(ctx context.Context, image domain.ImageAsset, p prompt.EditParams) (domain.OperationResult, error) {
	if err := requireImage(domain.OpEdit, "image", image); err != nil {
		return domain.OperationResult{}, err
	}
	if err := requireText(domain.OpEdit, "instruction", p.Instruction); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpEdit, roles{domain.RoleSubject: image}, prompt.Edit(p))
}

// Upscale は超解像の指示文で画像を編集します。
func (s *Studio) Upscale(ctx context.Context, image domain.ImageAsset, p prompt.UpscaleParams) (domain.OperationResult, error) {
	if err := requireImage(domain.OpUpscale, "image", image); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpUpscale, roles{domain.RoleSubject: image}, prompt.Upscale(p))
}

// BuildPrompt は簡単なアイデアを詳細なプロンプトに展開します。
func (s *Studio) BuildPrompt(ctx context.Context, p prompt.BuildPromptParams) (domain.OperationResult, error) {
	if err := requireText(domain.OpBuildPrompt, "details", p.Details); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpBuildPrompt, nil, prompt.BuildPrompt(p))
}

// Suggestions は説明文と任意の参照画像からクリエイティブな提案を得ます。
func (s *Studio) Suggestions(ctx context.Context, reference domain.ImageAsset, p prompt.SuggestParams) (domain.OperationResult, error) {
	if err := requireText(domain.OpSuggestions, "description", p.Description); err != nil {
		return domain.OperationResult{}, err
	}
	var images roles
	if !reference.IsZero() {
		images = roles{domain.RoleReference: reference}
	}
	return s.run(ctx, domain.OpSuggestions, images, prompt.Suggest(p))
}

// Analyze は画像を詳細に解析します。
func (s *Studio) Analyze(ctx context.Context, image domain.ImageAsset) (domain.OperationResult, error) {
	if err := requireImage(domain.OpAnalyze, "image", image); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpAnalyze, roles{domain.RoleSubject: image}, prompt.Analyze())
}

// Feedback はアートディレクター視点の講評を得ます。
func (s *Studio) Feedback(ctx context.Context, image domain.ImageAsset) (domain.OperationResult, error) {
	if err := requireImage(domain.OpFeedback, "image", image); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpFeedback, roles{domain.RoleSubject: image}, prompt.Critique())
}

// ComposeInput はシーン合成の入力です。背景のみ必須です。
type ComposeInput struct {
	Background domain.ImageAsset
	Midground  domain.ImageAsset
	Foreground domain.ImageAsset
	Palette    domain.ImageAsset
	Params     prompt.ComposeParams
}

// Compose は最大4枚のレイヤーを1枚のシーンに合成します。
// 指示文のレイヤー記述は実際に渡された画像から決まり、Params.Layers は上書きされます。
func (s *Studio) Compose(ctx context.Context, in ComposeInput) (domain.OperationResult, error) {
	if err := requireImage(domain.OpCompose, "background", in.Background); err != nil {
		return domain.OperationResult{}, err
	}

	images := roles{domain.RoleBackground: in.Background}
	optional := []struct {
		role  domain.ImageRole
		asset domain.ImageAsset
	}{
		{domain.RoleMidground, in.Midground},
		{domain.RoleForeground, in.Foreground},
		{domain.RolePalette, in.Palette},
	}
	for _, o := range optional {
		if !o.asset.IsZero() {
			images[o.role] = o.asset
		}
	}

	p := in.Params
	p.Layers = prompt.ComposeLayers{
		Midground:  !in.Midground.IsZero(),
		Foreground: !in.Foreground.IsZero(),
		Palette:    !in.Palette.IsZero(),
	}
	return s.run(ctx, domain.OpCompose, images, prompt.Compose(p))
}

// MergeInput はスマートマージの入力です。
type MergeInput struct {
	Object     domain.ImageAsset
	Background domain.ImageAsset
	Params     prompt.MergeParams
}

// Merge は被写体を背景に合成します。リクエストは被写体、背景、指示文の順に並びます。
func (s *Studio) Merge(ctx context.Context, in MergeInput) (domain.OperationResult, error) {
	if err := requireImage(domain.OpMerge, "object", in.Object); err != nil {
		return domain.OperationResult{}, err
	}
	if err := requireImage(domain.OpMerge, "background", in.Background); err != nil {
		return domain.OperationResult{}, err
	}
	images := roles{
		domain.RoleObject:     in.Object,
		domain.RoleBackground: in.Background,
	}
	return s.run(ctx, domain.OpMerge, images, prompt.Merge(in.Params))
}

// GenerateBackground はマージ用の背景を生成し、次の操作の入力として使える ImageAsset に戻します。
func (s *Studio) GenerateBackground(ctx context.Context, backgroundPrompt string, opts ...generator.CallOption) (domain.ImageAsset, error) {
	if err := requireText(domain.OpGenerate, "background_prompt", backgroundPrompt); err != nil {
		return domain.ImageAsset{}, err
	}
	res, err := s.run(ctx, domain.OpGenerate, nil, prompt.Generate(prompt.GenerateParams{Prompt: backgroundPrompt}), opts...)
	if err != nil {
		return domain.ImageAsset{}, err
	}
	asset, err := encoder.DecodeResult(res, GeneratedBackgroundName)
	if err != nil {
		return domain.ImageAsset{}, domain.WithOperation(err, domain.OpGenerate)
	}
	return asset, nil
}

// Reconstruct は合成の粗い画像を1枚のシーンとして再構築します。説明文は必須です。
func (s *Studio) Reconstruct(ctx context.Context, composite domain.ImageAsset, p prompt.ReconstructParams) (domain.OperationResult, error) {
	if err := requireImage(domain.OpReconstruct, "composite", composite); err != nil {
		return domain.OperationResult{}, err
	}
	if err := requireText(domain.OpReconstruct, "prompt", p.Prompt); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpReconstruct, roles{domain.RoleComposite: composite}, prompt.Reconstruct(p))
}

// Mockup はデザイン画像を製品の 3D モックアップに貼り付けます。
func (s *Studio) Mockup(ctx context.Context, design domain.ImageAsset, p prompt.MockupParams) (domain.OperationResult, error) {
	if err := requireImage(domain.OpMockup, "design", design); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpMockup, roles{domain.RoleDesign: design}, prompt.Mockup(p))
}

// Perspective は新しいカメラ視点から画像を再レンダリングします。
func (s *Studio) Perspective(ctx context.Context, image domain.ImageAsset, p prompt.PerspectiveParams) (domain.OperationResult, error) {
	if err := requireImage(domain.OpPerspective, "image", image); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpPerspective, roles{domain.RoleSubject: image}, prompt.Perspective(p))
}

// Relight は新しい光源で画像をライティングし直します。
func (s *Studio) Relight(ctx context.Context, image domain.ImageAsset, p prompt.RelightParams) (domain.OperationResult, error) {
	if err := requireImage(domain.OpRelight, "image", image); err != nil {
		return domain.OperationResult{}, err
	}
	return s.run(ctx, domain.OpRelight, roles{domain.RoleSubject: image}, prompt.Relight(p))
}

type roles = map[domain.ImageRole]domain.ImageAsset

// run はエンコード、リクエストの組み立て、送信、取り出しを行い、エラーに操作名を付与します。
func (s *Studio) run(ctx context.Context, op domain.OperationKind, images roles, instruction string, opts ...generator.CallOption) (domain.OperationResult, error) {
	parts, err := encoder.EncodeRoles(ctx, images)
	if err != nil {
		return domain.OperationResult{}, domain.WithOperation(err, op)
	}

	req, err := domain.NewOperationRequest(op, parts, instruction)
	if err != nil {
		return domain.OperationResult{}, err
	}

	res, err := s.dispatcher.Run(ctx, req, opts...)
	if err != nil {
		slog.WarnContext(ctx, "操作に失敗しました", "operation", op, "retryable", domain.IsRetryable(err), "error", err)
		return domain.OperationResult{}, domain.WithOperation(err, op)
	}

	slog.InfoContext(ctx, "操作が完了しました", "operation", op, "kind", res.Kind)
	return res, nil
}

func requireImage(op domain.OperationKind, field string, asset domain.ImageAsset) error {
	if len(asset.Data) == 0 {
		return &domain.MissingInputError{Operation: op, Field: field}
	}
	return nil
}

func requireText(op domain.OperationKind, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.MissingInputError{Operation: op, Field: field}
	}
	return nil
}
