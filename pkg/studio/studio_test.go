package studio

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/gemini-studio-kit/pkg/adapters"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/generator"
	"github.com/shouni/gemini-studio-kit/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\nfake-png")
	jpegBytes = []byte("\xff\xd8\xff\xe0fake-jpeg")
)

func asset(name string, data []byte, mimeType string) domain.ImageAsset {
	return domain.ImageAsset{Data: data, MIMEType: mimeType, Filename: name}
}

func newStudio(t *testing.T, inv *adapters.ScriptedInvoker) *Studio {
	t.Helper()
	d, err := generator.NewDispatcher(inv)
	require.NoError(t, err)
	s, err := New(d)
	require.NoError(t, err)
	return s
}

func lastText(call generator.Call) string {
	return call.Parts[len(call.Parts)-1].Text
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestStudio_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("プリセットなし", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.ImagePart(pngBytes, "image/png"))
		s := newStudio(t, inv)

		res, err := s.Generate(ctx, prompt.GenerateParams{Prompt: "a red cube"})
		require.NoError(t, err)
		assert.Equal(t, domain.ResultImage, res.Kind)

		call := inv.Calls()[0]
		require.Len(t, call.Parts, 1)
		assert.Equal(t, "a red cube", lastText(call))
		assert.Equal(t, generator.DefaultImageModel, call.Model)
		assert.Equal(t, []string{generator.ModalityImage}, call.ResponseModalities)
	})

	t.Run("プリセットあり", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.ImagePart(pngBytes, "image/png"))
		s := newStudio(t, inv)

		_, err := s.Generate(ctx, prompt.GenerateParams{Prompt: "a red cube", Preset: "cinematic, hyperrealistic, dramatic lighting, 8k"}, generator.WithSeed(9))
		require.NoError(t, err)
		call := inv.Calls()[0]
		assert.Equal(t, "a red cube, cinematic, hyperrealistic, dramatic lighting, 8k", lastText(call))
		require.NotNil(t, call.Seed)
		assert.Equal(t, int64(9), *call.Seed)
	})

	t.Run("プロンプトが空なら送信しない", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker()
		s := newStudio(t, inv)

		_, err := s.Generate(ctx, prompt.GenerateParams{Prompt: "  "})
		var missing *domain.MissingInputError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "prompt", missing.Field)
		assert.True(t, domain.IsUserCorrectable(err))
		assert.Empty(t, inv.Calls())
	})
}

func TestStudio_ImageOperations(t *testing.T) {
	ctx := context.Background()
	subject := asset("photo.jpg", jpegBytes, "image/jpeg")

	tests := []struct {
		name    string
		run     func(s *Studio) (domain.OperationResult, error)
		contain string
	}{
		{"edit", func(s *Studio) (domain.OperationResult, error) {
			return s.Edit(ctx, subject, prompt.EditParams{Instruction: "add a hat"})
		}, "add a hat"},
		{"upscale", func(s *Studio) (domain.OperationResult, error) {
			return s.Upscale(ctx, subject, prompt.DefaultUpscaleParams())
		}, "**4x**"},
		{"perspective", func(s *Studio) (domain.OperationResult, error) {
			return s.Perspective(ctx, subject, prompt.DefaultPerspectiveParams())
		}, "'Eye-Level' view"},
		{"relight", func(s *Studio) (domain.OperationResult, error) {
			return s.Relight(ctx, subject, prompt.RelightParams{LightType: "Spotlight", LightDirection: "Top-Left", Intensity: 75, ColorTemperature: 5500})
		}, "approximately 5500K"},
		{"mockup", func(s *Studio) (domain.OperationResult, error) {
			return s.Mockup(ctx, subject, prompt.MockupParams{ProductType: "Soda Can"})
		}, "'Soda Can'"},
		{"reconstruct", func(s *Studio) (domain.OperationResult, error) {
			p := prompt.DefaultReconstructParams()
			p.Prompt = "a foggy harbor"
			return s.Reconstruct(ctx, subject, p)
		}, `"a foggy harbor"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := adapters.NewScriptedInvoker().Respond(domain.TextPart("ok"), domain.ImagePart(pngBytes, "image/png"))
			s := newStudio(t, inv)

			res, err := tt.run(s)
			require.NoError(t, err)
			data, err := res.Bytes()
			require.NoError(t, err)
			assert.Equal(t, pngBytes, data)

			call := inv.Calls()[0]
			require.Len(t, call.Parts, 2)
			assert.Equal(t, jpegBytes, call.Parts[0].Data)
			assert.Equal(t, "image/jpeg", call.Parts[0].MIMEType, "宣言された MIME をそのまま送る")
			assert.Contains(t, lastText(call), tt.contain)
			assert.Equal(t, []string{generator.ModalityImage}, call.ResponseModalities)
		})
	}
}

func TestStudio_MissingInputs(t *testing.T) {
	ctx := context.Background()
	img := asset("a.png", pngBytes, "image/png")
	inv := adapters.NewScriptedInvoker()
	s := newStudio(t, inv)

	tests := []struct {
		name  string
		run   func() error
		field string
	}{
		{"edit 画像なし", func() error { _, err := s.Edit(ctx, domain.ImageAsset{}, prompt.EditParams{Instruction: "x"}); return err }, "image"},
		{"edit 指示なし", func() error { _, err := s.Edit(ctx, img, prompt.EditParams{}); return err }, "instruction"},
		{"upscale 画像なし", func() error { _, err := s.Upscale(ctx, domain.ImageAsset{}, prompt.DefaultUpscaleParams()); return err }, "image"},
		{"build 詳細なし", func() error { _, err := s.BuildPrompt(ctx, prompt.DefaultBuildPromptParams()); return err }, "details"},
		{"suggest 説明なし", func() error { _, err := s.Suggestions(ctx, img, prompt.SuggestParams{}); return err }, "description"},
		{"analyze 画像なし", func() error { _, err := s.Analyze(ctx, domain.ImageAsset{}); return err }, "image"},
		{"feedback 画像なし", func() error { _, err := s.Feedback(ctx, domain.ImageAsset{}); return err }, "image"},
		{"compose 背景なし", func() error {
			_, err := s.Compose(ctx, ComposeInput{Foreground: img, Params: prompt.DefaultComposeParams()})
			return err
		}, "background"},
		{"merge 被写体なし", func() error {
			_, err := s.Merge(ctx, MergeInput{Background: img, Params: prompt.DefaultMergeParams()})
			return err
		}, "object"},
		{"merge 背景なし", func() error {
			_, err := s.Merge(ctx, MergeInput{Object: img, Params: prompt.DefaultMergeParams()})
			return err
		}, "background"},
		{"reconstruct 画像なし", func() error {
			_, err := s.Reconstruct(ctx, domain.ImageAsset{}, prompt.ReconstructParams{Prompt: "x"})
			return err
		}, "composite"},
		{"reconstruct 説明なし", func() error { _, err := s.Reconstruct(ctx, img, prompt.DefaultReconstructParams()); return err }, "prompt"},
		{"mockup デザインなし", func() error { _, err := s.Mockup(ctx, domain.ImageAsset{}, prompt.DefaultMockupParams()); return err }, "design"},
		{"perspective 画像なし", func() error {
			_, err := s.Perspective(ctx, domain.ImageAsset{}, prompt.DefaultPerspectiveParams())
			return err
		}, "image"},
		{"relight 画像なし", func() error { _, err := s.Relight(ctx, domain.ImageAsset{}, prompt.DefaultRelightParams()); return err }, "image"},
		{"background プロンプトなし", func() error { _, err := s.GenerateBackground(ctx, ""); return err }, "background_prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var missing *domain.MissingInputError
			require.True(t, errors.As(err, &missing), "got %v", err)
			assert.Equal(t, tt.field, missing.Field)
		})
	}
	assert.Empty(t, inv.Calls(), "入力不足ではネットワーク呼び出しをしない")
}

func TestStudio_TextOperations(t *testing.T) {
	ctx := context.Background()
	img := asset("a.png", pngBytes, "image/png")

	t.Run("analyze はテキストモデルで画像を先に置く", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.TextPart("## Subject\nA cat."))
		s := newStudio(t, inv)

		res, err := s.Analyze(ctx, img)
		require.NoError(t, err)
		assert.Equal(t, "## Subject\nA cat.", res.Text)

		call := inv.Calls()[0]
		assert.Equal(t, generator.DefaultTextModel, call.Model)
		assert.Empty(t, call.ResponseModalities)
		assert.True(t, call.Parts[0].IsImage())
		assert.Equal(t, prompt.Analyze(), lastText(call))
	})

	t.Run("feedback", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.TextPart("### Overall Impression"))
		s := newStudio(t, inv)
		res, err := s.Feedback(ctx, img)
		require.NoError(t, err)
		assert.Equal(t, domain.ResultText, res.Kind)
		assert.Equal(t, prompt.Critique(), lastText(inv.Calls()[0]))
	})

	t.Run("suggestions は参照画像が任意", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.TextPart("a")).Respond(domain.TextPart("b"))
		s := newStudio(t, inv)

		_, err := s.Suggestions(ctx, domain.ImageAsset{}, prompt.SuggestParams{Description: "night market"})
		require.NoError(t, err)
		_, err = s.Suggestions(ctx, img, prompt.SuggestParams{Description: "night market"})
		require.NoError(t, err)

		calls := inv.Calls()
		assert.Len(t, calls[0].Parts, 1)
		require.Len(t, calls[1].Parts, 2)
		assert.True(t, calls[1].Parts[0].IsImage(), "参照画像は指示文より前")
	})

	t.Run("build prompt の前後の空白は取り除く", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.TextPart("  A sleek concept car.\n"))
		s := newStudio(t, inv)
		res, err := s.BuildPrompt(ctx, prompt.BuildPromptParams{Category: "Car Concept Art", Details: "retro EV"})
		require.NoError(t, err)
		assert.Equal(t, "A sleek concept car.", res.Text)
	})

	t.Run("空のテキストは EmptyResponseError", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond()
		s := newStudio(t, inv)
		_, err := s.Analyze(ctx, img)
		var empty *domain.EmptyResponseError
		require.True(t, errors.As(err, &empty))
		assert.Equal(t, domain.OpAnalyze, empty.Operation)
	})
}

func TestStudio_Compose(t *testing.T) {
	ctx := context.Background()
	bg := asset("bg.png", []byte("bg"), "image/png")
	fg := asset("fg.png", []byte("fg"), "image/png")
	mg := asset("mg.jpg", []byte("mg"), "image/jpeg")
	pal := asset("pal.webp", []byte("pal"), "image/webp")

	t.Run("背景・中景・前景・パレットの順に並ぶ", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.ImagePart(pngBytes, "image/png"))
		s := newStudio(t, inv)

		_, err := s.Compose(ctx, ComposeInput{Background: bg, Midground: mg, Foreground: fg, Palette: pal, Params: prompt.DefaultComposeParams()})
		require.NoError(t, err)

		parts := inv.Calls()[0].Parts
		require.Len(t, parts, 5)
		assert.Equal(t, []byte("bg"), parts[0].Data)
		assert.Equal(t, []byte("mg"), parts[1].Data)
		assert.Equal(t, []byte("fg"), parts[2].Data)
		assert.Equal(t, []byte("pal"), parts[3].Data)
		assert.Contains(t, parts[4].Text, "Palette Reference Image:")
	})

	t.Run("渡されたレイヤーだけを記述する", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.ImagePart(pngBytes, "image/png"))
		s := newStudio(t, inv)

		p := prompt.DefaultComposeParams()
		p.Layers = prompt.ComposeLayers{Midground: true, Foreground: true, Palette: true}
		_, err := s.Compose(ctx, ComposeInput{Background: bg, Foreground: fg, Params: p})
		require.NoError(t, err)

		call := inv.Calls()[0]
		require.Len(t, call.Parts, 3)
		assert.Equal(t, []byte("fg"), call.Parts[1].Data)
		text := lastText(call)
		assert.Contains(t, text, "Foreground Image:")
		assert.NotContains(t, text, "Midground Image:")
		assert.NotContains(t, text, "Palette Reference Image:")
	})
}

func TestStudio_Merge(t *testing.T) {
	ctx := context.Background()
	object := asset("cat.png", []byte("object"), "image/png")
	background := asset("beach.jpg", []byte("background"), "image/jpeg")

	t.Run("被写体・背景・指示の順", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Respond(domain.ImagePart(pngBytes, "image/png"))
		s := newStudio(t, inv)

		p := prompt.DefaultMergeParams()
		p.CastShadow = false
		_, err := s.Merge(ctx, MergeInput{Object: object, Background: background, Params: p})
		require.NoError(t, err)

		parts := inv.Calls()[0].Parts
		require.Len(t, parts, 3)
		assert.Equal(t, []byte("object"), parts[0].Data)
		assert.Equal(t, []byte("background"), parts[1].Data)
		assert.Contains(t, parts[2].Text, "Do not cast any shadows from the subject.")
	})

	t.Run("画像が返らなければ NoImageReturnedError", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().RespondWith(domain.Response{
			Parts:        []domain.ContentPart{domain.TextPart("I can't create that image.")},
			FinishReason: "SAFETY",
		})
		s := newStudio(t, inv)

		_, err := s.Merge(ctx, MergeInput{Object: object, Background: background, Params: prompt.DefaultMergeParams()})
		var noImage *domain.NoImageReturnedError
		require.True(t, errors.As(err, &noImage))
		assert.Equal(t, domain.OpMerge, noImage.Operation)
		assert.Equal(t, "SAFETY", noImage.FinishReason)
		assert.True(t, domain.IsRetryable(err))
		assert.False(t, domain.IsUserCorrectable(err))
	})

	t.Run("通信エラーは操作名付きの RemoteServiceError", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker().Fail(errors.New("503 UNAVAILABLE"))
		s := newStudio(t, inv)

		_, err := s.Merge(ctx, MergeInput{Object: object, Background: background, Params: prompt.DefaultMergeParams()})
		var remote *domain.RemoteServiceError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, domain.OpMerge, remote.Operation)
		assert.True(t, strings.Contains(err.Error(), "503 UNAVAILABLE"))
	})

	t.Run("MIME のない画像は EncodingError", func(t *testing.T) {
		inv := adapters.NewScriptedInvoker()
		s := newStudio(t, inv)

		_, err := s.Merge(ctx, MergeInput{Object: domain.ImageAsset{Data: []byte("x"), Filename: "x"}, Background: background})
		var encErr *domain.EncodingError
		require.True(t, errors.As(err, &encErr))
		assert.Equal(t, domain.OpMerge, encErr.Operation)
		assert.Empty(t, inv.Calls())
	})
}

func TestStudio_GenerateBackground(t *testing.T) {
	ctx := context.Background()
	inv := adapters.NewScriptedInvoker().
		Respond(domain.ImagePart(pngBytes, "image/png")).
		Respond(domain.ImagePart([]byte("merged"), "image/png"))
	s := newStudio(t, inv)

	bg, err := s.GenerateBackground(ctx, "a sunny beach")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, bg.Data, "生成結果のバイト列がそのまま戻る")
	assert.Equal(t, "image/png", bg.MIMEType)
	assert.Equal(t, GeneratedBackgroundName, bg.Filename)

	_, err = s.Merge(ctx, MergeInput{Object: asset("cat.png", []byte("object"), "image/png"), Background: bg, Params: prompt.DefaultMergeParams()})
	require.NoError(t, err)

	calls := inv.Calls()
	assert.Equal(t, "a sunny beach", lastText(calls[0]))
	assert.Equal(t, pngBytes, calls[1].Parts[1].Data, "生成した背景が2枚目に入る")
}
