package api

import (
	"context"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/generator"
	"github.com/shouni/gemini-studio-kit/pkg/prompt"
	"github.com/shouni/gemini-studio-kit/pkg/studio"
)

type operationFunc func(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error)

type validator interface {
	Validate() error
}

// operations はパスの操作名と実行関数の対応表です。
func operations() map[domain.OperationKind]operationFunc {
	return map[domain.OperationKind]operationFunc{
		domain.OpGenerate:    runGenerate,
		domain.OpEdit:        runEdit,
		domain.OpUpscale:     runUpscale,
		domain.OpBuildPrompt: runBuildPrompt,
		domain.OpSuggestions: runSuggestions,
		domain.OpAnalyze:     runAnalyze,
		domain.OpFeedback:    runFeedback,
		domain.OpCompose:     runCompose,
		domain.OpMerge:       runMerge,
		domain.OpReconstruct: runReconstruct,
		domain.OpMockup:      runMockup,
		domain.OpPerspective: runPerspective,
		domain.OpRelight:     runRelight,
	}
}

// checked は変換エラーがなければパラメータの範囲を検証します。
func checked(f *form, v validator) error {
	if err := f.err(); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return v.Validate()
}

func seedOptions(f *form) []generator.CallOption {
	if !f.has("seed") {
		return nil
	}
	seed := f.int("seed", 0)
	return []generator.CallOption{generator.WithSeed(int64(seed))}
}

func runGenerate(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	p := prompt.GenerateParams{Prompt: f.str("prompt", "")}
	if style := strings.TrimSpace(f.str("style", "")); style != "" {
		preset, ok := prompt.StylePrompt(style)
		if !ok {
			f.fail("style", "unknown style")
		}
		p.Preset = preset
	}
	opts := seedOptions(f)
	if err := checked(f, nil); err != nil {
		return domain.OperationResult{}, err
	}
	return s.Generate(ctx, p, opts...)
}

func runEdit(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	img, err := f.image(ctx, "image")
	if err != nil {
		return domain.OperationResult{}, err
	}
	return s.Edit(ctx, img, prompt.EditParams{Instruction: f.str("instruction", "")})
}

func runUpscale(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	img, err := f.image(ctx, "image")
	if err != nil {
		return domain.OperationResult{}, err
	}

	p := prompt.DefaultUpscaleParams()
	if id := strings.TrimSpace(f.str("preset", "")); id != "" {
		if p, err = prompt.ApplyUpscalePreset(p, id); err != nil {
			return domain.OperationResult{}, err
		}
	}
	p.Scale = f.float("scale", p.Scale)
	p.Mode = f.str("mode", p.Mode)
	p.Creativity = f.int("creativity", p.Creativity)
	p.HDR = f.int("hdr", p.HDR)
	p.Resemblance = f.int("resemblance", p.Resemblance)
	p.Fractality = f.int("fractality", p.Fractality)
	p.Sharpness = f.int("sharpness", p.Sharpness)
	p.Smoothness = f.int("smoothness", p.Smoothness)
	p.ColorIntensity = f.int("color_intensity", p.ColorIntensity)
	p.HighlightRecovery = f.int("highlight_recovery", p.HighlightRecovery)
	p.ShadowDepth = f.int("shadow_depth", p.ShadowDepth)
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}
	return s.Upscale(ctx, img, p)
}

func runBuildPrompt(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	p := prompt.DefaultBuildPromptParams()
	p.Category = f.str("category", p.Category)
	p.Details = f.str("details", "")
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}
	return s.BuildPrompt(ctx, p)
}

func runSuggestions(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	ref, err := f.image(ctx, "reference")
	if err != nil {
		return domain.OperationResult{}, err
	}
	return s.Suggestions(ctx, ref, prompt.SuggestParams{Description: f.str("description", "")})
}

func runAnalyze(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	img, err := f.image(ctx, "image")
	if err != nil {
		return domain.OperationResult{}, err
	}
	return s.Analyze(ctx, img)
}

func runFeedback(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	img, err := f.image(ctx, "image")
	if err != nil {
		return domain.OperationResult{}, err
	}
	return s.Feedback(ctx, img)
}

func runCompose(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	var in studio.ComposeInput
	for _, layer := range []struct {
		name string
		dst  *domain.ImageAsset
	}{
		{"background", &in.Background},
		{"midground", &in.Midground},
		{"foreground", &in.Foreground},
		{"palette", &in.Palette},
	} {
		asset, err := f.image(ctx, layer.name)
		if err != nil {
			return domain.OperationResult{}, err
		}
		*layer.dst = asset
	}

	p := prompt.DefaultComposeParams()
	p.AtmosphericEffect = f.bool("atmospheric_effect", p.AtmosphericEffect)
	zones := []struct {
		prefix string
		zone   *prompt.ZoneControls
	}{
		{"foreground", &p.Foreground},
		{"midground", &p.Midground},
		{"background", &p.Background},
	}
	for _, z := range zones {
		z.zone.Luminosity = f.int(z.prefix+"_luminosity", z.zone.Luminosity)
		z.zone.Contrast = f.int(z.prefix+"_contrast", z.zone.Contrast)
		z.zone.Saturation = f.int(z.prefix+"_saturation", z.zone.Saturation)
	}
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}
	in.Params = p
	return s.Compose(ctx, in)
}

// runMerge は背景画像の代わりに background_prompt を受け付け、その場合は先に背景を生成します。
func runMerge(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	object, err := f.image(ctx, "object")
	if err != nil {
		return domain.OperationResult{}, err
	}
	background, err := f.image(ctx, "background")
	if err != nil {
		return domain.OperationResult{}, err
	}

	p := prompt.DefaultMergeParams()
	if id := strings.TrimSpace(f.str("preset", "")); id != "" {
		if p, err = prompt.ApplyMergePreset(p, id); err != nil {
			return domain.OperationResult{}, err
		}
	}
	p.Prompt = f.str("prompt", p.Prompt)
	p.CameraAngle = f.str("camera_angle", p.CameraAngle)
	p.LightingStyle = f.str("lighting_style", p.LightingStyle)
	p.ColorTemperature = f.int("color_temperature", p.ColorTemperature)
	p.HarmonizationStrength = f.int("harmonization_strength", p.HarmonizationStrength)
	p.CastShadow = f.bool("cast_shadow", p.CastShadow)
	p.ShadowSoftness = f.int("shadow_softness", p.ShadowSoftness)
	p.MapReflections = f.bool("map_reflections", p.MapReflections)
	p.ReflectionIntensity = f.int("reflection_intensity", p.ReflectionIntensity)
	p.AutoRemoveDistractions = f.bool("auto_remove_distractions", p.AutoRemoveDistractions)
	p.Realism = f.int("realism", p.Realism)
	opts := seedOptions(f)
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}

	if background.IsZero() && !object.IsZero() {
		if bgPrompt := strings.TrimSpace(f.str("background_prompt", "")); bgPrompt != "" {
			if background, err = s.GenerateBackground(ctx, bgPrompt, opts...); err != nil {
				return domain.OperationResult{}, err
			}
		}
	}
	return s.Merge(ctx, studio.MergeInput{Object: object, Background: background, Params: p})
}

func runReconstruct(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	composite, err := f.image(ctx, "composite")
	if err != nil {
		return domain.OperationResult{}, err
	}

	p := prompt.DefaultReconstructParams()
	p.Prompt = f.str("prompt", "")
	p.Style = f.str("style", p.Style)
	p.Lighting = f.str("lighting", p.Lighting)
	p.RefineStrength = f.int("refine_strength", p.RefineStrength)
	p.KeepLayout = f.bool("keep_layout", p.KeepLayout)
	p.SkyEnhance = f.bool("sky_enhance", p.SkyEnhance)
	p.AddGlow = f.bool("add_glow", p.AddGlow)
	p.GlowIntensity = f.int("glow_intensity", p.GlowIntensity)
	p.GlobalRetouch = f.bool("global_retouch", p.GlobalRetouch)
	p.ColorRegrade = f.bool("color_regrade", p.ColorRegrade)
	p.ColorTemperature = f.int("color_temperature", p.ColorTemperature)
	p.AtmosphericDepth = f.bool("atmospheric_depth", p.AtmosphericDepth)
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}
	return s.Reconstruct(ctx, composite, p)
}

func runMockup(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	design, err := f.image(ctx, "design")
	if err != nil {
		return domain.OperationResult{}, err
	}
	p := prompt.DefaultMockupParams()
	p.ProductType = f.str("product_type", p.ProductType)
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}
	return s.Mockup(ctx, design, p)
}

func runPerspective(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	img, err := f.image(ctx, "image")
	if err != nil {
		return domain.OperationResult{}, err
	}
	p := prompt.DefaultPerspectiveParams()
	p.Prompt = f.str("prompt", "")
	p.AnglePreset = f.str("angle_preset", p.AnglePreset)
	p.Orbit = f.int("orbit", p.Orbit)
	p.Elevation = f.int("elevation", p.Elevation)
	p.Tilt = f.int("tilt", p.Tilt)
	p.FocalLength = f.int("focal_length", p.FocalLength)
	p.DOFIntensity = f.int("dof_intensity", p.DOFIntensity)
	p.PerspectiveCorrection = f.bool("perspective_correction", p.PerspectiveCorrection)
	p.LightingLock = f.bool("lighting_lock", p.LightingLock)
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}
	return s.Perspective(ctx, img, p)
}

func runRelight(ctx context.Context, s *studio.Studio, f *form) (domain.OperationResult, error) {
	img, err := f.image(ctx, "image")
	if err != nil {
		return domain.OperationResult{}, err
	}
	p := prompt.DefaultRelightParams()
	p.LightType = f.str("light_type", p.LightType)
	p.LightDirection = f.str("light_direction", p.LightDirection)
	p.Intensity = f.int("intensity", p.Intensity)
	p.ColorTemperature = f.int("color_temperature", p.ColorTemperature)
	if err := checked(f, p); err != nil {
		return domain.OperationResult{}, err
	}
	return s.Relight(ctx, img, p)
}
