package prompt

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset は存在しないプリセット ID が指定されたことを表します。
var ErrUnknownPreset = errors.New("unknown preset")

// PresetInfo はプリセットの ID と表示名です。
type PresetInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StylePreset は画像生成プロンプトの末尾に付与するスタイルです。
type StylePreset struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

var generatorStyles = []StylePreset{
	{Name: "Cinematic", Prompt: "cinematic, hyperrealistic, dramatic lighting, 8k"},
	{Name: "Photorealistic", Prompt: "photorealistic, ultra detailed, sharp focus, professional photography"},
	{Name: "Anime", Prompt: "anime style, vibrant colors, detailed background, masterpiece"},
	{Name: "Concept Art", Prompt: "digital concept art, detailed, epic composition, matte painting"},
}

// StylePrompt はスタイル名に対応するプロンプト断片を返します。
func StylePrompt(name string) (string, bool) {
	for _, s := range generatorStyles {
		if s.Name == name {
			return s.Prompt, true
		}
	}
	return "", false
}

var upscalePresetInfo = []PresetInfo{
	{ID: "clean", Name: "Clean & Sharp"},
	{ID: "realistic", Name: "Realistic"},
	{ID: "cinematic", Name: "Cinematic HDR"},
	{ID: "artistic", Name: "Artistic Detail"},
	{ID: "smooth", Name: "Smooth Natural"},
}

// upscalePresets は倍率以外のすべての項目を上書きします。
var upscalePresets = map[string]func(p *UpscaleParams){
	"clean": func(p *UpscaleParams) {
		p.setSliders(10, 5, 90, 10, 80, 5, 5, 40, 10)
		p.Mode = "Precision"
	},
	"realistic": func(p *UpscaleParams) {
		p.setSliders(20, 10, 75, 25, 60, 15, 10, 50, 20)
		p.Mode = "Hybrid"
	},
	"cinematic": func(p *UpscaleParams) {
		p.setSliders(40, 70, 60, 30, 50, 20, 40, 60, 50)
		p.Mode = "Creative"
	},
	"artistic": func(p *UpscaleParams) {
		p.setSliders(80, 25, 40, 80, 40, 10, 60, 30, 25)
		p.Mode = "Creative"
	},
	"smooth": func(p *UpscaleParams) {
		p.setSliders(5, 0, 85, 5, 30, 80, 5, 20, 5)
		p.Mode = "Precision"
	},
}

func (p *UpscaleParams) setSliders(creativity, hdr, resemblance, fractality, sharpness, smoothness, colorIntensity, highlightRecovery, shadowDepth int) {
	p.Creativity = creativity
	p.HDR = hdr
	p.Resemblance = resemblance
	p.Fractality = fractality
	p.Sharpness = sharpness
	p.Smoothness = smoothness
	p.ColorIntensity = colorIntensity
	p.HighlightRecovery = highlightRecovery
	p.ShadowDepth = shadowDepth
}

// ApplyUpscalePreset はプリセットを適用した新しいパラメータを返します。引数は変更しません。
func ApplyUpscalePreset(p UpscaleParams, id string) (UpscaleParams, error) {
	apply, ok := upscalePresets[id]
	if !ok {
		return p, fmt.Errorf("upscale preset %q: %w", id, ErrUnknownPreset)
	}
	apply(&p)
	return p, nil
}

var mergePresetInfo = []PresetInfo{
	{ID: "realistic", Name: "Auto Realistic"},
	{ID: "preserve", Name: "Preserve Original"},
	{ID: "cinematic", Name: "Cinematic Match"},
}

// mergePresets はそれぞれ名前の挙がった項目だけを変更します。
var mergePresets = map[string]func(p *MergeParams){
	"realistic": func(p *MergeParams) {
		p.HarmonizationStrength = 100
		p.CastShadow = true
		p.MapReflections = true
		p.LightingStyle = "Daylight"
		p.ColorTemperature = 5500
		p.Realism = 95
		p.Prompt = ""
	},
	"preserve": func(p *MergeParams) {
		p.HarmonizationStrength = 10
		p.CastShadow = true
		p.MapReflections = false
		p.Realism = 80
	},
	"cinematic": func(p *MergeParams) {
		p.HarmonizationStrength = 85
		p.CastShadow = true
		p.ShadowSoftness = 70
		p.MapReflections = true
		p.ReflectionIntensity = 50
		p.LightingStyle = "Cinematic"
		p.ColorTemperature = 4800
		p.Realism = 75
		p.Prompt = "dramatic, cinematic grading, anamorphic lens flare, film grain"
	},
}

// ApplyMergePreset はプリセットを適用した新しいパラメータを返します。引数は変更しません。
func ApplyMergePreset(p MergeParams, id string) (MergeParams, error) {
	apply, ok := mergePresets[id]
	if !ok {
		return p, fmt.Errorf("merge preset %q: %w", id, ErrUnknownPreset)
	}
	apply(&p)
	return p, nil
}
