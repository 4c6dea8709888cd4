package prompt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

// FieldError は範囲外または選択肢にない1項目です。
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError はパラメータの範囲検証に失敗した項目の一覧です。
// コンパイラ自身は検証を行わず、入力を受け付ける層が Validate を呼び出します。
type ValidationError struct {
	Operation domain.OperationKind
	Fields    []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%s: invalid parameters: %s", e.Operation, strings.Join(msgs, "; "))
}

type checker struct {
	op     domain.OperationKind
	fields []FieldError
}

func (c *checker) between(field string, v, lo, hi int) {
	if v < lo || v > hi {
		c.fields = append(c.fields, FieldError{Field: field, Reason: fmt.Sprintf("%d is outside [%d, %d]", v, lo, hi)})
	}
}

func (c *checker) percent(field string, v int) { c.between(field, v, 0, 100) }

func (c *checker) oneOf(field, v string, options []string) {
	if !slices.Contains(options, v) {
		c.fields = append(c.fields, FieldError{Field: field, Reason: fmt.Sprintf("%q is not one of %s", v, strings.Join(options, ", "))})
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Operation: c.op, Fields: c.fields}
}

// Validate は倍率・モード・スライダーを検証します。
func (p UpscaleParams) Validate() error {
	c := &checker{op: domain.OpUpscale}
	if !slices.Contains(upscaleScales, p.Scale) {
		c.fields = append(c.fields, FieldError{Field: "scale", Reason: fmt.Sprintf("%g is not a supported factor", p.Scale)})
	}
	c.oneOf("mode", p.Mode, upscaleModes)
	c.percent("creativity", p.Creativity)
	c.percent("hdr", p.HDR)
	c.percent("resemblance", p.Resemblance)
	c.percent("fractality", p.Fractality)
	c.percent("sharpness", p.Sharpness)
	c.percent("smoothness", p.Smoothness)
	c.percent("color_intensity", p.ColorIntensity)
	c.percent("highlight_recovery", p.HighlightRecovery)
	c.percent("shadow_depth", p.ShadowDepth)
	return c.err()
}

// Validate はカテゴリが既知の値かを検証します。
func (p BuildPromptParams) Validate() error {
	c := &checker{op: domain.OpBuildPrompt}
	c.oneOf("category", p.Category, builderCategories)
	return c.err()
}

// Validate は各ゾーンのスライダーが 0..100 に収まるかを検証します。
func (p ComposeParams) Validate() error {
	c := &checker{op: domain.OpCompose}
	zones := []struct {
		name string
		z    ZoneControls
	}{
		{"foreground", p.Foreground},
		{"midground", p.Midground},
		{"background", p.Background},
	}
	for _, zone := range zones {
		c.percent(zone.name+"_luminosity", zone.z.Luminosity)
		c.percent(zone.name+"_contrast", zone.z.Contrast)
		c.percent(zone.name+"_saturation", zone.z.Saturation)
	}
	return c.err()
}

// Validate は選択肢と色温度・スライダーの範囲を検証します。
func (p MergeParams) Validate() error {
	c := &checker{op: domain.OpMerge}
	c.oneOf("camera_angle", p.CameraAngle, mergeCameraAngles)
	c.oneOf("lighting_style", p.LightingStyle, mergeLightingStyles)
	c.between("color_temperature", p.ColorTemperature, 2500, 7500)
	c.percent("harmonization_strength", p.HarmonizationStrength)
	c.percent("shadow_softness", p.ShadowSoftness)
	c.percent("reflection_intensity", p.ReflectionIntensity)
	c.percent("realism", p.Realism)
	return c.err()
}

// Validate はスタイル・ライティングと各スライダーを検証します。
func (p ReconstructParams) Validate() error {
	c := &checker{op: domain.OpReconstruct}
	c.oneOf("style", p.Style, reconstructStyles)
	c.oneOf("lighting", p.Lighting, reconstructLighting)
	c.percent("refine_strength", p.RefineStrength)
	c.percent("glow_intensity", p.GlowIntensity)
	c.between("color_temperature", p.ColorTemperature, 2000, 8000)
	return c.err()
}

// Validate は製品タイプが既知の値かを検証します。
func (p MockupParams) Validate() error {
	c := &checker{op: domain.OpMockup}
	c.oneOf("product_type", p.ProductType, productTypes)
	return c.err()
}

// Validate はアングルとカメラ角度・焦点距離の範囲を検証します。
func (p PerspectiveParams) Validate() error {
	c := &checker{op: domain.OpPerspective}
	c.oneOf("angle_preset", p.AnglePreset, perspectiveAngles)
	c.between("orbit", p.Orbit, -180, 180)
	c.percent("elevation", p.Elevation)
	c.between("tilt", p.Tilt, -90, 90)
	c.between("focal_length", p.FocalLength, 18, 200)
	c.percent("dof_intensity", p.DOFIntensity)
	return c.err()
}

// Validate は光源・方向・強度・色温度を検証します。
func (p RelightParams) Validate() error {
	c := &checker{op: domain.OpRelight}
	c.oneOf("light_type", p.LightType, lightTypes)
	c.oneOf("light_direction", p.LightDirection, lightDirections)
	c.percent("intensity", p.Intensity)
	c.between("color_temperature", p.ColorTemperature, 2000, 8000)
	return c.err()
}
