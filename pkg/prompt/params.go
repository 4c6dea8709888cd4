package prompt

// GenerateParams は画像生成のパラメータです。Preset はスタイルのプロンプト断片そのものです。
type GenerateParams struct {
	Prompt string
	Preset string
}

// EditParams は自由記述の編集指示です。
type EditParams struct {
	Instruction string
}

// UpscaleParams はアップスケールのパラメータです。スライダーはすべて 0-100 です。
type UpscaleParams struct {
	Scale             float64
	Mode              string
	Creativity        int
	HDR               int
	Resemblance       int
	Fractality        int
	Sharpness         int
	Smoothness        int
	ColorIntensity    int
	HighlightRecovery int
	ShadowDepth       int
}

// DefaultUpscaleParams は 4x / Hybrid の初期値を返します。
func DefaultUpscaleParams() UpscaleParams {
	p := UpscaleParams{Scale: 4, Mode: "Hybrid"}
	p.setSliders(20, 10, 75, 25, 60, 15, 10, 50, 20)
	return p
}

// BuildPromptParams はプロンプトビルダーのパラメータです。
type BuildPromptParams struct {
	Category string
	Details  string
}

// DefaultBuildPromptParams は最初のカテゴリを選んだ初期値を返します。
func DefaultBuildPromptParams() BuildPromptParams {
	return BuildPromptParams{Category: builderCategories[0]}
}

// SuggestParams はクリエイティブ提案のパラメータです。
type SuggestParams struct {
	Description string
}

// ZoneControls は奥行きゾーンごとの輝度・コントラスト・彩度 (0-100) です。
type ZoneControls struct {
	Luminosity int
	Contrast   int
	Saturation int
}

// ComposeLayers は背景以外に指定されたレイヤーです。背景は常に必須です。
type ComposeLayers struct {
	Midground  bool
	Foreground bool
	Palette    bool
}

// ComposeParams はシーン合成のパラメータです。
type ComposeParams struct {
	Layers            ComposeLayers
	AtmosphericEffect bool
	Foreground        ZoneControls
	Midground         ZoneControls
	Background        ZoneControls
}

// DefaultComposeParams は手前ほど明るく鮮やかな初期値を返します。
func DefaultComposeParams() ComposeParams {
	return ComposeParams{
		AtmosphericEffect: true,
		Foreground:        ZoneControls{Luminosity: 60, Contrast: 60, Saturation: 55},
		Midground:         ZoneControls{Luminosity: 50, Contrast: 50, Saturation: 50},
		Background:        ZoneControls{Luminosity: 40, Contrast: 45, Saturation: 45},
	}
}

// MergeParams はスマートマージのパラメータです。
type MergeParams struct {
	Prompt                 string
	CameraAngle            string
	LightingStyle          string
	ColorTemperature       int
	HarmonizationStrength  int
	CastShadow             bool
	ShadowSoftness         int
	MapReflections         bool
	ReflectionIntensity    int
	AutoRemoveDistractions bool
	Realism                int
}

// DefaultMergeParams は 5500K で影と反射を有効にした初期値を返します。
func DefaultMergeParams() MergeParams {
	return MergeParams{
		CameraAngle:           mergeCameraAngles[0],
		LightingStyle:         mergeLightingStyles[0],
		ColorTemperature:      5500,
		HarmonizationStrength: 100,
		CastShadow:            true,
		ShadowSoftness:        50,
		MapReflections:        true,
		ReflectionIntensity:   60,
		Realism:               90,
	}
}

// ReconstructParams はシーン再構築のパラメータです。Prompt は必須です。
type ReconstructParams struct {
	Prompt           string
	Style            string
	Lighting         string
	RefineStrength   int
	KeepLayout       bool
	SkyEnhance       bool
	AddGlow          bool
	GlowIntensity    int
	GlobalRetouch    bool
	ColorRegrade     bool
	ColorTemperature int
	AtmosphericDepth bool
}

// DefaultReconstructParams はレイアウトを保ったまま仕上げる初期値を返します。
func DefaultReconstructParams() ReconstructParams {
	return ReconstructParams{
		Style:            reconstructStyles[0],
		Lighting:         reconstructLighting[0],
		RefineStrength:   75,
		KeepLayout:       true,
		SkyEnhance:       true,
		AddGlow:          true,
		GlowIntensity:    40,
		ColorRegrade:     true,
		ColorTemperature: 5500,
		AtmosphericDepth: true,
	}
}

// MockupParams はモックアップ生成のパラメータです。
type MockupParams struct {
	ProductType string
}

// DefaultMockupParams は最初の製品タイプを選んだ初期値を返します。
func DefaultMockupParams() MockupParams {
	return MockupParams{ProductType: productTypes[0]}
}

// PerspectiveParams はカメラ視点変換のパラメータです。
// Orbit は -180..180 度、Elevation は 0..100 %、Tilt は -90..90 度、FocalLength は 18..200 mm です。
type PerspectiveParams struct {
	Prompt                string
	AnglePreset           string
	Orbit                 int
	Elevation             int
	Tilt                  int
	FocalLength           int
	DOFIntensity          int
	PerspectiveCorrection bool
	LightingLock          bool
}

// DefaultPerspectiveParams はアイレベル・50mm の初期値を返します。
func DefaultPerspectiveParams() PerspectiveParams {
	return PerspectiveParams{
		AnglePreset:           perspectiveAngles[0],
		Elevation:             50,
		FocalLength:           50,
		DOFIntensity:          20,
		PerspectiveCorrection: true,
		LightingLock:          true,
	}
}

// RelightParams はライティングラボのパラメータです。ColorTemperature はケルビンです。
type RelightParams struct {
	LightType        string
	LightDirection   string
	Intensity        int
	ColorTemperature int
}

// DefaultRelightParams は最初の光源と方向を選んだ 5500K の初期値を返します。
func DefaultRelightParams() RelightParams {
	return RelightParams{
		LightType:        lightTypes[0],
		LightDirection:   lightDirections[0],
		Intensity:        75,
		ColorTemperature: 5500,
	}
}
