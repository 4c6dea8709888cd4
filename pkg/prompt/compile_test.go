package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var softnessPhrases = []string{
	"with sharp, defined edges (hard lighting).",
	"with a balanced mix of hard and soft edges.",
	"with very diffuse, soft edges (soft lighting).",
}

func TestGenerate(t *testing.T) {
	t.Run("プリセットなしはプロンプトそのまま", func(t *testing.T) {
		assert.Equal(t, "a red cube", Generate(GenerateParams{Prompt: "a red cube"}))
	})

	t.Run("プリセットはカンマ区切りで連結", func(t *testing.T) {
		got := Generate(GenerateParams{Prompt: "a red cube", Preset: "cinematic, hyperrealistic, dramatic lighting, 8k"})
		assert.Equal(t, "a red cube, cinematic, hyperrealistic, dramatic lighting, 8k", got)
	})

	t.Run("空白だけのプリセットは付与しない", func(t *testing.T) {
		assert.Equal(t, "a red cube", Generate(GenerateParams{Prompt: "a red cube", Preset: "  "}))
	})
}

func TestEdit(t *testing.T) {
	assert.Equal(t, "make it blue", Edit(EditParams{Instruction: "make it blue"}))
}

func TestCompilers_Deterministic(t *testing.T) {
	compilers := map[string]func() string{
		"upscale":     func() string { return Upscale(DefaultUpscaleParams()) },
		"compose":     func() string { return Compose(DefaultComposeParams()) },
		"merge":       func() string { return Merge(DefaultMergeParams()) },
		"reconstruct": func() string {
			p := DefaultReconstructParams()
			p.Prompt = "a castle"
			return Reconstruct(p)
		},
		"mockup":      func() string { return Mockup(DefaultMockupParams()) },
		"perspective": func() string { return Perspective(DefaultPerspectiveParams()) },
		"relight":     func() string { return Relight(DefaultRelightParams()) },
		"build":       func() string { return BuildPrompt(BuildPromptParams{Category: "Car Concept Art", Details: "retro"}) },
		"suggest":     func() string { return Suggest(SuggestParams{Description: "moody street"}) },
		"analyze":     Analyze,
		"critique":    Critique,
	}
	for name, compile := range compilers {
		t.Run(name, func(t *testing.T) {
			first := compile()
			assert.NotEmpty(t, first)
			assert.Equal(t, first, compile(), "同じパラメータからは同じ文字列が生成されるのだ")
			assert.NotContains(t, first, "%!", "書式の崩れがないこと")
		})
	}
}

func TestUpscale(t *testing.T) {
	p := DefaultUpscaleParams()
	p.Scale = 1.5
	p.Mode = "Precision"
	p.Creativity = 33
	got := Upscale(p)

	assert.Contains(t, got, "**1.5x**")
	assert.Contains(t, got, "Use **Precision Mode**")
	assert.Contains(t, got, "**Creativity**: 33.")
	assert.Contains(t, got, "**Shadow Depth**: 20.")

	p.Scale = 4
	assert.Contains(t, Upscale(p), "**4x**")
}

func TestCompose(t *testing.T) {
	t.Run("背景のみ", func(t *testing.T) {
		got := Compose(DefaultComposeParams())
		assert.Contains(t, got, "- Background Image:")
		assert.NotContains(t, got, "Midground Image:")
		assert.NotContains(t, got, "Foreground Image:")
		assert.NotContains(t, got, "Palette Reference Image:")
		assert.Contains(t, got, "Create a natural and balanced color palette based on the background image.")
		assert.Contains(t, got, "Apply a subtle atmospheric effect")
		assert.Contains(t, got, "luminosity to a level of 60%, contrast to 60%, and saturation to 55%")
		assert.Contains(t, got, "luminosity to 40%, contrast to 45%, and saturation to 45%")
	})

	t.Run("全レイヤーとパレット", func(t *testing.T) {
		p := DefaultComposeParams()
		p.Layers = ComposeLayers{Midground: true, Foreground: true, Palette: true}
		p.AtmosphericEffect = false
		got := Compose(p)
		assert.Contains(t, got, "Midground Image:")
		assert.Contains(t, got, "Foreground Image:")
		assert.Contains(t, got, "Palette Reference Image:")
		assert.Contains(t, got, "Analyze the 'Palette Reference Image'")
		assert.NotContains(t, got, "based on the background image.")
		assert.Contains(t, got, "Maintain clear visibility across all depths.")
		assert.NotContains(t, got, "Apply a subtle atmospheric effect")
	})
}

func TestMerge(t *testing.T) {
	t.Run("影なしは否定の文言に置き換わり帯域の文言を含まない", func(t *testing.T) {
		p := DefaultMergeParams()
		p.CastShadow = false
		got := Merge(p)
		assert.Contains(t, got, "Do not cast any shadows from the subject.")
		assert.NotContains(t, got, "Cast physically correct shadows")
		for _, phrase := range softnessPhrases {
			assert.NotContains(t, got, phrase)
		}
	})

	t.Run("影ありは柔らかさに応じた文言", func(t *testing.T) {
		p := DefaultMergeParams()
		p.ShadowSoftness = 29
		got := Merge(p)
		assert.Contains(t, got, "Cast physically correct shadows from the subject onto the background, with sharp, defined edges (hard lighting).")
		assert.NotContains(t, got, "Do not cast any shadows")
	})

	t.Run("反射の切り替え", func(t *testing.T) {
		p := DefaultMergeParams()
		assert.Contains(t, Merge(p), "approximately 60%.")
		p.MapReflections = false
		got := Merge(p)
		assert.Contains(t, got, "The subject should have no environmental reflections.")
		assert.NotContains(t, got, "distorted reflections")
	})

	t.Run("ノイズ除去は有効時のみ", func(t *testing.T) {
		p := DefaultMergeParams()
		assert.NotContains(t, Merge(p), "Distraction Removal")
		p.AutoRemoveDistractions = true
		assert.Contains(t, Merge(p), "2. **Distraction Removal**")
	})

	t.Run("クリエイティブ指示は空なら出力しない", func(t *testing.T) {
		p := DefaultMergeParams()
		assert.NotContains(t, Merge(p), "Creative Direction")
		p.Prompt = "film grain"
		assert.Contains(t, Merge(p), `apply the following style and mood: "film grain"`)
	})

	t.Run("数値と選択肢がそのまま入る", func(t *testing.T) {
		p := DefaultMergeParams()
		p.CameraAngle = "Aerial View"
		p.LightingStyle = "Neon"
		p.ColorTemperature = 3200
		p.HarmonizationStrength = 40
		got := Merge(p)
		assert.Contains(t, got, "**Camera Perspective**: 'Aerial View'.")
		assert.Contains(t, got, "lighting style should be 'Neon'.")
		assert.Contains(t, got, "approximately 3200K.")
		assert.Contains(t, got, "at 40% strength")
	})
}

func TestReconstruct(t *testing.T) {
	passes := map[string]func(p *ReconstructParams, on bool){
		"Sky & Atmosphere Reconstruction": func(p *ReconstructParams, on bool) { p.SkyEnhance = on },
		"Atmospheric Depth Pass":          func(p *ReconstructParams, on bool) { p.AtmosphericDepth = on },
		"Cinematic Color Grading Pass":    func(p *ReconstructParams, on bool) { p.ColorRegrade = on },
		"Glow & Highlight Pass":           func(p *ReconstructParams, on bool) { p.AddGlow = on },
		"Final Retouch & Polish Pass":     func(p *ReconstructParams, on bool) { p.GlobalRetouch = on },
	}
	for heading, toggle := range passes {
		t.Run(heading, func(t *testing.T) {
			p := DefaultReconstructParams()
			p.Prompt = "a neon city"
			toggle(&p, true)
			assert.Contains(t, Reconstruct(p), heading)
			toggle(&p, false)
			assert.NotContains(t, Reconstruct(p), heading)
		})
	}

	t.Run("レイアウト維持の切り替え", func(t *testing.T) {
		p := DefaultReconstructParams()
		p.Prompt = "x"
		assert.Contains(t, Reconstruct(p), "Strictly maintain the original positions")
		p.KeepLayout = false
		got := Reconstruct(p)
		assert.Contains(t, got, "You have creative freedom")
		assert.NotContains(t, got, "Strictly maintain")
	})

	t.Run("生の値", func(t *testing.T) {
		p := DefaultReconstructParams()
		p.Prompt = "a castle at dusk"
		p.GlowIntensity = 12
		p.ColorTemperature = 3100
		p.RefineStrength = 64
		got := Reconstruct(p)
		assert.Contains(t, got, `"a castle at dusk"`)
		assert.Contains(t, got, "should be 12%.")
		assert.Contains(t, got, "approximately 3100K.")
		assert.Contains(t, got, "overall intensity of 64%.")
	})
}

func TestMockup(t *testing.T) {
	got := Mockup(MockupParams{ProductType: "Tote Bag"})
	assert.Equal(t, 3, strings.Count(got, "'Tote Bag'"))
	assert.Contains(t, got, "The first image provided.")
}

func TestPerspective(t *testing.T) {
	p := DefaultPerspectiveParams()
	p.Orbit = -90
	p.Tilt = 15
	p.FocalLength = 85
	got := Perspective(p)
	assert.Contains(t, got, "'Eye-Level' view")
	assert.Contains(t, got, "by -90° from the front")
	assert.Contains(t, got, "height is at 50%.")
	assert.Contains(t, got, "tilted by 15°.")
	assert.Contains(t, got, "Simulate a 85mm lens.")
	assert.Contains(t, got, "intensity of 20%.")
	assert.Contains(t, got, "Apply automatic perspective correction")
	assert.Contains(t, got, "Preserve the original lighting direction")
	assert.NotContains(t, got, "Creative Direction")

	p.PerspectiveCorrection = false
	p.LightingLock = false
	p.Prompt = "noir"
	got = Perspective(p)
	assert.Contains(t, got, "Natural lens distortion is acceptable.")
	assert.Contains(t, got, "Generate new, natural lighting")
	assert.Contains(t, got, `apply this creative style: "noir"`)
}

func TestRelight(t *testing.T) {
	got := Relight(RelightParams{LightType: "Spotlight", LightDirection: "Top-Left", Intensity: 75, ColorTemperature: 5500})
	for _, want := range []string{"Spotlight", "Top-Left", "75%", "5500K"} {
		assert.Contains(t, got, want)
	}
}

func TestTextInstructions(t *testing.T) {
	got := BuildPrompt(BuildPromptParams{Category: "Arabic Cultural Visuals", Details: "a market at night"})
	assert.Contains(t, got, "- Category: Arabic Cultural Visuals")
	assert.Contains(t, got, "- User's Details: a market at night")

	assert.Contains(t, Suggest(SuggestParams{Description: "rainy alley"}), `Description: "rainy alley"`)
	assert.Contains(t, Analyze(), "Format your response as markdown.")
	assert.Contains(t, Critique(), "### **Overall Impression**")
}
