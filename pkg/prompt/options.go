package prompt

import "slices"

var (
	upscaleModes  = []string{"Precision", "Creative", "Hybrid", "Automatic"}
	upscaleScales = []float64{1.5, 2, 4, 6, 8}

	perspectiveAngles = []string{"Eye-Level", "Low Angle", "High Angle", "Side View", "Top/Aerial View", "3/4 View", "Rear View"}

	lightTypes      = []string{"Softbox", "Rim Light", "Spotlight", "Golden Hour", "Neon Glow", "Dramatic"}
	lightDirections = []string{"Top-Left", "Top", "Top-Right", "Left", "Front", "Right", "Bottom-Left", "Bottom", "Bottom-Right"}

	mergeCameraAngles   = []string{"Low Angle", "High Angle", "Side View", "Front View", "Back View", "Aerial View", "Top View"}
	mergeLightingStyles = []string{"Daylight", "Golden Hour", "Sunset", "Night", "Neon", "Studio", "Cinematic", "Soft", "Dramatic"}

	reconstructStyles   = []string{"Realistic", "Cinematic", "Studio", "Neon", "Minimal", "Product", "Fantasy"}
	reconstructLighting = []string{"Daylight", "Sunset", "Golden Hour", "Night", "Neon", "Overcast", "HDR"}

	productTypes = []string{"Coffee Cup", "Soda Can", "Cardboard Box", "Tote Bag", "Shampoo Bottle", "Wine Bottle", "Book Cover", "T-Shirt", "Shopping Bag"}

	builderCategories = []string{"Cinematic Photography", "Arabic Cultural Visuals", "Car Concept Art"}
)

// Catalog は各ツールで選択可能な値の一覧です。
type Catalog struct {
	UpscaleModes        []string      `json:"upscale_modes"`
	UpscaleScales       []float64     `json:"upscale_scales"`
	UpscalePresets      []PresetInfo  `json:"upscale_presets"`
	PerspectiveAngles   []string      `json:"perspective_angles"`
	LightTypes          []string      `json:"light_types"`
	LightDirections     []string      `json:"light_directions"`
	MergeCameraAngles   []string      `json:"merge_camera_angles"`
	MergeLightingStyles []string      `json:"merge_lighting_styles"`
	MergePresets        []PresetInfo  `json:"merge_presets"`
	ReconstructStyles   []string      `json:"reconstruct_styles"`
	ReconstructLighting []string      `json:"reconstruct_lighting"`
	ProductTypes        []string      `json:"product_types"`
	BuilderCategories   []string      `json:"builder_categories"`
	GeneratorStyles     []StylePreset `json:"generator_styles"`
}

// Options は選択肢一覧のコピーを返します。
func Options() Catalog {
	return Catalog{
		UpscaleModes:        slices.Clone(upscaleModes),
		UpscaleScales:       slices.Clone(upscaleScales),
		UpscalePresets:      slices.Clone(upscalePresetInfo),
		PerspectiveAngles:   slices.Clone(perspectiveAngles),
		LightTypes:          slices.Clone(lightTypes),
		LightDirections:     slices.Clone(lightDirections),
		MergeCameraAngles:   slices.Clone(mergeCameraAngles),
		MergeLightingStyles: slices.Clone(mergeLightingStyles),
		MergePresets:        slices.Clone(mergePresetInfo),
		ReconstructStyles:   slices.Clone(reconstructStyles),
		ReconstructLighting: slices.Clone(reconstructLighting),
		ProductTypes:        slices.Clone(productTypes),
		BuilderCategories:   slices.Clone(builderCategories),
		GeneratorStyles:     slices.Clone(generatorStyles),
	}
}
