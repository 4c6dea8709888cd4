package prompt

import (
	"strconv"
	"strings"
)

// Generate は生成プロンプトを返します。プリセットが空でなければ ", " で連結します。
func Generate(p GenerateParams) string {
	if strings.TrimSpace(p.Preset) == "" {
		return p.Prompt
	}
	return p.Prompt + ", " + p.Preset
}

// Edit は編集指示をそのまま返します。
func Edit(p EditParams) string {
	return p.Instruction
}

// Upscale は超解像の構造化された指示文を組み立てます。
func Upscale(p UpscaleParams) string {
	var b builder
	b.line("**Task**: Perform a professional-grade AI Super Resolution upscale on the provided image.")
	b.line("**Objective**: Transform the image into a crystal-clear, high-fidelity, 8K-equivalent output. Combine advanced super-resolution, texture restoration, and AI fine detail synthesis.")
	b.blank()
	b.line("**Instructions & Parameters**:")
	b.blank()
	b.linef("1. **Upscale Factor**: Scale the image resolution by **%sx**. The final result should be sharp and detailed as if it were 8K.", strconv.FormatFloat(p.Scale, 'f', -1, 64))
	b.blank()
	b.linef("2. **Processing Mode**: Use **%s Mode**.", p.Mode)
	b.line("   - In 'Precision' mode, prioritize preserving the original image's details and structure with maximum fidelity.")
	b.line("   - In 'Creative' mode, use AI to reimagine and generate new, plausible fine details and textures.")
	b.line("   - In 'Hybrid' mode, find a balance between preservation and creative enhancement.")
	b.line("   - In 'Automatic' mode, analyze the image content to choose the best approach.")
	b.blank()
	b.line("3. **Creative Control (Sliders 0-100)**:")
	b.linef("   - **Creativity**: %d. Controls how much the AI adds new details.", p.Creativity)
	b.linef("   - **HDR**: %d. Enhances dynamic range, making lights brighter and shadows darker.", p.HDR)
	b.linef("   - **Resemblance**: %d. How strictly the output must adhere to the original image's composition and color.", p.Resemblance)
	b.linef("   - **Fractality**: %d. Adds intricate micro-details and textures.", p.Fractality)
	b.linef("   - **Sharpness**: %d. Controls the crispness of edges.", p.Sharpness)
	b.linef("   - **Smoothness**: %d. Reduces noise and smooths out textures.", p.Smoothness)
	b.linef("   - **Color Intensity**: %d. Boosts color saturation and vibrance.", p.ColorIntensity)
	b.linef("   - **Highlight Recovery**: %d. Restores detail in overexposed areas.", p.HighlightRecovery)
	b.linef("   - **Shadow Depth**: %d. Enhances detail and contrast in dark areas.", p.ShadowDepth)
	b.blank()
	b.line("4. **Execution**:")
	b.line("   - Analyze the image for different regions (faces, fabrics, backgrounds) and apply enhancements adaptively.")
	b.line("   - Fix compression artifacts and color banding.")
	b.line("   - The final output must be a single, flawlessly upscaled image. Do not add any text or borders.")
	return b.String()
}

// Compose はシーン合成の指示文を組み立てます。レイヤーの説明は指定されたレイヤーの分だけ出力します。
func Compose(p ComposeParams) string {
	var b builder
	b.line(`**Task**: Perform an advanced "Scene Composition and Luminosity Balancing". Your goal is to merge multiple image layers into a single, photorealistic, and cohesive scene. You must follow detailed instructions on lighting, color, and depth.`)
	b.blank()
	b.line("**Input Layers Provided**:")
	b.line("- Background Image: The main environment and furthest elements.")
	if p.Layers.Midground {
		b.line("- Midground Image: Contains elements in the middle distance.")
	}
	if p.Layers.Foreground {
		b.line("- Foreground Image: Contains the primary subject(s) closest to the camera.")
	}
	if p.Layers.Palette {
		b.line("- Palette Reference Image: Use this image to define the global color palette, mood, and lighting style for the entire composite.")
	}
	b.blank()
	b.line("**Core Instructions**:")
	b.blank()
	b.line("1. **Layer Integration**:")
	b.line("   - Isolate the main subjects from the foreground and midground images (if provided).")
	b.line("   - Place them into the background image, respecting their designated depth order (Foreground > Midground > Background).")
	b.line("   - Ensure correct scale and perspective alignment between layers for a seamless composition.")
	b.blank()
	b.line("2. **Global Color Harmonization**:")
	if p.Layers.Palette {
		b.line("   - Analyze the 'Palette Reference Image' and extract its dominant colors, overall temperature (warm/cool), and lighting characteristics. Apply this mood and color grade across the entire final scene.")
	} else {
		b.line("   - Create a natural and balanced color palette based on the background image.")
	}
	b.line("   - All layers must look like they belong in the same color space and were captured under the same lighting conditions.")
	b.blank()
	b.line("3. **Depth-Aware Luminosity & Contrast Balancing**:")
	b.line("   - This is critical for realism. Adjust each layer based on its position in the scene to create a convincing sense of depth.")
	b.linef("   - **Foreground Zone**: Should have the highest visual presence. Adjust luminosity to a level of %d%%, contrast to %d%%, and saturation to %d%%.",
		p.Foreground.Luminosity, p.Foreground.Contrast, p.Foreground.Saturation)
	b.linef("   - **Midground Zone**: Create a balanced transition. Adjust luminosity to %d%%, contrast to %d%%, and saturation to %d%%.",
		p.Midground.Luminosity, p.Midground.Contrast, p.Midground.Saturation)
	b.linef("   - **Background Zone**: Should appear furthest away. Adjust luminosity to %d%%, contrast to %d%%, and saturation to %d%%.",
		p.Background.Luminosity, p.Background.Contrast, p.Background.Saturation)
	b.blank()
	b.line("4. **Atmospheric Perspective**:")
	if p.AtmosphericEffect {
		b.line("   - Apply a subtle atmospheric effect (like haze, fog, or aerial perspective) that increases with distance. This means the background should be slightly more faded or color-shifted than the foreground, enhancing the sense of depth.")
	} else {
		b.line("   - Maintain clear visibility across all depths.")
	}
	b.blank()
	b.line("5. **Relighting and Shadows**:")
	b.line("   - Analyze the primary light source from the background (or palette image).")
	b.line("   - Re-light the foreground and midground subjects to match this light source in direction, softness, and color.")
	b.line("   - Cast realistic shadows from the foreground/midground objects onto the layers behind them, considering the light source and environment.")
	b.blank()
	b.line("**Output Requirement**:")
	b.line("- A single, flawlessly merged, high-resolution image that looks like it was captured with a single camera. Do not output any text, artifacts, or borders.")
	return b.String()
}

// MergeShadowClause は影の指示を返します。影なしの場合は影を落とさない旨の文言になります。
func MergeShadowClause(p MergeParams) string {
	if !p.CastShadow {
		return "Do not cast any shadows from the subject."
	}
	return "Cast physically correct shadows from the subject onto the background, " + ShadowSoftnessPhrase(p.ShadowSoftness)
}

// MergeReflectionClause は反射の指示を返します。
func MergeReflectionClause(p MergeParams) string {
	if !p.MapReflections {
		return "The subject should have no environmental reflections."
	}
	return "Generate precise, distorted reflections of the background environment onto the subject's surfaces. The overall intensity of these reflections should be approximately " +
		strconv.Itoa(p.ReflectionIntensity) + "%."
}

// Merge は被写体画像（1枚目）を背景画像（2枚目）に合成する指示文を組み立てます。
func Merge(p MergeParams) string {
	var b builder
	b.line(`**Task**: Perform a professional, ultra-realistic "deep scene fusion." Your goal is to seamlessly integrate the primary subject from the 'Object Image' (the first image) into the 'Background Image' (the second image) as if it were photographed in that exact environment, following the user's creative direction.`)
	b.blank()
	b.line("**AI Instructions**:")
	b.line("1. **Scene Analysis**: First, deeply analyze the 'Background Image'. Identify its intrinsic properties: the direction, color, and quality of light, ambient color temperature, perspective, and depth map.")
	if p.AutoRemoveDistractions {
		b.line("2. **Distraction Removal**: Before integration, analyze the 'Background Image' for any visually distracting or out-of-place objects. Use intelligent, texture-aware inpainting to seamlessly remove them, creating a clean canvas.")
	}
	b.line("3. **Subject Integration & Photorealistic Compositing**: Isolate the main subject from the 'Object Image' and place it into the background. Re-render the subject to achieve a flawless, physically accurate composite.")
	b.linef("   - **Realism Level**: %s", RealismPhrase(p.Realism))
	b.line("   - **Depth Occlusion**: Analyze the background's depth map. Place the subject realistically within the 3D space, ensuring correct occlusion by foreground elements (e.g., placing the subject *behind* a tree if appropriate).")
	b.linef("   - **Perspective Matching**: Align the subject to the specified **Camera Perspective**: '%s'.", p.CameraAngle)
	b.line("   - **Photometric Tonemapping & Relighting**:")
	b.linef("     - %s", HarmonizationPhrase(p.HarmonizationStrength))
	b.linef("     - The overall lighting style should be '%s'.", p.LightingStyle)
	b.linef("     - Adjust the final scene to a color temperature of approximately %dK.", p.ColorTemperature)
	b.linef("   - **Shadows**: %s", MergeShadowClause(p))
	b.linef("   - **Reflections**: %s", MergeReflectionClause(p))
	if strings.TrimSpace(p.Prompt) != "" {
		b.blank()
		b.linef(`**User's Creative Direction**: In addition to the automatic analysis, apply the following style and mood: "%s"`, p.Prompt)
	}
	b.blank()
	b.line("**Output Requirement**:")
	b.line("- The final output must be a single, cohesive, and high-quality merged image. Do not show original images, text, or any artifacts. Only the final composite matters.")
	return b.String()
}

// Reconstruct はシーン再構築の指示文を組み立てます。無効なパスは出力しません。
func Reconstruct(p ReconstructParams) string {
	var b builder
	b.line("**Task**: World-Class AI Scene Reconstruction. Your objective is to transform a rough composite image into a single, fully unified, photorealistic, and cinematic scene. You must follow a multi-pass process, rebuilding the environment, lighting, and mood based on the user's creative direction. The quality must be paramount, aiming for studio-shot realism.")
	b.blank()
	b.line("**User's Creative Direction**:")
	b.linef(`- **Main Goal & Description**: "%s"`, p.Prompt)
	b.linef(`- **Overall Style**: A "%s" aesthetic.`, p.Style)
	b.linef(`- **Lighting Environment**: A "%s" setup.`, p.Lighting)
	b.blank()
	b.line("**AI Reconstruction Pipeline**:")
	b.blank()
	b.line("1. **Scene Analysis & Segmentation**:")
	b.line("   - Analyze the provided composite image. Identify all distinct elements, their boundaries, and their implied depth (foreground, midground, background).")
	if p.KeepLayout {
		b.line("   - Strictly maintain the original positions and arrangement of the elements.")
	} else {
		b.line("   - You have creative freedom to slightly adjust the positions of elements for a more balanced and effective composition.")
	}
	if p.SkyEnhance {
		b.blank()
		b.line("2. **Sky & Atmosphere Reconstruction**:")
		b.line("   - Detect the sky region in the image.")
		b.linef(`   - Completely replace or dynamically re-render the sky to create a realistic "%s" atmosphere that matches the prompt: "%s".`, p.Lighting, p.Prompt)
		b.line("   - The new sky must become the primary light source for the entire scene. Generate soft, volumetric light from the sky that creates a global ambience.")
	}
	b.blank()
	b.line("3. **Global Relighting & Harmonization**:")
	b.line("   - Based on the new sky (if applicable) and the prompt's lighting direction, re-light every element in the scene.")
	b.line("   - Cast consistent, physically accurate shadows and generate environmental reflections on all appropriate surfaces (water, metal, glass).")
	b.line("   - Harmonize the color grading and exposure across all elements to make them appear as if they were shot with the same camera at the same time.")
	if p.AtmosphericDepth {
		b.blank()
		b.line("4. **Atmospheric Depth Pass**:")
		b.line("   - Apply a realistic atmospheric perspective. Elements in the background should have slightly lower contrast, softened details, and a subtle haze or color shift to create a convincing sense of cinematic depth.")
	}
	if p.ColorRegrade {
		b.blank()
		b.line("5. **Cinematic Color Grading Pass**:")
		b.line("   - Perform a final, global color grading pass on the entire scene to unify the tones and achieve the desired mood.")
		b.linef("   - Adjust the final scene's color temperature to approximately %dK.", p.ColorTemperature)
	}
	if p.AddGlow {
		b.blank()
		b.line("6. **Glow & Highlight Pass**:")
		b.line("   - Add a subtle, cinematic glow or bloom effect to the brightest highlights, light sources, and reflective surfaces.")
		b.linef("   - The intensity of this glow effect should be %d%%. This should enhance realism, not create an overly stylized look unless requested.", p.GlowIntensity)
	}
	if p.GlobalRetouch {
		b.blank()
		b.line("7. **Final Retouch & Polish Pass**:")
		b.line("   - Apply a professional retouching pass. Subtly smooth textures on surfaces like skin or fabric, clean up any remaining hard edges between elements, and enhance fine details for a polished, high-end commercial look.")
	}
	b.blank()
	b.line("**Core Technical Constraints**:")
	b.linef("- **Refine Strength**: Apply all the above changes with an overall intensity of %d%%. A lower value means more subtle adjustments, while a higher value allows for a complete creative rework of the scene.", p.RefineStrength)
	b.line("- **Seamless Blending**: The highest priority is to ensure there are no visible seams, halos, or artifacts. All elements must be perfectly blended.")
	b.blank()
	b.line("**Output Requirement**:")
	b.line("- Produce a single, high-resolution, flawlessly reconstructed image. Do not output any text, explanations, or borders. The final image should be indistinguishable from a professional photograph or a still from a high-budget film.")
	return b.String()
}

// Mockup はデザイン画像（1枚目）を製品に貼り付ける指示文を組み立てます。
func Mockup(p MockupParams) string {
	var b builder
	b.line("**Task**: High-Fidelity 3D Product Mockup Generation.")
	b.linef("**Objective**: Apply the user-provided design onto a photorealistic 3D model of a '%s'. The final image must be 8K resolution, suitable for professional marketing.", p.ProductType)
	b.blank()
	b.line("**Inputs**:")
	b.line("1. **Design Image**: The first image provided. This is the user's logo, label, or artwork.")
	b.linef("2. **Product Type**: '%s'", p.ProductType)
	b.blank()
	b.line("**Instructions**:")
	b.linef("1. **Model Creation**: Generate a clean, high-quality, 3D model of the specified '%s'.", p.ProductType)
	b.line("2. **Texture Application**: Realistically apply the 'Design Image' onto the surface of the 3D model. The design should wrap correctly around the product's contours, respecting its material properties (e.g., matte, gloss, texture).")
	b.line("3. **Scene & Lighting**: Place the final product model in a neutral, professional studio environment (e.g., a clean white or light gray infinity cove). The lighting should be soft and realistic, casting subtle, physically accurate shadows on the ground plane.")
	b.line("4. **Rendering**: Render the scene with extreme photorealism. Ensure the final output is sharp, detailed, and at a very high resolution (8K equivalent).")
	b.blank()
	b.line("**Output Requirement**: A single, final, rendered image of the product mockup. Do not output any text, borders, or explanations.")
	return b.String()
}

// Perspective はカメラ視点変換の指示文を組み立てます。
func Perspective(p PerspectiveParams) string {
	var b builder
	b.line("**Task**: Advanced AI Camera & Perspective Transformation.")
	b.line("**Objective**: Re-render the provided image from a completely new, precisely defined camera viewpoint. You must perform a full 3D scene reconstruction to generate a photorealistic result with accurate perspective, lighting, and depth of field.")
	b.blank()
	b.line("**Input Image**: The user has provided an image to be transformed.")
	b.blank()
	b.line("**Camera & Viewpoint Instructions**:")
	b.blank()
	b.linef("1. **Primary Angle**: The camera is positioned for a '%s' view.", p.AnglePreset)
	b.linef("2. **360° Orbit Rotation**: The camera is rotated horizontally around the subject by %d° from the front. (0° is front, 90° is right, -90° is left, 180° is rear).", p.Orbit)
	b.linef("3. **Elevation**: The camera's vertical height is at %d%%. (0%% is ground level, 50%% is eye-level, 100%% is directly above).", p.Elevation)
	b.linef("4. **Tilt (Pitch)**: The camera is tilted by %d°. (-90° is looking straight down, 0° is level, 90° is looking straight up).", p.Tilt)
	b.line("5. **Lens Simulation**:")
	b.linef("   - **Focal Length**: Simulate a %dmm lens. This will affect field of view and background compression.", p.FocalLength)
	b.linef("   - **Depth of Field**: Apply a depth of field effect with an intensity of %d%%. The main subject should be in sharp focus, with the background and foreground progressively blurred according to the lens simulation.", p.DOFIntensity)
	b.line("6. **Corrections**:")
	if p.PerspectiveCorrection {
		b.line("   - **Perspective Correction**: Apply automatic perspective correction to ensure vertical lines are straight and avoid distortion.")
	} else {
		b.line("   - **Perspective Correction**: Natural lens distortion is acceptable.")
	}
	if p.LightingLock {
		b.line("   - **Lighting**: Preserve the original lighting direction and quality. Shadows and highlights should be recalculated for the new perspective but originate from the same light source.")
	} else {
		b.line("   - **Lighting**: Generate new, natural lighting that best fits the new camera angle.")
	}
	if strings.TrimSpace(p.Prompt) != "" {
		b.blank()
		b.linef(`**User's Creative Direction**: In addition to the technical settings, apply this creative style: "%s"`, p.Prompt)
	}
	b.blank()
	b.line("**AI Execution Pipeline**:")
	b.line("1. **Scene Deconstruction**: Analyze the original image to create an implicit 3D model of the scene, understanding object placement, scale, and textures.")
	b.line("2. **Virtual Camera Placement**: Position the new virtual camera according to all the specified rotation, elevation, tilt, and lens parameters.")
	b.line("3. **Scene Re-rendering**: Render the scene from this new viewpoint. Intelligently generate and inpaint any occluded or previously non-existent details that would be visible from the new angle.")
	b.line("4. **Physics Recalculation**: Based on the new view, accurately recalculate all shadows, highlights, and reflections. Apply the specified depth of field effect.")
	b.line("5. **Final Polish**: Ensure the final output is a single, cohesive, high-resolution image, free of artifacts, maintaining the style and identity of the original subject.")
	b.blank()
	b.line("**Output Requirement**: A single, final, re-rendered image. Do not output any text, borders, or explanations.")
	return b.String()
}

// Relight はライティング変更の指示文を組み立てます。
func Relight(p RelightParams) string {
	var b builder
	b.line("**Task**: Professional AI Virtual Lighting Studio.")
	b.line("**Objective**: Re-light the provided image with a new, physically accurate light source, simulating realistic shadows and reflections.")
	b.blank()
	b.line("**Input Image**: The user has provided an image to be re-lit.")
	b.blank()
	b.line("**Lighting Setup**:")
	b.linef("- **Light Type**: %s. This defines the quality of the light (e.g., a 'Softbox' creates diffuse light, a 'Spotlight' creates a hard, focused beam).", p.LightType)
	b.linef("- **Light Direction**: The primary light should come from the **%s**.", p.LightDirection)
	b.linef("- **Light Intensity**: The strength of the light should be at %d%%.", p.Intensity)
	b.linef("- **Light Color Temperature**: The color of the light should be approximately %dK (lower is warmer/orange, higher is cooler/blue).", p.ColorTemperature)
	b.blank()
	b.line("**AI Instructions**:")
	b.line("1. **Scene Analysis**: Analyze the input image to understand its 3D geometry, subject, and surface materials.")
	b.line("2. **Isolate Subject**: If there is a clear subject, isolate it from the background to apply the new lighting accurately.")
	b.line("3. **Remove Old Lighting**: Neutralize the existing lighting and shadows in the original image.")
	b.line("4. **Apply New Light Source**: Introduce a new virtual light source according to the specified 'Lighting Setup'. The new light must wrap realistically around the subjects and environment.")
	b.line("5. **Simulate Shadows & Reflections**: This is critical. Cast physically correct, soft or hard shadows based on the new light source. Generate accurate specular highlights and reflections on surfaces like eyes, metal, or water.")
	b.line("6. **Recompose Scene**: Blend the re-lit subject and background back into a single, cohesive, and photorealistic image.")
	b.blank()
	b.line("**Output Requirement**: A single, final, re-rendered image. Do not output any text, borders, or explanations.")
	return b.String()
}
