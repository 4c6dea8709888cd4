package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func img(name string) ContentPart {
	return ImagePart([]byte(name), "image/png")
}

func TestNewOperationRequest_Layout(t *testing.T) {
	t.Run("merge は object, background, 指示文の順に並ぶ", func(t *testing.T) {
		// マップの反復順に依存しないことを確認するため複数回組み立てる
		for i := 0; i < 20; i++ {
			req, err := NewOperationRequest(OpMerge, map[ImageRole]ContentPart{
				RoleBackground: img("bg"),
				RoleObject:     img("obj"),
			}, "merge them")
			require.NoError(t, err)
			require.Len(t, req.Parts, 3)
			assert.Equal(t, "obj", string(req.Parts[0].Data))
			assert.Equal(t, "bg", string(req.Parts[1].Data))
			assert.Equal(t, "merge them", req.Parts[2].Text)
			assert.Equal(t, OutputImage, req.Output)
		}
	})

	t.Run("compose は存在するレイヤーだけを固定順で並べる", func(t *testing.T) {
		req, err := NewOperationRequest(OpCompose, map[ImageRole]ContentPart{
			RolePalette:    img("pal"),
			RoleForeground: img("fg"),
			RoleBackground: img("bg"),
		}, "compose")
		require.NoError(t, err)

		var got []string
		for _, p := range req.Parts[:3] {
			got = append(got, string(p.Data))
		}
		assert.Equal(t, []string{"bg", "fg", "pal"}, got)
		assert.False(t, req.Parts[3].IsImage())
		assert.Equal(t, 3, req.ImageCount())
	})

	t.Run("generate は指示文のみ", func(t *testing.T) {
		req, err := NewOperationRequest(OpGenerate, nil, "a red cube")
		require.NoError(t, err)
		assert.Equal(t, []ContentPart{TextPart("a red cube")}, req.Parts)
	})

	t.Run("suggestions はテキスト出力", func(t *testing.T) {
		req, err := NewOperationRequest(OpSuggestions, nil, "ideas")
		require.NoError(t, err)
		assert.Equal(t, OutputText, req.Output)
	})
}

func TestNewOperationRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		op     OperationKind
		images map[ImageRole]ContentPart
		text   string
	}{
		{"未知の操作", OperationKind("paint"), nil, "x"},
		{"空の指示文", OpEdit, map[ImageRole]ContentPart{RoleSubject: img("a")}, "  "},
		{"レイアウト外のロール", OpEdit, map[ImageRole]ContentPart{RoleBackground: img("a")}, "x"},
		{"MIME なしの画像", OpEdit, map[ImageRole]ContentPart{RoleSubject: {Kind: PartImage, Data: []byte("a")}}, "x"},
		{"テキストを画像ロールに指定", OpEdit, map[ImageRole]ContentPart{RoleSubject: TextPart("a")}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOperationRequest(tt.op, tt.images, tt.text)
			var invalid *InvalidRequestError
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func TestOutputFor(t *testing.T) {
	textOps := []OperationKind{OpBuildPrompt, OpSuggestions, OpAnalyze, OpFeedback}
	for _, op := range textOps {
		out, ok := OutputFor(op)
		assert.True(t, ok)
		assert.Equal(t, OutputText, out, op)
	}

	imageOps := []OperationKind{OpGenerate, OpEdit, OpUpscale, OpCompose, OpMerge, OpReconstruct, OpMockup, OpPerspective, OpRelight}
	for _, op := range imageOps {
		out, ok := OutputFor(op)
		assert.True(t, ok)
		assert.Equal(t, OutputImage, out, op)
	}

	_, ok := OutputFor("unknown")
	assert.False(t, ok)
}

func TestLayout_ReturnsCopy(t *testing.T) {
	l := Layout(OpMerge)
	l[0] = RolePalette
	assert.Equal(t, []ImageRole{RoleObject, RoleBackground}, Layout(OpMerge))
}
