package prompt

import (
	"fmt"
	"strings"
)

// band はスライダー値に対する判定とその時の文言の組です。
// phrase に %d が含まれる場合は値で置き換えます。
type band struct {
	match  func(v int) bool
	phrase string
}

// bandTable は上から順に評価し、最初に一致した文言を採用します。
type bandTable []band

func (t bandTable) phrase(v int) string {
	for _, b := range t {
		if !b.match(v) {
			continue
		}
		if strings.Contains(b.phrase, "%d") {
			return fmt.Sprintf(b.phrase, v)
		}
		return b.phrase
	}
	return ""
}

func below(n int) func(int) bool   { return func(v int) bool { return v < n } }
func above(n int) func(int) bool   { return func(v int) bool { return v > n } }
func equalTo(n int) func(int) bool { return func(v int) bool { return v == n } }
func always(int) bool              { return true }

var shadowSoftnessBands = bandTable{
	{match: below(30), phrase: "with sharp, defined edges (hard lighting)."},
	{match: above(70), phrase: "with very diffuse, soft edges (soft lighting)."},
	{match: always, phrase: "with a balanced mix of hard and soft edges."},
}

var harmonizationBands = bandTable{
	{match: equalTo(0), phrase: "Preserve the subject's original lighting and color grading completely."},
	{match: equalTo(100), phrase: "Fully relight the subject and harmonize its colors to perfectly match the background scene."},
	{match: always, phrase: "Apply color and lighting harmonization at %d%% strength. Blend the subject's original look with the background's environment, with the final result being closer to the background's characteristics."},
}

var realismBands = bandTable{
	{match: above(95), phrase: "The final image must be indistinguishable from a real photograph (absolute photorealism)."},
	{match: above(75), phrase: "Aim for a high degree of photorealism, with subtle artistic touches."},
	{match: below(40), phrase: "Produce a more stylized, artistic render rather than a purely photorealistic one. Emphasize mood over accuracy."},
	{match: always, phrase: "Create a balanced, realistic image with a clean, commercial look."},
}

// ShadowSoftnessPhrase は影の柔らかさ (0-100) に対応する文言を返します。
func ShadowSoftnessPhrase(softness int) string { return shadowSoftnessBands.phrase(softness) }

// HarmonizationPhrase は色調和の強さ (0-100) に対応する文言を返します。
func HarmonizationPhrase(strength int) string { return harmonizationBands.phrase(strength) }

// RealismPhrase はリアリズム (0-100) に対応する文言を返します。
func RealismPhrase(realism int) string { return realismBands.phrase(realism) }

// builder は指示文を1行ずつ組み立てます。
type builder struct {
	sb strings.Builder
}

func (b *builder) line(s string) {
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *builder) linef(format string, args ...any) {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
}

func (b *builder) blank() { b.sb.WriteByte('\n') }

func (b *builder) String() string { return strings.TrimSpace(b.sb.String()) }
