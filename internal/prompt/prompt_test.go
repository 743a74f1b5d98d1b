package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandasoft/salesdojo/internal/guard"
	"github.com/kandasoft/salesdojo/internal/persona"
)

func marriedWoman() persona.Persona {
	return persona.Resolve(persona.Settings{
		Age:           38,
		Gender:        persona.GenderFemale,
		MaritalStatus: persona.MaritalMarried,
	})
}

func TestBuildBuyerContainsPersona(t *testing.T) {
	p := marriedWoman()
	out := Build(p, Contract{Role: RoleBuyer, Intensity: IntensityNeutral})

	assert.Contains(t, out, "山田 愛")
	assert.Contains(t, out, "38歳")
	assert.Contains(t, out, "女性")
	assert.Contains(t, out, "既婚")
	assert.Contains(t, out, p.Background)
	assert.Contains(t, out, p.InvestmentNarrative)
	assert.Contains(t, out, "絶対に保険加入を受け入れません")
}

func TestBuildBuyerRestatesGuardLexicon(t *testing.T) {
	out := Build(marriedWoman(), Contract{Role: RoleBuyer, Intensity: IntensityNeutral})
	for _, phrase := range guard.Lexicon {
		assert.Contains(t, out, "「"+phrase+"」", "lexicon phrase %q missing from instructions", phrase)
	}
}

func TestBuildBuyerStyleLimits(t *testing.T) {
	out := Build(marriedWoman(), Contract{Role: RoleBuyer, Intensity: IntensityNeutral})

	assert.Contains(t, out, "3〜6文")
	assert.Contains(t, out, "最大2件")
	assert.Contains(t, out, "メタ発言")
	// Worked examples contrast compliant and non-compliant replies.
	assert.Contains(t, out, "【会話例】")
	assert.Contains(t, out, "悪い例")
}

func TestBuildBuyerIntensity(t *testing.T) {
	p := marriedWoman()

	subdued := Build(p, Contract{Role: RoleBuyer, Intensity: IntensitySubdued})
	assert.Contains(t, subdued, "控えめ")

	firm := Build(p, Contract{Role: RoleBuyer, Intensity: IntensityFirm})
	assert.Contains(t, firm, "強め")
	assert.Contains(t, firm, "断固")

	// Unset intensity falls back to neutral.
	neutral := Build(p, Contract{Role: RoleBuyer, Intensity: IntensityNeutral})
	unset := Build(p, Contract{Role: RoleBuyer})
	assert.Equal(t, neutral, unset)
}

func TestBuildRetrySuperset(t *testing.T) {
	p := marriedWoman()
	contracts := []Contract{
		{Role: RoleBuyer, Intensity: IntensityNeutral},
		{Role: RoleBuyer, Intensity: IntensityFirm},
		{Role: RoleSeller, Intensity: IntensityNeutral, Product: ProductCancer, Prospect: p},
	}

	for _, c := range contracts {
		base := Build(p, c)
		retry := BuildRetry(p, c)

		require.True(t, strings.HasPrefix(retry, base), "retry prompt must extend the base prompt (role %s)", c.Role)
		assert.Greater(t, len(retry), len(base), "retry prompt must add corrective text (role %s)", c.Role)
		assert.Contains(t, retry, "直近の応答は誤り")
		assert.Contains(t, retry, "厳守")
	}
}

func TestBuildRetryBuyerRestatesLexicon(t *testing.T) {
	p := marriedWoman()
	base := Build(p, Contract{Role: RoleBuyer, Intensity: IntensityNeutral})
	retry := BuildRetry(p, Contract{Role: RoleBuyer, Intensity: IntensityNeutral})
	corrective := strings.TrimPrefix(retry, base)

	for _, phrase := range guard.Lexicon {
		assert.Contains(t, corrective, phrase, "corrective block must restate %q", phrase)
	}
}

func TestBuildSeller(t *testing.T) {
	prospect := marriedWoman()
	out := Build(persona.Salesman(), Contract{
		Role:      RoleSeller,
		Intensity: IntensityNeutral,
		Product:   ProductCancer,
		Prospect:  prospect,
	})

	assert.Contains(t, out, "AI営業マン")
	assert.Contains(t, out, "がん保険")
	assert.Contains(t, out, "山田 愛")
	assert.Contains(t, out, "共感→質問")
	assert.Contains(t, out, "【コンプライアンス】")
	assert.Contains(t, out, "支払い保証の表現は禁止")
}

func TestBuildSellerProductTable(t *testing.T) {
	prospect := marriedWoman()
	tests := map[Product]string{
		ProductCancer:    "がん保険",
		ProductMedical:   "医療保険",
		ProductLife:      "生命保険（死亡保障）",
		ProductNursing:   "介護保険",
		ProductEducation: "学資保険",
		ProductPension:   "個人年金保険",
	}
	for product, label := range tests {
		out := Build(persona.Salesman(), Contract{Role: RoleSeller, Product: product, Prospect: prospect})
		assert.Contains(t, out, label)
	}
}

func TestProductValidation(t *testing.T) {
	for _, name := range ProductNames() {
		assert.True(t, IsValidProduct(name))
	}
	assert.False(t, IsValidProduct("crypto"))

	assert.True(t, IsValidIntensity("firm"))
	assert.False(t, IsValidIntensity("aggressive"))
}

func TestBuildDeterministic(t *testing.T) {
	p := marriedWoman()
	c := Contract{Role: RoleBuyer, Intensity: IntensityFirm}
	assert.Equal(t, Build(p, c), Build(p, c))
	assert.Equal(t, BuildRetry(p, c), BuildRetry(p, c))
}
