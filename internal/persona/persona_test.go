package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDeterministic(t *testing.T) {
	for _, gender := range []Gender{GenderMale, GenderFemale} {
		for _, marital := range []MaritalStatus{MaritalSingle, MaritalMarried, MaritalDivorced} {
			for _, age := range []int{18, 34, 35, 39, 40, 70} {
				s := Settings{Age: age, Gender: gender, MaritalStatus: marital}
				require.Equal(t, Resolve(s), Resolve(s), "settings %+v", s)
			}
		}
	}
}

func TestResolveNameTable(t *testing.T) {
	tests := []struct {
		gender  Gender
		marital MaritalStatus
		name    string
	}{
		{GenderMale, MaritalSingle, "田中 健太"},
		{GenderMale, MaritalMarried, "山田 太郎"},
		{GenderMale, MaritalDivorced, "佐藤 誠"},
		{GenderFemale, MaritalSingle, "鈴木 美咲"},
		{GenderFemale, MaritalMarried, "山田 愛"},
		{GenderFemale, MaritalDivorced, "高橋 優子"},
	}
	for _, tt := range tests {
		p := Resolve(Settings{Age: 40, Gender: tt.gender, MaritalStatus: tt.marital})
		assert.Equal(t, tt.name, p.Name, "%s/%s", tt.gender, tt.marital)
	}
}

func TestResolveMarriedWomanScenario(t *testing.T) {
	p := Resolve(Settings{Age: 38, Gender: GenderFemale, MaritalStatus: MaritalMarried})

	assert.Equal(t, "山田 愛", p.Name)
	assert.Equal(t, 38, p.Age)
	assert.Equal(t, "女性", p.GenderLabel)
	assert.Equal(t, "既婚", p.MaritalLabel)
	assert.Contains(t, p.Background, "共働き")
}

func TestResolveNarrativeTable(t *testing.T) {
	tests := []struct {
		name       string
		age        int
		marital    MaritalStatus
		background string
	}{
		{"single under threshold", 34, MaritalSingle, "IT企業勤務"},
		{"single at threshold", 35, MaritalSingle, "金融機関勤務経験"},
		{"married under threshold", 39, MaritalMarried, "共働き世帯"},
		{"married at threshold", 40, MaritalMarried, "世帯年収1000万超"},
		{"divorced young", 25, MaritalDivorced, "独立系FP資格保有"},
		{"divorced old", 65, MaritalDivorced, "独立系FP資格保有"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(Settings{Age: tt.age, Gender: GenderMale, MaritalStatus: tt.marital})
			assert.Contains(t, p.Background, tt.background)
			assert.NotEmpty(t, p.InvestmentNarrative)
		})
	}
}

func TestResolveDivorcedAgeIndependent(t *testing.T) {
	young := Resolve(Settings{Age: 20, Gender: GenderFemale, MaritalStatus: MaritalDivorced})
	old := Resolve(Settings{Age: 70, Gender: GenderFemale, MaritalStatus: MaritalDivorced})

	assert.Equal(t, young.Background, old.Background)
	assert.Equal(t, young.InvestmentNarrative, old.InvestmentNarrative)
}

func TestResolveDisplayNameOverride(t *testing.T) {
	p := Resolve(Settings{Age: 30, Gender: GenderMale, MaritalStatus: MaritalSingle, DisplayName: "鈴木 一郎"})
	assert.Equal(t, "鈴木 一郎", p.Name)
}
