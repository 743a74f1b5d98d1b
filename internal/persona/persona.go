// Package persona synthesizes the prospect identity presented to the model.
// Resolution is a pure function of the caller-supplied settings: the same
// settings always produce the same persona, which keeps prompt builds
// reproducible across stateless calls.
package persona

// Gender is the prospect's gender attribute.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MaritalStatus is the prospect's marital status attribute.
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
)

// Settings are the categorical inputs a caller picks for a training session.
// Age is expected to be within 18-70 and the enums within their declared
// domains; callers validate before invoking.
type Settings struct {
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	MaritalStatus MaritalStatus `json:"maritalStatus"`
	DisplayName   string        `json:"displayName,omitempty"` // overrides the name table when set
}

// Persona is the synthesized identity. Pure value — derived fresh on every
// call, never stored by the engine.
type Persona struct {
	Name                string
	Age                 int
	GenderLabel         string
	MaritalLabel        string
	Background          string
	InvestmentNarrative string
}

var genderLabels = map[Gender]string{
	GenderMale:   "男性",
	GenderFemale: "女性",
}

var maritalLabels = map[MaritalStatus]string{
	MaritalSingle:   "独身",
	MaritalMarried:  "既婚",
	MaritalDivorced: "離婚",
}

// defaultNames maps gender × marital status to the prospect's name.
var defaultNames = map[Gender]map[MaritalStatus]string{
	GenderMale: {
		MaritalSingle:   "田中 健太",
		MaritalMarried:  "山田 太郎",
		MaritalDivorced: "佐藤 誠",
	},
	GenderFemale: {
		MaritalSingle:   "鈴木 美咲",
		MaritalMarried:  "山田 愛",
		MaritalDivorced: "高橋 優子",
	},
}

type narrative struct {
	Background string
	Investment string
}

type narrativeKey struct {
	Marital MaritalStatus
	Senior  bool // age at or above the threshold for this marital status
}

// ageThresholds splits each marital status into a junior and a senior
// narrative. Divorced prospects get the same narrative at any age.
var ageThresholds = map[MaritalStatus]int{
	MaritalSingle:  35,
	MaritalMarried: 40,
}

// narratives is the marital × age-threshold decision table. Every prospect is
// financially literate; what varies is how that literacy was acquired.
var narratives = map[narrativeKey]narrative{
	{MaritalSingle, false}: {
		Background: "IT企業勤務、つみたてNISA・iDeCoを満額運用中",
		Investment: "投資信託（オルカン・S&P500）で資産運用、年利5%想定",
	},
	{MaritalSingle, true}: {
		Background: "金融機関勤務経験あり、株式・債券ポートフォリオを運用",
		Investment: "個別株・ETFで運用、複利効果を重視",
	},
	{MaritalMarried, false}: {
		Background: "共働き世帯、夫婦でつみたてNISA・iDeCo活用",
		Investment: "教育資金は投資信託で準備中、保険は最小限に",
	},
	{MaritalMarried, true}: {
		Background: "世帯年収1000万超、資産運用に積極的",
		Investment: "インデックス投資中心、保険より投資を優先",
	},
	{MaritalDivorced, false}: {
		Background: "独立系FP資格保有、シンプルな家計管理を実践",
		Investment: "低コストインデックス投信で老後資金を準備",
	},
	{MaritalDivorced, true}: {
		Background: "独立系FP資格保有、シンプルな家計管理を実践",
		Investment: "低コストインデックス投信で老後資金を準備",
	},
}

// Resolve maps settings to a persona. Deterministic and total over the
// declared settings domain.
func Resolve(s Settings) Persona {
	name := s.DisplayName
	if name == "" {
		name = defaultNames[s.Gender][s.MaritalStatus]
	}

	n := narratives[narrativeKey{
		Marital: s.MaritalStatus,
		Senior:  s.Age >= ageThresholds[s.MaritalStatus],
	}]

	return Persona{
		Name:                name,
		Age:                 s.Age,
		GenderLabel:         genderLabels[s.Gender],
		MaritalLabel:        maritalLabels[s.MaritalStatus],
		Background:          n.Background,
		InvestmentNarrative: n.Investment,
	}
}

// Salesman returns the canonical seller-side identity used by the dual-agent
// simulator.
func Salesman() Persona {
	return Persona{Name: "AI営業マン"}
}
