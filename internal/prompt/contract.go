// Package prompt composes the system instructions for each role. One composer
// serves both role contracts, parameterized by Contract — the skeptical buyer
// and the professional seller are data, not separate code paths.
package prompt

import "github.com/kandasoft/salesdojo/internal/persona"

// Role selects which behavioral contract the instructions encode.
type Role string

const (
	// RoleBuyer is the skeptical prospect: never accepts, challenges cost
	// and ROI, asks at most two pointed questions per turn.
	RoleBuyer Role = "buyer"
	// RoleSeller is the professional salesman: empathize, ask 1-2 questions,
	// seek a small agreement, compliance language required.
	RoleSeller Role = "seller"
)

// Intensity dials the phrasing strength of the stance sections.
type Intensity string

const (
	IntensitySubdued Intensity = "subdued"
	IntensityNeutral Intensity = "neutral"
	IntensityFirm    Intensity = "firm"
)

// Product is the insurance product the seller is pitching.
type Product string

const (
	ProductCancer    Product = "cancer"
	ProductMedical   Product = "medical"
	ProductLife      Product = "life"
	ProductNursing   Product = "nursing"
	ProductEducation Product = "education"
	ProductPension   Product = "pension"
)

var productLabels = map[Product]string{
	ProductCancer:    "がん保険",
	ProductMedical:   "医療保険",
	ProductLife:      "生命保険（死亡保障）",
	ProductNursing:   "介護保険",
	ProductEducation: "学資保険",
	ProductPension:   "個人年金保険",
}

// ProductNames returns all valid product values.
func ProductNames() []string {
	return []string{
		string(ProductCancer),
		string(ProductMedical),
		string(ProductLife),
		string(ProductNursing),
		string(ProductEducation),
		string(ProductPension),
	}
}

// ProductLabel returns the Japanese display name for a product. Unknown
// products fall back to the cancer product, the original training default.
func ProductLabel(p Product) string {
	if l, ok := productLabels[p]; ok {
		return l
	}
	return productLabels[ProductCancer]
}

// IsValidProduct reports whether name is a recognized product value.
func IsValidProduct(name string) bool {
	_, ok := productLabels[Product(name)]
	return ok
}

// IsValidIntensity reports whether name is a recognized intensity value.
func IsValidIntensity(name string) bool {
	switch Intensity(name) {
	case IntensitySubdued, IntensityNeutral, IntensityFirm:
		return true
	}
	return false
}

// Contract is the behavioral ruleset a prompt build encodes.
type Contract struct {
	Role      Role
	Intensity Intensity
	// Product and Prospect apply to the seller role only: what is being
	// pitched, and to whom.
	Product  Product
	Prospect persona.Persona
}

// Build renders the full system instructions for a persona under a contract.
// Pure string construction, no error conditions.
func Build(p persona.Persona, c Contract) string {
	if c.Role == RoleSeller {
		return buildSeller(p, c)
	}
	return buildBuyer(p, c)
}

// BuildRetry renders the stricter variant used after a contract violation.
// The base prompt is always a prefix of the retry prompt: the corrective
// block only ever adds text.
func BuildRetry(p persona.Persona, c Contract) string {
	if c.Role == RoleSeller {
		return buildSeller(p, c) + sellerRetryBlock
	}
	return buildBuyer(p, c) + buyerRetryBlock()
}
