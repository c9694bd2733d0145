package pricing

// Price describes one purchasable product variant. Amounts are in minor
// currency units (USD cents).
type Price struct {
	AmountCents int64
	Name        string
	Description string
	Recurring   bool // billed monthly when true
}

var prices = map[string]Price{
	"single": {
		AmountCents: 2000,
		Name:        "Single Model Verification",
		Description: "Official verification for 1 model",
	},
	"pack": {
		AmountCents: 7900,
		Name:        "Verification Pack (5 Models)",
		Description: "Verify up to 5 models and save 21%",
	},
	"enterprise": {
		AmountCents: 49900,
		Name:        "Enterprise Evaluation Service",
		Description: "Unlimited verifications + API access",
		Recurring:   true,
	},
}

// Resolve looks up the price for a product variant. The table is the
// authoritative check for variant validity.
func Resolve(productType string) (Price, bool) {
	p, ok := prices[productType]
	return p, ok
}
