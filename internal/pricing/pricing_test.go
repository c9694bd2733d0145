package pricing

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		productType string
		amountCents int64
		recurring   bool
	}{
		{productType: "single", amountCents: 2000, recurring: false},
		{productType: "pack", amountCents: 7900, recurring: false},
		{productType: "enterprise", amountCents: 49900, recurring: true},
	}

	for _, tt := range tests {
		price, ok := Resolve(tt.productType)
		if !ok {
			t.Fatalf("Resolve(%q) not found", tt.productType)
		}
		if price.AmountCents != tt.amountCents {
			t.Fatalf("Resolve(%q).AmountCents = %d, want %d", tt.productType, price.AmountCents, tt.amountCents)
		}
		if price.Recurring != tt.recurring {
			t.Fatalf("Resolve(%q).Recurring = %v, want %v", tt.productType, price.Recurring, tt.recurring)
		}
		if price.Name == "" || price.Description == "" {
			t.Fatalf("Resolve(%q) has empty display fields", tt.productType)
		}
	}
}

func TestResolveUnknownVariant(t *testing.T) {
	for _, productType := range []string{"", "SINGLE", "premium", "pack5"} {
		if _, ok := Resolve(productType); ok {
			t.Fatalf("expected Resolve(%q) to fail", productType)
		}
	}
}
