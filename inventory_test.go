package finlit

import (
	"slices"
	"testing"
)

func TestBalancesApply(t *testing.T) {
	b := NewBalances()
	b.Apply(Transaction{
		Date: day("2024-01-01"),
		Postings: []Posting{
			{Account: "Assets:Cash", Units: USD(100)},
			{Account: "Liabilities:Card", Units: USD(-50)},
			{Account: "Expenses:Food", Units: USD(-50)},
		},
	}, DefaultAccountTypes(), nil)

	testCases := []struct {
		name string
		inv  *Inventory
		want float64
	}{
		{"assets", b.Assets, 100},
		{"liabilities", b.Liabilities, -50},
		{"balance", b.Balance, 50},
	}
	for _, tc := range testCases {
		if got := tc.inv.Units("USD"); !got.Equal(dec(tc.want)) {
			t.Errorf("%s.Units(USD) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestBalancesFilter(t *testing.T) {
	b := NewBalances()
	tx := Transaction{Postings: []Posting{
		{Account: "Assets:Inversiones:Broker", Units: A(2, "VOO")},
		{Account: "Assets:Bank", Units: USD(-800)},
	}}
	b.Apply(tx, DefaultAccountTypes(), PrefixFilter("Assets:Inversiones"))
	if got := b.Assets.Commodities(); !slices.Equal(got, []string{"VOO"}) {
		t.Errorf("Commodities() = %v, want [VOO]", got)
	}
}

func TestInventoryKeepsZeroedCommodities(t *testing.T) {
	inv := NewInventory()
	inv.Add(Posting{Account: "Assets:Cash", Units: ARS(1000)})
	inv.Add(Posting{Account: "Assets:Cash", Units: ARS(-1000)})
	if got := inv.Commodities(); !slices.Equal(got, []string{"ARS"}) {
		t.Errorf("Commodities() = %v, want [ARS]", got)
	}
	if got := inv.Units("ARS"); !got.IsZero() {
		t.Errorf("Units(ARS) = %v, want 0", got)
	}
}

func TestInventoryMarketValue(t *testing.T) {
	cost := USD(400)
	inv := NewInventory()
	inv.Add(Posting{Account: "Assets:Broker", Units: A(2, "VOO"), Cost: &cost})
	inv.Add(Posting{Account: "Assets:Broker", Units: A(10, "XYZ"), Cost: &cost})
	inv.Add(Posting{Account: "Assets:Cash", Units: ARS(500)})

	pm := priceMapOf(Price{Date: day("2024-01-01"), Currency: "VOO", Rate: USD(450)})
	got := inv.MarketValue(pm, day("2024-01-02"))

	// VOO at market, XYZ at book cost since it has no price.
	if want := dec(2*450 + 10*400); !got["USD"].Equal(want) {
		t.Errorf("MarketValue()[USD] = %v, want %v", got["USD"], want)
	}
	if !got["ARS"].Equal(dec(500)) {
		t.Errorf("MarketValue()[ARS] = %v, want 500", got["ARS"])
	}
	if _, ok := got["VOO"]; ok {
		t.Errorf("MarketValue() must not keep units held at cost")
	}
}
