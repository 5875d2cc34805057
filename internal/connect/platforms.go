package connect

// Category groups platforms by the kind of account they hold.
type Category string

const (
	CategoryCrypto Category = "crypto"
	CategoryBank   Category = "bank"
	CategoryBroker Category = "broker"
)

// Platform is an external account-holding service a user can link.
type Platform struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Platforms is the catalog of linkable platforms.
var Platforms = []Platform{
	{ID: "metamask", Name: "MetaMask", Category: CategoryCrypto},
	{ID: "coinbase", Name: "Coinbase", Category: CategoryCrypto},
	{ID: "binance", Name: "Binance", Category: CategoryCrypto},
	{ID: "phantom", Name: "Phantom", Category: CategoryCrypto},
	{ID: "ledger", Name: "Ledger", Category: CategoryCrypto},
	{ID: "trustwallet", Name: "Trust Wallet", Category: CategoryCrypto},
	{ID: "chase", Name: "Chase", Category: CategoryBank},
	{ID: "bofa", Name: "Bank of America", Category: CategoryBank},
	{ID: "wells", Name: "Wells Fargo", Category: CategoryBank},
	{ID: "citi", Name: "Citibank", Category: CategoryBank},
	{ID: "robinhood", Name: "Robinhood", Category: CategoryBroker},
	{ID: "schwab", Name: "Charles Schwab", Category: CategoryBroker},
	{ID: "fidelity", Name: "Fidelity", Category: CategoryBroker},
	{ID: "etrade", Name: "E*TRADE", Category: CategoryBroker},
}

// LookupPlatform finds a platform by id.
func LookupPlatform(id string) (Platform, bool) {
	for _, p := range Platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}
