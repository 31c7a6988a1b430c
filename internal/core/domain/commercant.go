package domain

// Commercant is a merchant client whose cash is collected into one or more
// accounts.
type Commercant struct {
	ID            string `json:"id" bson:"_id,omitempty"`
	FullName      string `json:"full_name" bson:"full_name"`
	ShopName      string `json:"shop_name,omitempty" bson:"shop_name,omitempty"`
	Phone         string `json:"phone" bson:"phone"`
	Territory     string `json:"territory" bson:"territory"`
	UserID        string `json:"user_id,omitempty" bson:"user_id,omitempty"`
	InstitutionID string `json:"institution_id,omitempty" bson:"institution_id,omitempty"`
}

// Account holds a commerçant's savings. AccountNumber is the unique, stable
// identifier; CurrentBalance is the store-reported figure, which the
// aggregator reconciles against the recomputed ledger sum rather than
// trusting blindly.
type Account struct {
	AccountNumber     string  `json:"account_number" bson:"account_number"`
	OwnerCommercantID string  `json:"owner_commercant_id" bson:"owner_commercant_id"`
	CurrentBalance    float64 `json:"current_balance" bson:"current_balance"`
}
