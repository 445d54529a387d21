package domain

// Wallet is the balance summary of the active role.
type Wallet struct {
	Balance     float64     `json:"balance"     yaml:"balance"`
	TotalWeight float64     `json:"totalWeight" yaml:"total_weight"`
	TotalUnit   string      `json:"totalUnit"   yaml:"total_unit"`
	Bank        BankDetails `json:"bankDetails" yaml:"bank"`
}

// BankDetails is the payout account linked to a wallet.
type BankDetails struct {
	BankName      string `json:"bankName"      yaml:"bank_name"`
	BankCode      string `json:"bankCode"      yaml:"bank_code"`
	AccountName   string `json:"accountName"   yaml:"account_name"`
	AccountNumber string `json:"accountNumber" yaml:"account_number"`
}

// WasteLog holds the weights recorded for one material.
type WasteLog struct {
	Material    string  `json:"material"    yaml:"material"`
	Available   float64 `json:"available"   yaml:"available"`
	Converted   float64 `json:"converted"   yaml:"converted"`
	AgentWeight float64 `json:"agentWeight" yaml:"agent_weight"`
}

// Bank is a payout bank supported by the backend.
type Bank struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Payment describes a funding transaction started with the payment provider.
type Payment struct {
	Reference        string `json:"reference"        yaml:"reference"`
	AuthorizationURL string `json:"authorizationUrl" yaml:"authorization_url"`
	Status           Status `json:"-"                yaml:"status"`
}
