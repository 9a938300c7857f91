package finlit

import "strings"

// AccountSeparator separates the components of an account name.
const AccountSeparator = ":"

// AccountType is the root category of an account.
type AccountType int

const (
	UnknownAccount AccountType = iota
	AssetAccount
	LiabilityAccount
	EquityAccount
	IncomeAccount
	ExpenseAccount
)

func (t AccountType) String() string {
	switch t {
	case AssetAccount:
		return "assets"
	case LiabilityAccount:
		return "liabilities"
	case EquityAccount:
		return "equity"
	case IncomeAccount:
		return "income"
	case ExpenseAccount:
		return "expenses"
	default:
		return "unknown"
	}
}

// AccountTypes holds the root component naming each account type, so that a
// ledger kept in another language ("Activos", "Pasivos") classifies the same.
type AccountTypes struct {
	Assets      string `yaml:"assets" json:"assets"`
	Liabilities string `yaml:"liabilities" json:"liabilities"`
	Equity      string `yaml:"equity" json:"equity"`
	Income      string `yaml:"income" json:"income"`
	Expenses    string `yaml:"expenses" json:"expenses"`
}

// DefaultAccountTypes returns the conventional English root names.
func DefaultAccountTypes() AccountTypes {
	return AccountTypes{
		Assets:      "Assets",
		Liabilities: "Liabilities",
		Equity:      "Equity",
		Income:      "Income",
		Expenses:    "Expenses",
	}
}

// Classify returns the type of account, based on its root component only.
func (t AccountTypes) Classify(account string) AccountType {
	switch AccountRoot(account, 1) {
	case "":
		return UnknownAccount
	case t.Assets:
		return AssetAccount
	case t.Liabilities:
		return LiabilityAccount
	case t.Equity:
		return EquityAccount
	case t.Income:
		return IncomeAccount
	case t.Expenses:
		return ExpenseAccount
	default:
		return UnknownAccount
	}
}

// IsBalanceSheet reports whether the account is an asset or a liability.
func (t AccountTypes) IsBalanceSheet(account string) bool {
	c := t.Classify(account)
	return c == AssetAccount || c == LiabilityAccount
}

// AccountRoot returns the first n components of an account:
// AccountRoot("Expenses:Food:Groceries", 2) is "Expenses:Food".
func AccountRoot(account string, n int) string {
	parts := strings.Split(account, AccountSeparator)
	if n < len(parts) {
		parts = parts[:n]
	}
	return strings.Join(parts, AccountSeparator)
}

// AccountLeaf returns the last component of an account.
func AccountLeaf(account string) string {
	i := strings.LastIndex(account, AccountSeparator)
	return account[i+1:]
}

// HasAccountPrefix reports whether account is prefix or one of its
// sub-accounts. Matching is done on whole components, so "Assets:Bank" does not
// contain "Assets:Banking".
func HasAccountPrefix(account, prefix string) bool {
	if prefix == "" || account == prefix {
		return true
	}
	return strings.HasPrefix(account, prefix+AccountSeparator)
}
