package model

// AccountBalance is a per-currency balance snapshot.
type AccountBalance struct {
	Total  Money
	Locked Money
	Free   Money
}

// Account is a read model of a trading account. The risk engine only
// branches on the type discriminant and reads free balances; balance
// computation itself is an external concern.
type Account struct {
	ID           AccountID
	Venue        Venue
	Type         AccountType
	BaseCurrency Currency // empty for multi-currency accounts
	Balances     map[Currency]AccountBalance
}

// IsMargin reports whether this is a margin account. Margin risk is
// controlled elsewhere, so the cash risk checks skip these accounts.
func (a *Account) IsMargin() bool { return a.Type == AccountTypeMargin }

// BalanceFree returns the free balance in the given currency, or nil
// when the account holds none.
func (a *Account) BalanceFree(currency Currency) *Money {
	balance, ok := a.Balances[currency]
	if !ok {
		return nil
	}
	free := balance.Free
	return &free
}
