package models

// Account is the authoritative balance state for one client. Held never goes
// negative; Available may, while a disputed deposit's hold exceeds the
// remaining balance.
type Account struct {
	Client    ClientID
	Available Amount
	Held      Amount
	Locked    bool
}

// NewAccount creates a zeroed, unlocked account for the client.
func NewAccount(client ClientID) *Account {
	return &Account{Client: client}
}

// Total is the sum of available and held funds.
func (a *Account) Total() Amount {
	return a.Available + a.Held
}

// Deposit credits the available balance.
func (a *Account) Deposit(amount Amount) error {
	next, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	a.Available = next
	return nil
}

// Withdraw debits the available balance, requiring full cover.
func (a *Account) Withdraw(amount Amount) error {
	if a.Available < amount {
		return ErrInsufficientFunds
	}
	a.Available -= amount
	return nil
}

// Hold moves amount from available to held for an opened dispute. The
// available balance may legally go negative here.
func (a *Account) Hold(amount Amount) error {
	held, err := a.Held.Add(amount)
	if err != nil {
		return err
	}
	a.Available -= amount
	a.Held = held
	return nil
}

// Release reverses a hold after a dispute is resolved.
func (a *Account) Release(amount Amount) error {
	avail, err := a.Available.Add(amount)
	if err != nil {
		return err
	}
	a.Available = avail
	a.Held -= amount
	return nil
}

// ChargeBack removes the held amount entirely and freezes the account.
func (a *Account) ChargeBack(amount Amount) {
	a.Held -= amount
	a.Locked = true
}
