package blingslang

import "fmt"

// Account is a named quantity tracked over time. Its Value field holds the
// initial snapshot; simulated values live in the trajectory table, so the same
// Account can seed several trajectories.
//
// An account either evolves on its own (growth rate and scheduled updates) or
// derives its value from another account: a share-price account recomputes
// (source − strike price) × shares every day and never carries growth or
// updates of its own.
type Account struct {
	Name   string
	Value  float64 // initial value
	Growth float64 // annual growth rate, 0 if none

	// Updates are the scheduled value changes owned by this account.
	Updates []*AccountUpdate

	// Source, when set, makes this a share-price account derived from
	// another account's same-day value.
	Source      *Account
	NumShares   float64
	StrikePrice float64
}

// Derived reports whether the account derives its value from another account.
func (a *Account) Derived() bool { return a.Source != nil }

// AccountGroup is a named, ordered collection of accounts. The accounts are
// shared, not owned: the same account may belong to several groups.
type AccountGroup struct {
	Name     string
	Accounts []*Account
}

// Value returns the sum of the member accounts' current (initial) values.
func (g *AccountGroup) Value() float64 {
	var total float64
	for _, a := range g.Accounts {
		total += a.Value
	}
	return total
}

// Account returns the member with the given name, or nil.
func (g *AccountGroup) Account(name string) *Account {
	for _, a := range g.Accounts {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// dependencyOrder returns the group's accounts in valuation order:
// independent accounts first, then share-price accounts, each bucket in
// declared order. Derived accounts therefore always see their source's
// same-day value. Dependency chains are exactly one level deep; anything
// deeper (or a source or transfer target outside the group) is rejected.
func (g *AccountGroup) dependencyOrder() ([]*Account, error) {
	members := make(map[string]bool, len(g.Accounts))
	for _, a := range g.Accounts {
		members[a.Name] = true
	}

	var independent, dependent []*Account
	for _, a := range g.Accounts {
		for _, u := range a.Updates {
			if u.Target == nil {
				continue
			}
			if !members[u.Target.Name] {
				return nil, fmt.Errorf("account %q: transfer target %q is not a member of group %q", a.Name, u.Target.Name, g.Name)
			}
			// A share-price account recomputes from its source every day, so
			// a credit landing on it would desynchronize it for one day and
			// vanish the next.
			if u.Target.Derived() {
				return nil, fmt.Errorf("account %q: transfer target %q is a share-price account", a.Name, u.Target.Name)
			}
		}
		if a.Source == nil {
			independent = append(independent, a)
			continue
		}
		if a.Source == a {
			return nil, fmt.Errorf("account %q: share-price source refers to itself", a.Name)
		}
		if a.Source.Derived() {
			return nil, fmt.Errorf("account %q: share-price source %q is itself derived", a.Name, a.Source.Name)
		}
		if !members[a.Source.Name] {
			return nil, fmt.Errorf("account %q: share-price source %q is not a member of group %q", a.Name, a.Source.Name, g.Name)
		}
		dependent = append(dependent, a)
	}
	return append(independent, dependent...), nil
}

// clone returns a deep copy of the group: fresh accounts and updates with
// source and transfer references remapped onto the copies. Each trajectory
// simulates a clone so the mutable update schedules are never shared between
// runs.
func (g *AccountGroup) clone() *AccountGroup {
	copies := make(map[*Account]*Account, len(g.Accounts))
	ng := &AccountGroup{Name: g.Name, Accounts: make([]*Account, 0, len(g.Accounts))}
	for _, a := range g.Accounts {
		na := &Account{
			Name:        a.Name,
			Value:       a.Value,
			Growth:      a.Growth,
			NumShares:   a.NumShares,
			StrikePrice: a.StrikePrice,
		}
		copies[a] = na
		ng.Accounts = append(ng.Accounts, na)
	}
	for _, a := range g.Accounts {
		na := copies[a]
		if a.Source != nil {
			// Sources outside the group are left as shared references;
			// dependencyOrder rejects them before simulation anyway.
			if s, ok := copies[a.Source]; ok {
				na.Source = s
			} else {
				na.Source = a.Source
			}
		}
		for _, u := range a.Updates {
			nu := &AccountUpdate{
				Amount:     u.Amount,
				Recurrence: u.Recurrence,
				Day:        u.Day,
				On:         u.On,
			}
			if u.Target != nil {
				if t, ok := copies[u.Target]; ok {
					nu.Target = t
				} else {
					nu.Target = u.Target
				}
			}
			na.Updates = append(na.Updates, nu)
		}
	}
	return ng
}
