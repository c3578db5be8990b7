package domain

import "time"

// Identity is the signed-in user as reported by the session provider.
type Identity struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// Profile is the persisted root document for one user.
type Profile struct {
	Identity     Identity      `json:"identity"`
	Address      *string       `json:"address,omitempty"`
	Cart         []VendorCart  `json:"cart"`
	Transactions []Transaction `json:"transactions"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	out := p
	if p.Address != nil {
		a := *p.Address
		out.Address = &a
	}
	out.Cart = make([]VendorCart, len(p.Cart))
	for i, vc := range p.Cart {
		out.Cart[i] = vc.Clone()
	}
	out.Transactions = make([]Transaction, len(p.Transactions))
	for i, t := range p.Transactions {
		out.Transactions[i] = t.Clone()
	}
	return out
}
