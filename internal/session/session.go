// Package session exposes the signed-in identity and the device's current
// address. Authentication and geocoding happen elsewhere; these adapters only
// report their results.
package session

import (
	"strings"
	"sync"

	"tailorcart/internal/domain"
)

type Provider interface {
	Current() (domain.Identity, bool)
}

// AddressSupplier reports the resolved address, if any, and whether a lookup is running.
type AddressSupplier interface {
	CurrentAddress() *string
	Loading() bool
}

// Static is a Provider for a fixed identity.
type Static struct {
	identity domain.Identity
}

func NewStatic(userID, name string) *Static {
	return &Static{identity: domain.Identity{UserID: strings.TrimSpace(userID), Name: strings.TrimSpace(name)}}
}

func (s *Static) Current() (domain.Identity, bool) {
	if s.identity.UserID == "" {
		return domain.Identity{}, false
	}
	return s.identity, true
}

// Address is an AddressSupplier updated by whatever resolves the location.
type Address struct {
	mu      sync.RWMutex
	address *string
	loading bool
}

// NewAddress seeds the supplier; an empty value means unresolved.
func NewAddress(initial string) *Address {
	a := &Address{}
	if v := strings.TrimSpace(initial); v != "" {
		a.address = &v
	}
	return a
}

func (a *Address) CurrentAddress() *string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.address == nil {
		return nil
	}
	v := *a.address
	return &v
}

func (a *Address) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// BeginLookup marks a lookup in flight.
func (a *Address) BeginLookup() {
	a.mu.Lock()
	a.loading = true
	a.mu.Unlock()
}

// Resolve stores the lookup result and clears the loading flag.
func (a *Address) Resolve(address string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if v := strings.TrimSpace(address); v != "" {
		a.address = &v
		return
	}
	a.address = nil
}
