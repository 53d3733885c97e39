package entity

import (
	"github.com/google/uuid"
)

type AddressType string

const (
	AddressHome      AddressType = "home"
	AddressOffice    AddressType = "office"
	AddressApartment AddressType = "apartment"
	AddressOther     AddressType = "other"
)

type Address struct {
	ID        uuid.UUID   `json:"id"`
	Type      AddressType `json:"type"`
	Label     string      `json:"label"`
	Street    string      `json:"street"`
	Building  string      `json:"building,omitempty"`
	Floor     string      `json:"floor,omitempty"`
	Apartment string      `json:"apartment,omitempty"`
	City      string      `json:"city"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	IsDefault bool        `json:"isDefault"`
}

// AddAddress appends addr. The first address is always the default; a later
// one becomes default only when makeDefault is set.
func (c *Customer) AddAddress(addr Address, makeDefault bool) Address {
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	addr.IsDefault = false
	c.Addresses = append(c.Addresses, addr)

	if makeDefault || len(c.Addresses) == 1 {
		c.markDefault(addr.ID)
	}
	c.normalizeDefaultAddress()

	return c.Addresses[len(c.Addresses)-1]
}

// FindAddress returns the index of the address with id, or -1.
func (c *Customer) FindAddress(id uuid.UUID) int {
	for i := range c.Addresses {
		if c.Addresses[i].ID == id {
			return i
		}
	}
	return -1
}

// ReplaceAddress overwrites the address with the same id. makeDefault nil
// keeps the current default flag, true promotes it, false demotes it (another
// address is promoted in its place when one exists).
func (c *Customer) ReplaceAddress(addr Address, makeDefault *bool) (Address, bool) {
	idx := c.FindAddress(addr.ID)
	if idx < 0 {
		return Address{}, false
	}

	wasDefault := c.Addresses[idx].IsDefault
	addr.IsDefault = wasDefault
	c.Addresses[idx] = addr

	switch {
	case makeDefault == nil:
	case *makeDefault:
		c.markDefault(addr.ID)
	case wasDefault && len(c.Addresses) > 1:
		for i := range c.Addresses {
			if i != idx {
				c.markDefault(c.Addresses[i].ID)
				break
			}
		}
	}
	c.normalizeDefaultAddress()

	return c.Addresses[idx], true
}

// RemoveAddress deletes the address; if it was the default the first
// remaining address takes over.
func (c *Customer) RemoveAddress(id uuid.UUID) bool {
	idx := c.FindAddress(id)
	if idx < 0 {
		return false
	}

	c.Addresses = append(c.Addresses[:idx], c.Addresses[idx+1:]...)
	c.normalizeDefaultAddress()
	return true
}

func (c *Customer) SetDefaultAddress(id uuid.UUID) bool {
	if c.FindAddress(id) < 0 {
		return false
	}
	c.markDefault(id)
	c.normalizeDefaultAddress()
	return true
}

func (c *Customer) markDefault(id uuid.UUID) {
	for i := range c.Addresses {
		c.Addresses[i].IsDefault = c.Addresses[i].ID == id
	}
}

// normalizeDefaultAddress restores: exactly one default when any address
// exists, and DefaultAddressID naming it (nil when there are none).
func (c *Customer) normalizeDefaultAddress() {
	if len(c.Addresses) == 0 {
		c.DefaultAddressID = nil
		return
	}

	def := -1
	for i := range c.Addresses {
		if c.Addresses[i].IsDefault {
			if def >= 0 {
				c.Addresses[i].IsDefault = false
				continue
			}
			def = i
		}
	}
	if def < 0 {
		def = 0
		c.Addresses[0].IsDefault = true
	}

	id := c.Addresses[def].ID
	c.DefaultAddressID = &id
}
