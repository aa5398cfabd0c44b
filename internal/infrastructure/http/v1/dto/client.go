package dto

import (
	"quotify/internal/core/id"
	"quotify/internal/domain/client"
)

// ContactRequest is one contact of a client payload.
type ContactRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
	Primary  bool   `json:"primary"`
}

func (r ContactRequest) toContact() client.Contact {
	c := client.Contact{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Position: r.Position,
		Primary:  r.Primary,
	}
	if parsed, err := id.Parse(r.ID); err == nil {
		c.ID = parsed
	}
	return c
}

func toContacts(reqs []ContactRequest) []client.Contact {
	contacts := make([]client.Contact, 0, len(reqs))
	for _, r := range reqs {
		contacts = append(contacts, r.toContact())
	}
	return contacts
}

// CreateClientRequest for client creation.
type CreateClientRequest struct {
	Name         string           `json:"name" binding:"required"`
	Email        string           `json:"email" binding:"required,email"`
	Phone        string           `json:"phone,omitempty"`
	Address      string           `json:"address,omitempty"`
	City         string           `json:"city,omitempty"`
	Country      string           `json:"country,omitempty"`
	VATNumber    string           `json:"vatNumber,omitempty"`
	Website      string           `json:"website,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	AssignedUser string           `json:"assignedUser,omitempty"`
	Contacts     []ContactRequest `json:"contacts,omitempty"`
}

// ToClient converts to a domain client.
func (r *CreateClientRequest) ToClient() *client.Client {
	c := client.New(r.Name, r.Email)
	c.Phone = r.Phone
	c.Address = r.Address
	c.City = r.City
	c.Country = r.Country
	c.VATNumber = r.VATNumber
	c.Website = r.Website
	c.Notes = r.Notes
	c.AssignedUser = r.AssignedUser
	c.Contacts = toContacts(r.Contacts)
	return c
}

// UpdateClientRequest for partial client updates.
type UpdateClientRequest struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email"`
	Phone        *string          `json:"phone"`
	Address      *string          `json:"address"`
	City         *string          `json:"city"`
	Country      *string          `json:"country"`
	VATNumber    *string          `json:"vatNumber"`
	Website      *string          `json:"website"`
	Notes        *string          `json:"notes"`
	AssignedUser *string          `json:"assignedUser"`
	Active       *bool            `json:"active"`
	Contacts     []ContactRequest `json:"contacts"`
}

// ToPatch converts to a domain patch.
func (r *UpdateClientRequest) ToPatch() client.Patch {
	p := client.Patch{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		City:         r.City,
		Country:      r.Country,
		VATNumber:    r.VATNumber,
		Website:      r.Website,
		Notes:        r.Notes,
		AssignedUser: r.AssignedUser,
		Active:       r.Active,
	}
	if r.Contacts != nil {
		p.Contacts = toContacts(r.Contacts)
	}
	return p
}

// NextCodeResponse carries the next free client code.
type NextCodeResponse struct {
	Code string `json:"code"`
}
