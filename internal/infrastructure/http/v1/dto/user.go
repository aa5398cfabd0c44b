package dto

import "quotify/internal/domain/auth"

// UpdateUserRequest for partial profile updates. Role and IsActive
// changes are restricted to admins by the handler.
type UpdateUserRequest struct {
	Name               *string `json:"name"`
	Role               *string `json:"role"`
	IsActive           *bool   `json:"isActive"`
	Phone              *string `json:"phone"`
	Company            *string `json:"company"`
	Position           *string `json:"position"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	Country            *string `json:"country"`
	EmailNotifications *bool   `json:"emailNotifications"`
	QuoteNotifications *bool   `json:"quoteNotifications"`
}

// ToPatch converts to a domain patch.
func (r *UpdateUserRequest) ToPatch() auth.Patch {
	return auth.Patch{
		Name:               r.Name,
		Role:               r.Role,
		IsActive:           r.IsActive,
		Phone:              r.Phone,
		Company:            r.Company,
		Position:           r.Position,
		Address:            r.Address,
		City:               r.City,
		Country:            r.Country,
		EmailNotifications: r.EmailNotifications,
		QuoteNotifications: r.QuoteNotifications,
	}
}

// UserListQuery contains user list parameters.
type UserListQuery struct {
	Search string `form:"search"`
	Role   string `form:"role"`
	Active *bool  `form:"active"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// ToFilter converts to a domain filter.
func (r *UserListQuery) ToFilter() auth.UserFilter {
	return auth.UserFilter{
		Search:   r.Search,
		Role:     r.Role,
		IsActive: r.Active,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID                 string  `json:"id"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	Role               string  `json:"role"`
	IsActive           bool    `json:"isActive"`
	Phone              string  `json:"phone,omitempty"`
	Company            string  `json:"company,omitempty"`
	Position           string  `json:"position,omitempty"`
	Address            string  `json:"address,omitempty"`
	City               string  `json:"city,omitempty"`
	Country            string  `json:"country,omitempty"`
	EmailNotifications bool    `json:"emailNotifications"`
	QuoteNotifications bool    `json:"quoteNotifications"`
	LastLoginAt        *string `json:"lastLoginAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
}

// FromUser strips the password hash from a user.
func FromUser(u *auth.User) UserResponse {
	resp := UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		IsActive:           u.IsActive,
		Phone:              u.Phone,
		Company:            u.Company,
		Position:           u.Position,
		Address:            u.Address,
		City:               u.City,
		Country:            u.Country,
		EmailNotifications: u.EmailNotifications,
		QuoteNotifications: u.QuoteNotifications,
		CreatedAt:          u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if u.LastLoginAt != nil {
		s := u.LastLoginAt.Format("2006-01-02T15:04:05Z07:00")
		resp.LastLoginAt = &s
	}
	return resp
}

// FromUsers maps a slice of users.
func FromUsers(users []auth.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUser(&users[i]))
	}
	return out
}
