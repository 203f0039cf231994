// Package models defines client-side data models used by the userdesk console.
package models

import "fmt"

// User is a directory record as returned by the remote service.
// The service owns identity; the client only keeps transient copies.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

// FullName joins first and last name with a single space.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u User) String() string {
	return fmt.Sprintf("#%d %s <%s>", u.ID, u.FullName(), u.Email)
}

// UserPatch carries a partial update. Nil fields are not sent, so the
// server keeps their current values.
type UserPatch struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.Avatar == nil
}

// FillMissing returns a copy of u where fields the server left empty are
// taken from the patch. Values the server did send always win.
func (p UserPatch) FillMissing(u User) User {
	if u.Email == "" && p.Email != nil {
		u.Email = *p.Email
	}
	if u.FirstName == "" && p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if u.LastName == "" && p.LastName != nil {
		u.LastName = *p.LastName
	}
	if u.Avatar == "" && p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	return u
}

// UserPage is one server-side page of the user listing.
// It is regenerated on every request and never merged with other pages.
type UserPage struct {
	Items      []User `json:"data"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}
