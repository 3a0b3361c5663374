package model

import "time"

// Category represents an admin-managed film category stored in
// the `categories` table.  Categories with IsVisible=false are
// hidden from public listings but remain attached to films.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique category name.
//  Description – optional description.
//  IsVisible   – whether the category appears in public listings.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Category struct {
	ID          uint64    // categories.id
	Name        string    // categories.name
	Description string    // categories.description
	IsVisible   bool      // categories.is_visible
	CreatedAt   time.Time // categories.created_at
	UpdatedAt   time.Time // categories.updated_at
}
