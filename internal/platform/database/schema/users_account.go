// Copyright (c) 2026 Funtush. All rights reserved.

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	FullName    string
	Email       string
	Password    string
	Image       string
	IsAdmin     string
	LikedMovies string
	Version     string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	FullName:    "fullname",
	Email:       "email",
	Password:    "passwordhash",
	Image:       "image",
	IsAdmin:     "isadmin",
	LikedMovies: "likedmovies",
	Version:     "version",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all column names in scan order
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.FullName, t.Email, t.Password, t.Image, t.IsAdmin,
		t.LikedMovies, t.Version, t.CreatedAt, t.UpdatedAt,
	}
}
