package model

import "time"

/*

User is an account that authors posts, comments and replies.

Id: primary key
CreatedAt: time when the account was created

Email: login identity, unique across all users
FirstName: display first name
LastName: display last name
Hash: argon2id password digest. Never serialized outward, the json tag is
the contract and callers additionally zero it before returning a user.

*/

type User struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Hash      string    `gorm:"not null" json:"-"`
}
