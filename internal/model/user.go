package model

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a registered user. The password column stores the bcrypt
// digest, never the plaintext, and is excluded from every JSON payload.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"uniqueIndex;size:150;not null"`
	Password string `json:"-" gorm:"size:255;not null"`
	Role     Role   `json:"role" gorm:"type:enum('admin','user');default:'user'"`
}
