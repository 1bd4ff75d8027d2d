package models

import "gorm.io/gorm"

// Roles carried in access tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a POS operator account.
type User struct {
	gorm.Model
	Username string  `gorm:"size:80;uniqueIndex;not null"  json:"username"`
	Email    string  `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password string  `gorm:"size:200;not null"             json:"-"` // bcrypt hash
	Name     string  `gorm:"size:100"                      json:"name"`
	IsAdmin  bool    `gorm:"not null;default:false"        json:"is_admin"`
	BranchID uint    `gorm:"index"                         json:"branch_id"`
	Branch   *Branch `json:"branch,omitempty"`
}

// Role maps the admin flag onto the token role.
func (u User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Branch is a physical retail location. Stock and sales are partitioned by it.
type Branch struct {
	gorm.Model
	Name     string `gorm:"size:100;not null" json:"name"`
	Location string `gorm:"size:200;not null" json:"location"`
	Phone    string `gorm:"size:20;not null"  json:"phone"`
}
