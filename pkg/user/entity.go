package user

import (
	"time"

	"gorm.io/gorm"

	"github.com/drelaann/simple-ecommerce-api/pkg/optional"
	"github.com/drelaann/simple-ecommerce-api/pkg/repository"
)

// User is a shop account. Email and username are unique across all users.
// PasswordHash never leaves the service layer.
type User struct {
	ID           int64      `gorm:"primaryKey"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"`
	Username     string     `gorm:"size:100;not null;uniqueIndex"`
	FullName     *string    `gorm:"size:255"`
	PasswordHash string     `gorm:"column:hashed_password;not null"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false"`
}

func (User) TableName() string { return "users" }

func (u User) GetID() int64 { return u.ID }

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("updated_at", time.Now().UTC())
	return nil
}

// CreateCommand carries a new account. Password is plaintext and is hashed
// before anything is stored.
type CreateCommand struct {
	Email    string
	Username string
	FullName *string
	Password string
	IsActive bool
}

// UpdateCommand is a partial update. A supplied Password is re-hashed by the
// service; a null FullName clears it.
type UpdateCommand struct {
	Email    optional.Value[string]
	Username optional.Value[string]
	FullName optional.Value[string]
	Password optional.Value[string]
	IsActive optional.Value[bool]
}

// Fields lists the profile columns this command writes. The password is not
// included; the service adds the hash column itself.
func (c UpdateCommand) Fields() repository.Fields {
	f := repository.Fields{}
	if v, ok := c.Email.Get(); ok {
		f["email"] = v
	}
	if v, ok := c.Username.Get(); ok {
		f["username"] = v
	}
	if c.FullName.IsNull() {
		f["full_name"] = nil
	} else if v, ok := c.FullName.Get(); ok {
		f["full_name"] = v
	}
	if v, ok := c.IsActive.Get(); ok {
		f["is_active"] = v
	}
	return f
}
