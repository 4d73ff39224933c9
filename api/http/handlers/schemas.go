package handlers

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/drelaann/simple-ecommerce-api/pkg/optional"
	"github.com/drelaann/simple-ecommerce-api/pkg/product"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/password"
	"github.com/drelaann/simple-ecommerce-api/pkg/user"
)

var passwordTooLong = fmt.Sprintf("password must be at most %d bytes", password.MaxLength)

type createUserRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName *string `json:"full_name"`
	Password string  `json:"password"`
	IsActive *bool   `json:"is_active"`
}

func (r createUserRequest) validate() []string {
	var problems []string
	if !validEmail(r.Email) {
		problems = append(problems, "email must be a valid address")
	}
	if strings.TrimSpace(r.Username) == "" {
		problems = append(problems, "username is required")
	}
	if r.Password == "" {
		problems = append(problems, "password is required")
	} else if len(r.Password) > password.MaxLength {
		problems = append(problems, passwordTooLong)
	}
	return problems
}

func (r createUserRequest) command() user.CreateCommand {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return user.CreateCommand{
		Email:    r.Email,
		Username: r.Username,
		FullName: r.FullName,
		Password: r.Password,
		IsActive: active,
	}
}

type updateUserRequest struct {
	Email    optional.Value[string] `json:"email"`
	Username optional.Value[string] `json:"username"`
	FullName optional.Value[string] `json:"full_name"`
	Password optional.Value[string] `json:"password"`
	IsActive optional.Value[bool]   `json:"is_active"`
}

func (r updateUserRequest) validate() []string {
	var problems []string
	if r.Email.IsSet() {
		if v, ok := r.Email.Get(); !ok || !validEmail(v) {
			problems = append(problems, "email must be a valid address")
		}
	}
	if r.Username.IsSet() {
		if v, ok := r.Username.Get(); !ok || strings.TrimSpace(v) == "" {
			problems = append(problems, "username must not be empty")
		}
	}
	if r.Password.IsSet() {
		if v, ok := r.Password.Get(); !ok || v == "" {
			problems = append(problems, "password must not be empty")
		} else if len(v) > password.MaxLength {
			problems = append(problems, passwordTooLong)
		}
	}
	if r.IsActive.IsNull() {
		problems = append(problems, "is_active must be a boolean")
	}
	return problems
}

func (r updateUserRequest) command() user.UpdateCommand {
	return user.UpdateCommand{
		Email:    r.Email,
		Username: r.Username,
		FullName: r.FullName,
		Password: r.Password,
		IsActive: r.IsActive,
	}
}

type userResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FullName  *string    `json:"full_name"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(us []user.User) []userResponse {
	out := make([]userResponse, 0, len(us))
	for i := range us {
		out = append(out, toUserResponse(&us[i]))
	}
	return out
}

type createProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"is_active"`
}

func (r createProductRequest) validate() []string {
	var problems []string
	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "name is required")
	}
	if r.Price == nil {
		problems = append(problems, "price is required")
	} else if *r.Price < 0 {
		problems = append(problems, "price must be >= 0")
	}
	if r.Stock != nil && *r.Stock < 0 {
		problems = append(problems, "stock must be >= 0")
	}
	return problems
}

func (r createProductRequest) command() product.CreateCommand {
	cmd := product.CreateCommand{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    true,
	}
	if r.Price != nil {
		cmd.Price = *r.Price
	}
	if r.Stock != nil {
		cmd.Stock = *r.Stock
	}
	if r.IsActive != nil {
		cmd.IsActive = *r.IsActive
	}
	return cmd
}

type updateProductRequest struct {
	Name        optional.Value[string]  `json:"name"`
	Description optional.Value[string]  `json:"description"`
	Price       optional.Value[float64] `json:"price"`
	Stock       optional.Value[int]     `json:"stock"`
	IsActive    optional.Value[bool]    `json:"is_active"`
}

func (r updateProductRequest) validate() []string {
	var problems []string
	if r.Name.IsSet() {
		if v, ok := r.Name.Get(); !ok || strings.TrimSpace(v) == "" {
			problems = append(problems, "name must not be empty")
		}
	}
	if r.Price.IsSet() {
		if v, ok := r.Price.Get(); !ok || v < 0 {
			problems = append(problems, "price must be a number >= 0")
		}
	}
	if r.Stock.IsSet() {
		if v, ok := r.Stock.Get(); !ok || v < 0 {
			problems = append(problems, "stock must be an integer >= 0")
		}
	}
	if r.IsActive.IsNull() {
		problems = append(problems, "is_active must be a boolean")
	}
	return problems
}

func (r updateProductRequest) command() product.UpdateCommand {
	return product.UpdateCommand{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
	}
}

type productResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(ps []product.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toProductResponse(&ps[i]))
	}
	return out
}

// validEmail accepts a bare addr-spec; display names ("Bob <bob@x>") are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, "@")
}
