package user

import (
	"time"

	vo "helpdesk/internal/domain/user/valueobjects"
)

// User is an account known to the API. The signed-in user is also the
// identity held by the session.
type User struct {
	ID        int64      `json:"id"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	Role      vo.Role    `json:"tipo"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func (u User) IsTechnician() bool {
	return u.Role.IsTechnician()
}

type Filter struct {
	FullName *string  `json:"fullName,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Role     *vo.Role `json:"tipo,omitempty"`
}

// Form creates or edits a user. Password is only sent when set.
type Form struct {
	FullName string  `json:"fullName" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Role     vo.Role `json:"tipo" validate:"required,oneof=usuario tecnico"`
	Password string  `json:"password,omitempty" validate:"omitempty,min=6"`
}

func NewForm() Form {
	return Form{Role: vo.RoleUser}
}

func FormFrom(u User) Form {
	return Form{
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}
