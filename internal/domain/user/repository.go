package user

import (
	"helpdesk/internal/domain/shared"
)

type UserRepository interface {
	shared.Repository[User, Filter, Form]
}
