package api

import (
	"helpdesk/internal/domain/user"
)

type UsersAPI struct {
	*Resource[user.User, user.Filter, user.Form]
}

var _ user.UserRepository = (*UsersAPI)(nil)

func NewUsersAPI(client *Client) *UsersAPI {
	return &UsersAPI{
		Resource: NewResource[user.User, user.Filter, user.Form](client, "/users", FilterQuery),
	}
}
