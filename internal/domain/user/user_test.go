package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	vo "helpdesk/internal/domain/user/valueobjects"
)

func TestSession_IsExpired(t *testing.T) {
	s := &Session{Token: "t"}
	assert.False(t, s.IsExpired())

	past := time.Now().Add(-time.Second)
	s.ExpiresAt = &past
	assert.True(t, s.IsExpired())
}

func TestFormFrom_OmitsPassword(t *testing.T) {
	u := User{ID: 1, FullName: "Rita", Email: "rita@example.com", Role: vo.RoleTechnician}
	f := FormFrom(u)
	assert.Empty(t, f.Password)
	assert.Equal(t, vo.RoleTechnician, f.Role)
	assert.True(t, u.IsTechnician())
}
