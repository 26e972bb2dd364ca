package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/persistence/models"
)

type SessionMapper interface {
	ToModel(session *user.Session) (*models.SessionModel, error)
	ToDomain(model *models.SessionModel) (*user.Session, error)
}

type sessionMapper struct{}

func NewSessionMapper() SessionMapper {
	return &sessionMapper{}
}

func (m *sessionMapper) ToModel(session *user.Session) (*models.SessionModel, error) {
	identity, err := json.Marshal(session.User)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal identity: %w", err)
	}

	return &models.SessionModel{
		ID:        models.SessionID,
		Token:     session.Token,
		Identity:  datatypes.JSON(identity),
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (m *sessionMapper) ToDomain(model *models.SessionModel) (*user.Session, error) {
	var identity user.User
	if len(model.Identity) > 0 {
		if err := json.Unmarshal(model.Identity, &identity); err != nil {
			return nil, fmt.Errorf("failed to unmarshal identity: %w", err)
		}
	}

	return &user.Session{
		Token:     model.Token,
		User:      identity,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}, nil
}
