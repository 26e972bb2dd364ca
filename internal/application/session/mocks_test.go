package session

import (
	"context"

	pvo "helpdesk/internal/domain/permission/value_objects"
	"helpdesk/internal/domain/user"
)

type mockAuthenticator struct {
	LoginFunc func(ctx context.Context, creds user.Credentials) (*user.AuthResult, error)
	MeFunc    func(ctx context.Context) (*user.User, error)
	meCalls   int
}

func (m *mockAuthenticator) Login(ctx context.Context, creds user.Credentials) (*user.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return nil, nil
}

func (m *mockAuthenticator) Me(ctx context.Context) (*user.User, error) {
	m.meCalls++
	if m.MeFunc != nil {
		return m.MeFunc(ctx)
	}
	return nil, nil
}

type mockSessionRepository struct {
	LoadFunc   func(ctx context.Context) (*user.Session, error)
	SaveFunc   func(ctx context.Context, session *user.Session) error
	ClearFunc  func(ctx context.Context) error
	saved      *user.Session
	clearCalls int
}

func (m *mockSessionRepository) Load(ctx context.Context) (*user.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return m.saved, nil
}

func (m *mockSessionRepository) Save(ctx context.Context, session *user.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.saved = session
	return nil
}

func (m *mockSessionRepository) Clear(ctx context.Context) error {
	m.clearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.saved = nil
	return nil
}

type mockEnforcer struct {
	EnforceFunc func(role string, resource pvo.Resource, action pvo.Action) (bool, error)
}

func (m *mockEnforcer) Enforce(role string, resource pvo.Resource, action pvo.Action) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(role, resource, action)
	}
	return true, nil
}

func (m *mockEnforcer) AddPolicy(role string, resource pvo.Resource, action pvo.Action) error {
	return nil
}

func (m *mockEnforcer) RemovePolicy(role string, resource pvo.Resource, action pvo.Action) error {
	return nil
}

func (m *mockEnforcer) GetPermissionsForRole(role string) ([][]string, error) {
	return nil, nil
}

func (m *mockEnforcer) LoadPolicy() error {
	return nil
}
