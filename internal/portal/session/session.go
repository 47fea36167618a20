// Package session persists the login state in the cache, mirroring the
// original client's isLoggedIn/isAdmin/userName/currentStudentId keys.
// Authentication itself is hosted; the client only decodes the session
// token's claims, it never verifies or refreshes it.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/campusdesk/internal/common"
	"github.com/dmitrijs2005/campusdesk/internal/logging"
	"github.com/dmitrijs2005/campusdesk/internal/portal/cache"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the portal session token payload.
type Claims struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Admin     bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Session is the decoded login state.
type Session struct {
	StudentID string
	Name      string
	Admin     bool
}

type Manager struct {
	cache cache.Store
	log   logging.Logger
}

func NewManager(c cache.Store, log logging.Logger) *Manager {
	return &Manager{cache: c, log: log.With("module", "session")}
}

// Login decodes the token claims and persists the session. The signature is
// not verified here: the hosted backend issued and will verify the token;
// the client only needs the identity claims and the expiry.
func (m *Manager) Login(ctx context.Context, token string) (*Session, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.StudentID == "" {
		return nil, fmt.Errorf("%w: missing studentId claim", common.ErrInvalidToken)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: token expired", common.ErrInvalidToken)
	}

	admin := "false"
	if claims.Admin {
		admin = "true"
	}

	// all five keys land together or not at all
	if err := m.cache.SetMany(ctx, map[string][]byte{
		cache.KeyIsLoggedIn:       []byte("true"),
		cache.KeyIsAdmin:          []byte(admin),
		cache.KeyUserName:         []byte(claims.Name),
		cache.KeyCurrentStudentID: []byte(claims.StudentID),
		cache.KeySessionToken:     []byte(token),
	}); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "logged in", "studentId", claims.StudentID, "admin", claims.Admin)
	return &Session{StudentID: claims.StudentID, Name: claims.Name, Admin: claims.Admin}, nil
}

// Current returns the persisted session, or ErrNotLoggedIn.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	loggedIn, err := m.cache.Get(ctx, cache.KeyIsLoggedIn)
	if err != nil {
		return nil, err
	}
	if string(loggedIn) != "true" {
		return nil, common.ErrNotLoggedIn
	}

	studentID, _ := m.cache.Get(ctx, cache.KeyCurrentStudentID)
	name, _ := m.cache.Get(ctx, cache.KeyUserName)
	admin, _ := m.cache.Get(ctx, cache.KeyIsAdmin)

	return &Session{
		StudentID: string(studentID),
		Name:      string(name),
		Admin:     string(admin) == "true",
	}, nil
}

// Logout clears the persisted session keys. Cached collections stay; they
// belong to the device, not the session.
func (m *Manager) Logout(ctx context.Context) error {
	for _, key := range []string{
		cache.KeyIsLoggedIn, cache.KeyIsAdmin, cache.KeyUserName,
		cache.KeyCurrentStudentID, cache.KeySessionToken,
	} {
		if err := m.cache.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Theme returns the persisted UI theme, defaulting to "light".
func (m *Manager) Theme(ctx context.Context) string {
	v, err := m.cache.Get(ctx, cache.KeyTheme)
	if err != nil || len(v) == 0 {
		return "light"
	}
	return string(v)
}

// SetTheme persists the UI theme preference.
func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	return m.cache.Set(ctx, cache.KeyTheme, []byte(theme))
}
