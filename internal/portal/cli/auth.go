package cli

import (
	"context"
	"fmt"
)

// Login reads the hosted-auth session token and opens a session.
func (a *App) Login(ctx context.Context) {
	if a.isLoggedIn() {
		fmt.Println("already logged in")
		return
	}

	token, err := readSecret("session token: ")
	if err != nil {
		fmt.Println("login cancelled")
		return
	}

	s, err := a.session.Login(ctx, token)
	if err != nil {
		fmt.Printf("login failed: %v\n", err)
		return
	}

	a.current = s
	a.startBackground(ctx)
	fmt.Printf("welcome, %s\n", s.Name)
}

func (a *App) Logout(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	a.stopBackground()
	if err := a.session.Logout(ctx); err != nil {
		fmt.Printf("logout failed: %v\n", err)
		return
	}
	a.current = nil
	fmt.Println("logged out")
}

// requireLogin gates commands on an open session.
func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Println("log in first")
		return false
	}
	return true
}

func (a *App) requireAdmin() bool {
	if !a.requireLogin() {
		return false
	}
	if !a.isAdmin() {
		fmt.Println("admin privileges required")
		return false
	}
	return true
}
