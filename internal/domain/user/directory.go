package user

import (
	"fmt"

	"github.com/your-org/canteen-backend/internal/pkg/auth"
)

type account struct {
	user         User
	passwordHash string
}

// Directory is the fixed table of demo accounts. Passwords are hashed once
// when the directory is built and verified with bcrypt on login.
type Directory struct {
	accounts []account
}

type demoAccount struct {
	user     User
	password string
}

var demoAccounts = []demoAccount{
	{
		user:     User{ID: "1", Name: "Demo Student", Email: "student@example.com", Role: RoleStudent},
		password: "password123",
	},
	{
		user:     User{ID: "2", Name: "Canteen Admin", Email: "admin@example.com", Role: RoleAdmin},
		password: "admin123",
	},
}

// NewDemoDirectory hashes the demo passwords with the given manager
func NewDemoDirectory(passwords *auth.PasswordManager) (*Directory, error) {
	d := &Directory{accounts: make([]account, 0, len(demoAccounts))}
	for _, demo := range demoAccounts {
		hash, err := passwords.HashPassword(demo.password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo password for %s: %w", demo.user.Email, err)
		}
		d.accounts = append(d.accounts, account{user: demo.user, passwordHash: hash})
	}
	return d, nil
}

func (d *Directory) lookup(email string) (account, bool) {
	email = normalizeEmail(email)
	for _, a := range d.accounts {
		if a.user.Email == email {
			return a, true
		}
	}
	return account{}, false
}

// Exists reports whether email belongs to a demo account
func (d *Directory) Exists(email string) bool {
	_, ok := d.lookup(email)
	return ok
}

// First returns the first demo user, used by the provider login
func (d *Directory) First() User {
	return d.accounts[0].user
}
