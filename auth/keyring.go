// Package auth provides a high-level API for persisting and retrieving user credentials from the system keyring.
package auth

import (
	"github.com/zalando/go-keyring"
)

const service = "mangasan-cli"

// SetToken persists a named service token to the system keyring.
func SetToken(name, token string) error {
	return keyring.Set(service, name, token)
}

// GetToken retrieves a named service token from the system keyring.
func GetToken(name string) (string, error) {
	return keyring.Get(service, name)
}

// DeleteToken removes a named service token from the system keyring.
func DeleteToken(name string) error {
	return keyring.Delete(service, name)
}
