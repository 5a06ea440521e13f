// Package auth persists the controller channel token in the system keyring.
package auth

import (
	"errors"

	"github.com/hostplay/hostplay/constant"
	"github.com/zalando/go-keyring"
)

const user = "channel-token"

// ErrNoToken is returned when no channel token has been stored.
var ErrNoToken = errors.New("no channel token stored, run \"hostplay token set\"")

// SetToken persists the channel token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(constant.Hostplay, user, token)
}

// GetToken retrieves the channel token from the system keyring.
func GetToken() (string, error) {
	token, err := keyring.Get(constant.Hostplay, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	return token, err
}

// DeleteToken removes the channel token from the system keyring.
func DeleteToken() error {
	return keyring.Delete(constant.Hostplay, user)
}
