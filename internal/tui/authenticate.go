// ABOUTME: Credential check used by the login wizard.
// ABOUTME: Validates the form locally, then exchanges it for a token against the given API.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/validate"
)

// Authenticate logs in against apiURL. The context allows cancellation when
// the user quits while the request is in flight.
func Authenticate(ctx context.Context, apiURL, email, password string) (*api.AuthResult, error) {
	creds, err := validate.Login(email, password)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(strings.TrimRight(apiURL, "/"), api.WithTimeout(10*time.Second))
	return client.Login(ctx, creds)
}
