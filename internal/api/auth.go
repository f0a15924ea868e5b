// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/model"
)

// Login exchanges credentials for a token and stores it in the session store.
func (c *Client) Login(ctx context.Context, creds model.Credentials) error {
	const op = "login"
	if err := c.validateStruct(creds); err != nil {
		return err
	}

	data, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/auth/login", body: creds})
	if err != nil {
		if HasStatus(err, http.StatusBadRequest) || HasStatus(err, http.StatusUnauthorized) {
			return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return err
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.Token == "" {
		logging.Warnf("api: login answered without a token")
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := c.store.Set(resp.Token, c.sessionTTL); err != nil {
		return fmt.Errorf("%s: storing credential: %w", op, err)
	}
	logging.Infof("api: logged in as %s", creds.Email)
	return nil
}

// Logout ends the session on the server and clears the stored credential.
// A 401 means the server already dropped the token, so it is cleared too.
// Any other failure keeps the credential.
func (c *Client) Logout(ctx context.Context) error {
	const op = "logout"
	_, err := c.do(ctx, call{op: op, method: http.MethodPost, path: "/auth/logout", auth: true})
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) || !HasStatus(err, http.StatusUnauthorized) {
			return err
		}
		logging.Infof("api: server rejected logout with 401, clearing credential")
	}
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("%s: clearing credential: %w", op, err)
	}
	return nil
}
