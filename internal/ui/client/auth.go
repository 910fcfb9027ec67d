package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/fieldops/opsconsole/internal/ui/session"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

// Login authenticates with the backend and, on success, stores the session.
// A 401 here means bad credentials rather than an expired session, so it does not purge or navigate.
func (c *Client) Login(ctx context.Context, email, password string) (*types.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, &ClientError{
			Kind:        KindInvalidInput,
			UserMessage: "Email and password are required.",
			LogMessage:  "login attempted without email or password",
		}
	}

	res, err := c.send(ctx, http.MethodPost, EndpointLogin, types.LoginRequest{Email: email, Password: password}, requestOptions{anonymous: true})
	if err != nil {
		var ce *ClientError
		if errors.As(err, &ce) && ce.StatusCode == http.StatusUnauthorized && ce.UserMessage == "request failed with status 401" {
			ce.UserMessage = "Login failed. Please check your email and password and try again."
		}
		return nil, err
	}

	login, err := decode[types.LoginResponse](res.Body, "decoding login response")
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := session.Save(c.store, login); err != nil {
			return nil, NewClientInternalError(err, "saving the session")
		}
	}
	return &login, nil
}

// Logout forgets the session. The backend keeps no server-side session state to end.
func (c *Client) Logout() error {
	if c.store == nil {
		return nil
	}
	return session.Purge(c.store)
}

// Register creates a new admin or employee account
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.RegisterResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, &ClientError{
			Kind:        KindInvalidInput,
			UserMessage: "Email and password are required.",
			LogMessage:  "register attempted without email or password",
		}
	}
	if req.Role == "" {
		req.Role = types.RoleEmployee
	}
	if !req.Role.Valid() {
		return nil, &ClientError{
			Kind:        KindInvalidInput,
			UserMessage: "Role must be admin or employee.",
			LogMessage:  "register attempted with role " + string(req.Role),
		}
	}

	body, err := c.Post(ctx, EndpointRegister, req)
	if err != nil {
		return nil, err
	}
	resp, err := decode[types.RegisterResponse](body, "decoding register response")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile returns the signed-in user
func (c *Client) Profile(ctx context.Context) (*types.User, error) {
	body, err := c.Get(ctx, EndpointProfile)
	if err != nil {
		return nil, err
	}
	user, err := decode[types.User](body, "decoding profile response")
	if err != nil {
		return nil, err
	}
	return &user, nil
}
