// Package usersapi is a typed client for the user management HTTP API.
package usersapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	appuser "usermanagement/internal/app/user"
	"usermanagement/internal/httpclient"
	"usermanagement/internal/logging"
)

type Client struct {
	http   *httpclient.Client
	prefix string
	logger logging.Logger
}

func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	httpCli, err := httpclient.New(baseURL, timeout, logger.With("component", "users_http"))
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   httpCli,
		prefix: "/api/users",
		logger: logger,
	}, nil
}

func (c *Client) userPath(id int64) string {
	return fmt.Sprintf("%s/%d", c.prefix, id)
}

func (c *Client) Create(ctx context.Context, req appuser.CreateUserRequest) (*appuser.UserResponse, error) {
	var res appuser.UserResponse
	if err := c.http.PostJSON(ctx, c.prefix, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) List(ctx context.Context) ([]appuser.UserResponse, error) {
	var res []appuser.UserResponse
	if err := c.http.GetJSON(ctx, c.prefix, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns (nil, nil) when the user does not exist.
func (c *Client) Get(ctx context.Context, id int64) (*appuser.UserResponse, error) {
	var res appuser.UserResponse
	if err := c.http.GetJSON(ctx, c.userPath(id), nil, &res); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// Update returns (nil, nil) when the user does not exist.
func (c *Client) Update(ctx context.Context, id int64, req appuser.UpdateUserRequest) (*appuser.UserResponse, error) {
	var res appuser.UserResponse
	if err := c.http.PutJSON(ctx, c.userPath(id), req, &res); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func isNotFound(err error) bool {
	var httpErr *httpclient.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is the API rejecting a duplicate email.
func IsConflict(err error) bool {
	var httpErr *httpclient.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusConflict
}
