package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

// Client is the remote directory contract used by the services.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context)
	ListUsers(ctx context.Context, page int) (models.UserPage, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// DirectoryClient implements Client over a Pipeline.
type DirectoryClient struct {
	p *Pipeline
}

func NewDirectoryClient(p *Pipeline) *DirectoryClient {
	return &DirectoryClient{p: p}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token and stores it in the session.
// On any failure the session is left as it was.
func (c *DirectoryClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.p.Do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			return "", fmt.Errorf("%w: %w", ErrAuthFailed, err)
		}
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: no token in response", ErrAuthFailed)
	}
	c.p.Session().Set(ctx, resp.Token)
	return resp.Token, nil
}

// Logout forgets the token. The API has no server-side logout.
func (c *DirectoryClient) Logout(ctx context.Context) {
	c.p.Session().Clear(ctx)
}

// ListUsers fetches one server page. Pages below 1 are treated as 1.
func (c *DirectoryClient) ListUsers(ctx context.Context, page int) (models.UserPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{"page": {strconv.Itoa(page)}}

	var out models.UserPage
	if err := c.p.Do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, &out); err != nil {
		return models.UserPage{}, err
	}
	if out.Items == nil {
		out.Items = []models.User{}
	}
	return out, nil
}

type userEnvelope struct {
	Data models.User `json:"data"`
}

func (c *DirectoryClient) GetUser(ctx context.Context, id int) (models.User, error) {
	var out userEnvelope
	if err := c.p.Do(ctx, http.MethodGet, userPath(id), nil, &out); err != nil {
		return models.User{}, err
	}
	return out.Data, nil
}

// UpdateUser sends only the fields set in patch. The server merges; its
// echo is returned, with the id and any unechoed patch fields filled in.
func (c *DirectoryClient) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	var out models.User
	if err := c.p.Do(ctx, http.MethodPut, userPath(id), patch, &out); err != nil {
		return models.User{}, err
	}
	if out.ID == 0 {
		out.ID = id
	}
	return patch.FillMissing(out), nil
}

// DeleteUser issues a single DELETE. Repeated deletes are the server's concern.
func (c *DirectoryClient) DeleteUser(ctx context.Context, id int) error {
	return c.p.Do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func userPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}
