package lockfile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrConflict is returned by Persist when the store rejects a write
// because another run has persisted a newer lockfile in the meantime.
var ErrConflict = errors.New("lockfile was modified by a concurrent run")

// Client talks to the lockfile store for one repository.
type Client interface {
	// Retrieve fetches the repository's lockfile. A nil lockfile with a
	// nil error means the repository has never been synced (first run).
	Retrieve(ctx context.Context) (*Lockfile, error)
	// Persist replaces the repository's lockfile with lock. It sends the
	// revision observed by the preceding Retrieve so the store can reject
	// lost-update races with ErrConflict; stores that ignore the field
	// accept the write unconditionally.
	Persist(ctx context.Context, lock Lockfile) error
}

// retrieveResponse is the store's GET envelope. Data is null when no
// lockfile exists yet.
type retrieveResponse struct {
	Data *Lockfile `json:"data"`
}

// persistRequest is the store's PUT body. Posts replaces the whole
// entry set; there is no partial patch.
type persistRequest struct {
	RepositoryName string    `json:"repositoryName"`
	Revision       time.Time `json:"revision"`
	Posts          []Entry   `json:"posts"`
}

type restClient struct {
	http           *resty.Client
	repositoryID   string
	repositoryName string

	// revision is the UpdatedAt of the last retrieved lockfile, echoed
	// back on Persist as the optimistic-concurrency token. A run uses one
	// client sequentially, so no locking is needed.
	revision time.Time
}

// NewClient creates a lockfile store client bound to the repository
// identity in cfg. The identity is passed in explicitly; nothing below
// this constructor reads the process environment.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 5
	}

	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Accept", "application/json")
	if cfg.ApiKey != "" {
		httpClient.SetAuthToken(cfg.ApiKey)
	}

	return &restClient{
		http:           httpClient,
		repositoryID:   cfg.RepositoryID,
		repositoryName: cfg.RepositoryName,
	}
}

func (c *restClient) Retrieve(ctx context.Context) (*Lockfile, error) {
	var out retrieveResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/lockfiles/" + c.repositoryID)
	if err != nil {
		return nil, fmt.Errorf("retrieving lockfile for %s: %w", c.repositoryID, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		// First run: the store has no record for this repository.
		return nil, nil
	case resp.IsError():
		return nil, fmt.Errorf("retrieving lockfile for %s: store returned %d: %s",
			c.repositoryID, resp.StatusCode(), resp.String())
	}

	if out.Data != nil {
		c.revision = out.Data.UpdatedAt
	}
	return out.Data, nil
}

func (c *restClient) Persist(ctx context.Context, lock Lockfile) error {
	body := persistRequest{
		RepositoryName: c.repositoryName,
		Revision:       c.revision,
		Posts:          lock.Content,
	}
	if body.Posts == nil {
		body.Posts = []Entry{}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Put("/lockfiles/" + c.repositoryID)
	if err != nil {
		return fmt.Errorf("persisting lockfile for %s: %w", c.repositoryID, err)
	}

	switch {
	case resp.StatusCode() == http.StatusConflict:
		return fmt.Errorf("persisting lockfile for %s: %w", c.repositoryID, ErrConflict)
	case resp.IsError():
		return fmt.Errorf("persisting lockfile for %s: store returned %d: %s",
			c.repositoryID, resp.StatusCode(), resp.String())
	}

	return nil
}
