package mocks

import (
	"context"

	"postsync/core/lockfile"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of lockfile.Client
type Client struct {
	mock.Mock
}

func (m *Client) Retrieve(ctx context.Context) (*lockfile.Lockfile, error) {
	args := m.Called(ctx)
	if lock, ok := args.Get(0).(*lockfile.Lockfile); ok {
		return lock, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Persist(ctx context.Context, lock lockfile.Lockfile) error {
	args := m.Called(ctx, lock)
	return args.Error(0)
}
