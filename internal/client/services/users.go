package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/gammazero/workerpool"
)

// UserService wraps the directory calls the console issues once the
// session gate has passed.
type UserService interface {
	List(ctx context.Context, page int) (models.UserPage, error)
	Get(ctx context.Context, id int) (models.User, error)
	Update(ctx context.Context, id int, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id int) error
	BulkDelete(ctx context.Context, ids []int) models.BulkDeleteResult
}

type userService struct {
	client      client.Client
	concurrency int
}

// NewUserService returns a UserService. concurrency bounds parallel deletes
// in BulkDelete; 0 or less means one worker per id.
func NewUserService(c client.Client, concurrency int) UserService {
	return &userService{client: c, concurrency: concurrency}
}

func (s *userService) List(ctx context.Context, page int) (models.UserPage, error) {
	p, err := s.client.ListUsers(ctx, page)
	if err != nil {
		return models.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	return p, nil
}

func (s *userService) Get(ctx context.Context, id int) (models.User, error) {
	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	u, err := s.client.UpdateUser(ctx, id, patch)
	if err != nil {
		return models.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// BulkDelete issues every delete concurrently and waits for all of them.
// Duplicate ids are deleted once. Deletes that succeed stay in effect
// whatever happens to the others.
func (s *userService) BulkDelete(ctx context.Context, ids []int) models.BulkDeleteResult {
	res := models.NewBulkDeleteResult()
	ids = slices.Compact(slices.Sorted(slices.Values(ids)))
	if len(ids) == 0 {
		return res
	}

	size := s.concurrency
	if size <= 0 || size > len(ids) {
		size = len(ids)
	}
	wp := workerpool.New(size)

	var mu sync.Mutex
	for _, id := range ids {
		wp.Submit(func() {
			err := s.client.DeleteUser(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[id] = err
				return
			}
			res.Succeeded = append(res.Succeeded, id)
		})
	}
	wp.StopWait()

	slices.Sort(res.Succeeded)
	return res
}
