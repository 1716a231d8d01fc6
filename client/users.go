package client

import (
	"context"
	"net/http"
)

// UsersService manages console user accounts.
type UsersService struct {
	service
}

type usersPage struct {
	Users []User   `json:"users"`
	Meta  ListMeta `json:"meta"`
}

func (s *UsersService) List(ctx context.Context, opts ListOptions) ([]User, *ListMeta, error) {
	var page usersPage
	if err := s.client.do(ctx, http.MethodGet, "/api/users/"+opts.query(), nil, &page); err != nil {
		return nil, nil, err
	}
	return page.Users, &page.Meta, nil
}

func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, "/api/users/"+id+"/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersService) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodPost, "/api/users/", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersService) Deactivate(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/api/users/"+id+"/", nil, nil)
}
