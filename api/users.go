package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/models"
)

const usersPath = "/api/users"

type Users struct {
	t Transport
}

func NewUsers(t Transport) *Users {
	return &Users{t: t}
}

func (u *Users) List(ctx context.Context, query models.UserQuery) ([]models.User, error) {
	params := url.Values{}
	if query.PublicOnly != nil {
		params.Set("is_public", strconv.FormatBool(*query.PublicOnly))
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}

	var users []models.User
	err := get(ctx, u.t, usersPath, params, "users", &users)
	return users, err
}

func (u *Users) Get(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	if err := requireID("user id", userID); err != nil {
		return user, err
	}
	err := get(ctx, u.t, path(usersPath, userID), nil, "user", &user)
	return user, err
}

// UpdateProfile updates the caller's own profile.
func (u *Users) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	var user models.User
	err := call(ctx, u.t, gateway.Request{Method: http.MethodPost, Path: usersPath, Body: update}, "user", &user)
	return user, err
}

func (u *Users) Update(ctx context.Context, userID string, update models.ProfileUpdate) (models.User, error) {
	var user models.User
	if err := requireID("user id", userID); err != nil {
		return user, err
	}
	err := call(ctx, u.t, gateway.Request{Method: http.MethodPut, Path: path(usersPath, userID), Body: update}, "user", &user)
	return user, err
}

// UploadImage replaces the caller's profile photo and returns its URL.
func (u *Users) UploadImage(ctx context.Context, fileName string, content []byte) (string, error) {
	if fileName == "" || len(content) == 0 {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "image file is empty")
	}

	var imageURL string
	err := call(ctx, u.t, gateway.Request{
		Method: http.MethodPost,
		Path:   path(usersPath, "upload-image"),
		Files: []gateway.File{{
			Param:       "image",
			Name:        fileName,
			ContentType: http.DetectContentType(content),
			Content:     content,
		}},
		Operation: "upload-image",
	}, "imageUrl", &imageURL)
	return imageURL, err
}

func (u *Users) Stats(ctx context.Context, userID string) (models.UserStats, error) {
	var stats models.UserStats
	if err := requireID("user id", userID); err != nil {
		return stats, err
	}
	err := get(ctx, u.t, path(usersPath, userID, "stats"), nil, "stats", &stats)
	return stats, err
}

// Delete deactivates the account.
func (u *Users) Delete(ctx context.Context, userID string) error {
	if err := requireID("user id", userID); err != nil {
		return err
	}
	return call(ctx, u.t, gateway.Request{Method: http.MethodDelete, Path: path(usersPath, userID)}, "", nil)
}
