package session

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/octabyte/skillswap-client/enums"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/models"
	"github.com/octabyte/skillswap-client/storage"
)

// Vault is the persisted side of a session. Every write is one storage batch
// taken under a single mutex, so the access token and the user record are
// never observed torn.
type Vault struct {
	mu    sync.Mutex
	store storage.Store
}

func NewVault(store storage.Store) *Vault {
	return &Vault{store: store}
}

// Load reads the persisted session. found reports whether an access token is
// stored; the user may still be zero when the stored record is missing.
func (v *Vault) Load(ctx context.Context) (s models.Session, found bool, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	token, found, err := v.store.Get(ctx, enums.StorageKeyAccessToken)
	if err != nil || !found || token == "" {
		return models.Session{}, false, err
	}
	s.AccessToken = token

	if s.RefreshToken, _, err = v.store.Get(ctx, enums.StorageKeyRefreshToken); err != nil {
		return models.Session{}, false, err
	}

	raw, ok, err := v.store.Get(ctx, enums.StorageKeyUser)
	if err != nil {
		return models.Session{}, false, err
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			return s, true, apperrors.Wrapf(err, "decode persisted user")
		}
	}
	return s, true, nil
}

// Save replaces the whole persisted session. An empty refresh token erases a
// previously stored one.
func (v *Vault) Save(ctx context.Context, s models.Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return apperrors.Wrapf(err, "encode user")
	}

	batch := storage.Batch{Set: map[string]string{
		enums.StorageKeyAccessToken: s.AccessToken,
		enums.StorageKeyUser:        string(user),
	}}
	if s.RefreshToken != "" {
		batch.Set[enums.StorageKeyRefreshToken] = s.RefreshToken
	} else {
		batch.Delete = []string{enums.StorageKeyRefreshToken}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Apply(ctx, batch)
}

// SetAccessToken stores a refreshed access token. refreshToken is written
// only when the server rotated it.
func (v *Vault) SetAccessToken(ctx context.Context, token, refreshToken string) error {
	batch := storage.Batch{Set: map[string]string{enums.StorageKeyAccessToken: token}}
	if refreshToken != "" {
		batch.Set[enums.StorageKeyRefreshToken] = refreshToken
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Apply(ctx, batch)
}

func (v *Vault) SetUser(ctx context.Context, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrapf(err, "encode user")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return storage.Set(ctx, v.store, enums.StorageKeyUser, string(raw))
}

// ClearSession erases the session keys. A remembered redirect target
// survives, so an OAuth round trip can still consume it.
func (v *Vault) ClearSession(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Apply(ctx, storage.Batch{Delete: enums.SessionStorageKeys})
}

// Clear erases the session keys and any remembered redirect target.
func (v *Vault) Clear(ctx context.Context) error {
	keys := append(append([]string(nil), enums.SessionStorageKeys...), enums.StorageKeyLoginRedirect)

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Apply(ctx, storage.Batch{Delete: keys})
}

func (v *Vault) RememberRedirect(ctx context.Context, target string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return storage.Set(ctx, v.store, enums.StorageKeyLoginRedirect, target)
}

// TakeRedirect returns the remembered redirect target and erases it, so a
// target is handed out at most once.
func (v *Vault) TakeRedirect(ctx context.Context) (string, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	target, ok, err := v.store.Get(ctx, enums.StorageKeyLoginRedirect)
	if err != nil || !ok {
		return "", false, err
	}
	if err := storage.Delete(ctx, v.store, enums.StorageKeyLoginRedirect); err != nil {
		return "", false, err
	}
	return target, target != "", nil
}
