package enums

const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
)

// Persisted client storage keys.
const (
	StorageKeyAccessToken   = "token"
	StorageKeyRefreshToken  = "refreshToken"
	StorageKeyUser          = "user"
	StorageKeyLoginRedirect = "loginRedirect"
)

// SessionStorageKeys are erased whenever a session ends.
var SessionStorageKeys = []string{
	StorageKeyAccessToken,
	StorageKeyRefreshToken,
	StorageKeyUser,
}
