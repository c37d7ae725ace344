package models

// APIKeyPrefixLen is the number of leading key characters stored in clear.
const APIKeyPrefixLen = 8

// APIKey is a configured client key. Only the bcrypt hash of the key is kept;
// Prefix is the first APIKeyPrefixLen characters of the raw key and selects
// the candidates to compare against.
type APIKey struct {
	Prefix  string `json:"key_prefix"`
	KeyHash string `json:"-"`
}
