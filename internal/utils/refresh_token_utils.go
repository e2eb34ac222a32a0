package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HashRefreshToken generates a SHA256 hash of the secret part of a refresh token.
func HashRefreshToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a raw refresh secret with its stored hash in constant time.
func CompareRefreshTokenHash(secret string, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(secret)), []byte(storedHash)) == 1
}

// ComposeRefreshToken builds the "<userID>.<secret>" token handed to clients.
func ComposeRefreshToken(userID, secret string) string {
	return userID + "." + secret
}

// SplitRefreshToken reverses ComposeRefreshToken.
func SplitRefreshToken(token string) (userID, secret string, ok bool) {
	userID, secret, ok = strings.Cut(token, ".")
	if !ok || userID == "" || secret == "" {
		return "", "", false
	}
	return userID, secret, true
}
