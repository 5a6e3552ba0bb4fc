// Package managetoken генерация и хеширование manage-токенов
//
// Manage-токен - секрет, который клиент получает один раз при создании
// бронирования и использует для просмотра/отмены без аккаунта.
// В БД хранится только SHA-256 хеш, сырой токен никогда не сохраняется.
package managetoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 32

// Generate создает новую пару (сырой токен, хеш)
// Сырой токен отдается клиенту (в ссылке и письме), хеш сохраняется в БД
func Generate() (raw string, hash string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("managetoken: generate random bytes: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, Hash(raw), nil
}

// Hash возвращает SHA-256 хеш сырого токена для поиска в БД
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
