package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Parámetros Argon2id: equilibrio entre seguridad y un login rápido.
const (
	Argon2Time    = 1
	Argon2Memory  = 32 * 1024 // 32 MB
	Argon2Threads = 4
	Argon2KeyLen  = 32
	Argon2SaltLen = 16
)

// HashPassword genera un hash Argon2id de la contraseña.
func HashPassword(password string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	// Formato: $argon2id$v=19$m=32768,t=1,p=4$salt$hash
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Argon2Memory, Argon2Time, Argon2Threads, b64Salt, b64Hash)

	return encoded, nil
}

// VerifyPassword compara la contraseña contra el hash almacenado.
// Los documentos anteriores a la migración guardaban la contraseña en
// texto plano: esos se comparan directo y el llamador debe rehashear
// en cuanto el login sea exitoso (ver auth handler).
func VerifyPassword(password, stored string) (bool, error) {
	if !IsArgon2Hash(stored) {
		// Contraseña legada en texto plano.
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1, nil
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false, errors.New("hash inválido")
	}

	var version int
	var memory, time uint32
	var threads uint8

	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, err
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}

	otherHash := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, otherHash) == 1, nil
}

// IsArgon2Hash indica si el valor almacenado ya está migrado.
func IsArgon2Hash(stored string) bool {
	return strings.HasPrefix(stored, "$argon2id$")
}
