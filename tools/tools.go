package tools

import (
	"crypto/sha512"
	"encoding/hex"
	"math/rand"
	"time"
)

const numbers = "0123456789"
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func EncryptTextSHA512(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}

// EncodeSenha aplica o esquema de senha do sistema:
// SHA512(email + ":" + SHA512(senha)).
func EncodeSenha(email, senha string) string {
	encoded := EncryptTextSHA512(senha)
	return EncryptTextSHA512(email + ":" + encoded)
}

func RandomNumbers(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = numbers[seededRand.Intn(len(numbers))]
	}
	return string(b)
}

func RandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}
