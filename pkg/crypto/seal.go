package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// deriveKey reduz a secret key de configuração aos 32 bytes exigidos pelo
// secretbox.
func deriveKey(secretKey string) [32]byte {
	return sha256.Sum256([]byte(secretKey))
}

// Seal cifra o texto com NaCl secretbox e devolve nonce+ciphertext em
// base64. É o formato da coluna sealed_token de ad_accounts.
func Seal(plaintext, secretKey string) (string, error) {
	key := deriveKey(secretKey)

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("erro ao gerar nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &key)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decifra um valor produzido por Seal.
func Open(sealed, secretKey string) (string, error) {
	key := deriveKey(secretKey)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("erro ao decodificar base64: %w", err)
	}

	if len(raw) < nonceSize {
		return "", fmt.Errorf("valor selado curto demais: %d bytes", len(raw))
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plaintext, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &key)
	if !ok {
		return "", fmt.Errorf("não foi possível abrir o valor selado")
	}

	return string(plaintext), nil
}
