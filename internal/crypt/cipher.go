// Package crypt implements the symmetric codec used by the document store.
//
// The scheme is AES-256-CBC with PKCS#7 padding and a fresh random IV per
// encryption. There is no authentication tag: a tampered ciphertext is
// indistinguishable from one decrypted with the wrong key, and both surface
// as ErrDecryption. Callers that need tamper evidence must layer it above
// this package.
package crypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// IVSize is the size in bytes of the initialization vector prepended to
// every stored ciphertext.
const IVSize = aes.BlockSize

// KeySize is the required key length (AES-256).
const KeySize = 32

// ErrDecryption indicates the ciphertext could not be decrypted: wrong key,
// truncated or unaligned buffer, or invalid padding. Corruption and a wrong
// key are not distinguishable.
var ErrDecryption = errors.New("decryption failed")

// Encrypt encrypts plaintext under key, generating a fresh random IV.
// The IV is never reused across calls.
func Encrypt(plaintext, key []byte) (iv, ciphertext []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("encrypt: %w", err)
	}

	iv = make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, fmt.Errorf("encrypt: generate iv: %w", err)
	}

	padded := pad(plaintext, aes.BlockSize)
	ciphertext = make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return iv, ciphertext, nil
}

// Decrypt decrypts ciphertext under key and iv. Returns ErrDecryption when
// the buffer is empty, not block-aligned, or the padding does not verify
// after decryption.
func Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("decrypt: iv is %d bytes, want %d: %w", len(iv), IVSize, ErrDecryption)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("decrypt: ciphertext length %d not a multiple of block size: %w", len(ciphertext), ErrDecryption)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return unpadded, nil
}

// pad appends PKCS#7 padding up to the next multiple of blockSize.
// A full padding block is appended when the input is already aligned.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad strips and validates PKCS#7 padding.
func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecryption
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, ErrDecryption
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrDecryption
		}
	}
	return data[:len(data)-n], nil
}
