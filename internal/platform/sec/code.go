// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateConfirmationCode produces a random code of the given length drawn
// from the given alphabet, using the OS cryptographic random source.
//
// The code is mailed to the user and later compared verbatim during the
// token exchange, so it stays within the alphabet the mail template and
// input validation agree on (letters and digits by default).
func GenerateConfirmationCode(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("sec: confirmation code length must be positive, got %d", length)
	}
	if alphabet == "" {
		return "", fmt.Errorf("sec: confirmation code alphabet must not be empty")
	}

	alphabetSize := big.NewInt(int64(len(alphabet)))
	code := make([]byte, length)

	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("sec: failed to read random source: %w", err)
		}
		code[i] = alphabet[n.Int64()]
	}

	return string(code), nil
}
