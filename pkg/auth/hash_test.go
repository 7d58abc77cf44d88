package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hashService := &HashService{}

	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{
			name:        "Valid password",
			password:    "password123",
			expectError: false,
		},
		{
			name:        "Empty password",
			password:    "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hashService.HashPassword(tt.password)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, hash)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, hash)
				assert.NotEqual(t, tt.password, hash)
			}
		})
	}
}

func TestComparePassword(t *testing.T) {
	hashService := &HashService{}
	hash, err := hashService.HashPassword("password123")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		expected bool
	}{
		{
			name:     "Matching password",
			hash:     hash,
			password: "password123",
			expected: true,
		},
		{
			name:     "Wrong password",
			hash:     hash,
			password: "wrongpassword",
			expected: false,
		},
		{
			name:     "Not a bcrypt hash",
			hash:     "plaintext",
			password: "password123",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, hashService.ComparePassword(tt.hash, tt.password))
		})
	}
}
