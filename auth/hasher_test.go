package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/omok-go/auth"
)

func TestNewBcryptHasher_CostValidation(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{name: "minimum cost", cost: bcrypt.MinCost, wantErr: false},
		{name: "default cost", cost: 10, wantErr: false},
		{name: "below minimum", cost: bcrypt.MinCost - 1, wantErr: true},
		{name: "above maximum", cost: bcrypt.MaxCost + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := auth.NewBcryptHasher(tt.cost)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestBcryptHasher_HashProducesFreshSalt(t *testing.T) {
	h, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	second, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	// Same password, different salt: the outputs differ but both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("correct horse battery staple", first))
	assert.True(t, h.Verify("correct horse battery staple", second))
}

func TestBcryptHasher_Verify(t *testing.T) {
	h, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("sekret")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{name: "match", plaintext: "sekret", hash: hash, want: true},
		{name: "wrong password", plaintext: "not-sekret", hash: hash, want: false},
		{name: "empty password", plaintext: "", hash: hash, want: false},
		{name: "malformed hash", plaintext: "sekret", hash: "not-a-bcrypt-hash", want: false},
		{name: "empty hash", plaintext: "sekret", hash: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Verify(tt.plaintext, tt.hash))
		})
	}
}
