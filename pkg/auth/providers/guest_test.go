package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestAuthProvider_VerifyToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "plain", token: "alice", want: "alice"},
		{name: "trimmed", token: "  bob ", want: "bob"},
		{name: "empty", token: "   ", wantErr: true},
		{name: "too long", token: strings.Repeat("x", MaxGuestNameLength+1), wantErr: true},
	}
	p := NewGuestAuthProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := p.VerifyToken(context.Background(), tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, claims.Name)
			assert.True(t, strings.HasPrefix(claims.UID, "guest-"))
		})
	}

	a, err := p.VerifyToken(context.Background(), "same")
	require.NoError(t, err)
	b, err := p.VerifyToken(context.Background(), "same")
	require.NoError(t, err)
	assert.NotEqual(t, a.UID, b.UID)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short", in: " ana ", want: "ana"},
		{name: "cut", in: strings.Repeat("é", MaxGuestNameLength+5), want: strings.Repeat("é", MaxGuestNameLength)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayName(tt.in))
		})
	}
}
