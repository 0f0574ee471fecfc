package redis

import (
	"errors"
	"testing"
	"time"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

func TestRevokeResult(t *testing.T) {
	cause := errors.New("i/o timeout")

	tests := []struct {
		name    string
		set     bool
		err     error
		wantErr error
	}{
		{name: "first revocation", set: true},
		{name: "already revoked", set: false, wantErr: domain.ErrInvalidToken},
		{name: "redis failure", set: false, err: cause, wantErr: cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := revokeResult(tt.set, tt.err)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRevocationTTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if got := revocationTTL(now.Add(time.Hour), now); got != time.Hour {
		t.Errorf("expected 1h, got %s", got)
	}
	if got := revocationTTL(now.Add(-time.Minute), now); got != minTTL {
		t.Errorf("expired token: expected %s, got %s", minTTL, got)
	}
}
