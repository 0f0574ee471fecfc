package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

func TestRevokeError_DuplicateJTI(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error collection: proposals.revoked_tokens index: jti_1"}},
	}

	if err := revokeError(dup); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRevokeError_Passthrough(t *testing.T) {
	if err := revokeError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}

	cause := errors.New("connection reset")
	err := revokeError(cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidToken) {
		t.Error("transport failure must not read as a reused token")
	}
}
