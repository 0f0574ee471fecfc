package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

const collectionRevokedTokens = "revoked_tokens"

// Denylist persists revoked refresh token identifiers. Entries expire
// through a TTL index once the token itself would have expired.
type Denylist struct {
	col *mongo.Collection
}

func NewDenylist(db *mongo.Database) *Denylist {
	return &Denylist{col: db.Collection(collectionRevokedTokens)}
}

type mongoRevokedToken struct {
	JTI       string    `bson:"jti"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	RevokedAt time.Time `bson:"revoked_at"`
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := d.col.CountDocuments(ctx, bson.M{"jti": jti}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

// Revoke inserts the token; the unique index on jti turns a second
// revocation into domain.ErrInvalidToken.
func (d *Denylist) Revoke(ctx context.Context, token domain.RevokedToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := d.col.InsertOne(ctx, mongoRevokedToken{
		JTI:       token.JTI,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		RevokedAt: token.RevokedAt,
	})
	return revokeError(err)
}

// revokeError maps an insert failure on the unique jti index to
// domain.ErrInvalidToken, so a racing second revocation loses.
func revokeError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrInvalidToken
	}
	return fmt.Errorf("denylist insert: %w", err)
}

func (d *Denylist) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "jti", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}

	if _, err := d.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("revoked tokens indexes: %w", err)
	}
	return nil
}
