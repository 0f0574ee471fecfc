package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

const (
	collectionUsers = "users"

	indexUserEmail = "email_unique"
	indexUserPhone = "phone_number_unique"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// mongoUser omits unset identifiers entirely so the partial unique indexes
// ignore them.
type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        *string            `bson:"email,omitempty"`
	PhoneNumber  *string            `bson:"phone_number,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	IsActive     bool               `bson:"is_active"`
	IsStaff      bool               `bson:"is_staff"`
	IsSuperuser  bool               `bson:"is_superuser"`
	CreatedAt    time.Time          `bson:"created_at"`
	LastLogin    *time.Time         `bson:"last_login,omitempty"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Name:         mu.Name,
		Email:        mu.Email,
		PhoneNumber:  mu.PhoneNumber,
		PasswordHash: mu.PasswordHash,
		IsActive:     mu.IsActive,
		IsStaff:      mu.IsStaff,
		IsSuperuser:  mu.IsSuperuser,
		CreatedAt:    mu.CreatedAt.UTC(),
		LastLogin:    mu.LastLogin,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Name:         user.Name,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		IsStaff:      user.IsStaff,
		IsSuperuser:  user.IsSuperuser,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateUserError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// duplicateUserError names the colliding field from the violated index.
func duplicateUserError(err error) error {
	if strings.Contains(err.Error(), indexUserPhone) {
		return domain.NewValidationError("phone_number", "A user with that phone number already exists.")
	}
	return domain.NewValidationError("email", "A user with that email already exists.")
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByPhoneNumber(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone_number": phone})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

// List returns every account, most recently created first.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if opts == nil {
		opts = options.Find()
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]*domain.User, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"last_login": at}})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the partial unique indexes on email and phone number.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName(indexUserEmail).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
		{
			Keys: bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().
				SetName(indexUserPhone).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"phone_number": bson.M{"$type": "string"}}),
		},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	return nil
}
