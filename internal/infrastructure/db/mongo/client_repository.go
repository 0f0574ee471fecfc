package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

const collectionClients = "clients"

type ClientRepository struct {
	col       *mongo.Collection
	proposals *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{
		col:       db.Collection(collectionClients),
		proposals: db.Collection(collectionProposals),
	}
}

type mongoClient struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CompanyName string             `bson:"company_name"`
	Address     *string            `bson:"address,omitempty"`
	PhoneNumber *string            `bson:"phone_number,omitempty"`
	Email       *string            `bson:"email,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newMongoClient(c *domain.Client) mongoClient {
	return mongoClient{
		CompanyName: c.CompanyName,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (mc *mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:          mc.ID.Hex(),
		CompanyName: mc.CompanyName,
		Address:     mc.Address,
		PhoneNumber: mc.PhoneNumber,
		Email:       mc.Email,
		OwnerID:     mc.OwnerID,
		CreatedAt:   mc.CreatedAt.UTC(),
		UpdatedAt:   mc.UpdatedAt.UTC(),
	}
}

// Create inserts a new client document and sets c.ID.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, newMongoClient(c))
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

// FindByID retrieves a client by id.
// When ownerID is non-empty, the query is additionally filtered by owner.
func (r *ClientRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClient
	if err := r.col.FindOne(ctx, ownedFilter(oid, ownerID)).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Client, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Client{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// List returns the owner's clients ordered by company name.
func (r *ClientRepository) List(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *ClientRepository) find(ctx context.Context, filter bson.M) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "company_name", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}

	var docs []mongoClient
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	out := make([]*domain.Client, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// Update replaces the stored document. The owner filter keeps the owner
// immutable: a document whose owner differs is reported as not found.
func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, ownedFilter(oid, c.OwnerID), newMongoClient(c))
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Delete removes the client and its proposals in a single transaction.
// Transactions require a replica set deployment.
func (r *ClientRepository) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.col.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.col.DeleteOne(sc, ownedFilter(oid, ownerID))
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrClientNotFound
		}
		if _, err := r.proposals.DeleteMany(sc, bson.M{"client_id": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return err
		}
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the clients collection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "company_name", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("clients indexes: %w", err)
	}
	return nil
}
