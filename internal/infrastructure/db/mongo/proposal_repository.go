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

const collectionProposals = "proposals"

type ProposalRepository struct {
	col *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{col: db.Collection(collectionProposals)}
}

type mongoProposal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ClientID    string             `bson:"client_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	OwnerID     string             `bson:"owner_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newMongoProposal(p *domain.Proposal) mongoProposal {
	return mongoProposal{
		ClientID:    p.ClientID,
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (mp *mongoProposal) toDomain() *domain.Proposal {
	return &domain.Proposal{
		ID:          mp.ID.Hex(),
		ClientID:    mp.ClientID,
		Title:       mp.Title,
		Description: mp.Description,
		OwnerID:     mp.OwnerID,
		CreatedAt:   mp.CreatedAt.UTC(),
		UpdatedAt:   mp.UpdatedAt.UTC(),
	}
}

func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, newMongoProposal(p))
	if err != nil {
		return fmt.Errorf("insert proposal: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *ProposalRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Proposal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProposalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProposal
	if err := r.col.FindOne(ctx, ownedFilter(oid, ownerID)).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	return mp.toDomain(), nil
}

// List returns the owner's proposals, newest first.
func (r *ProposalRepository) List(ctx context.Context, ownerID string) ([]*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find proposals: %w", err)
	}

	var docs []mongoProposal
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode proposals: %w", err)
	}

	out := make([]*domain.Proposal, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *ProposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrProposalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, ownedFilter(oid, p.OwnerID), newMongoProposal(p))
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepository) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProposalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownedFilter(oid, ownerID))
	if err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the proposals collection.
func (r *ProposalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("proposals indexes: %w", err)
	}
	return nil
}
