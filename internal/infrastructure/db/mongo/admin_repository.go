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

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

const collectionAdmins = "admins"

type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection(collectionAdmins)}
}

type adminDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	WalletAddress string             `bson:"wallet_address"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	UpiID         string             `bson:"upi_id"`
	ProfilePic    string             `bson:"profile_pic,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d *adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:            d.ID.Hex(),
		WalletAddress: d.WalletAddress,
		Name:          d.Name,
		Email:         d.Email,
		UpiID:         d.UpiID,
		ProfilePic:    d.ProfilePic,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := adminDoc{
		WalletAddress: domain.NormalizeAddress(a.WalletAddress),
		Name:          a.Name,
		Email:         a.Email,
		UpiID:         a.UpiID,
		ProfilePic:    a.ProfilePic,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// FindByWallet matches the normalized address exactly.
func (r *AdminRepository) FindByWallet(ctx context.Context, wallet string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	err := r.col.FindOne(ctx, bson.M{"wallet_address": domain.NormalizeAddress(wallet)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer cur.Close(ctx)

	var docs []adminDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode admins: %w", err)
	}

	admins := make([]domain.Admin, 0, len(docs))
	for i := range docs {
		admins = append(admins, *docs[i].toDomain())
	}
	return admins, nil
}

func (r *AdminRepository) Update(ctx context.Context, wallet string, upd ports.AdminUpdate) (*domain.Admin, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != "" {
		set["name"] = upd.Name
	}
	if upd.Email != "" {
		set["email"] = upd.Email
	}
	if upd.UpiID != "" {
		set["upi_id"] = upd.UpiID
	}
	return r.findAndSet(ctx, wallet, set)
}

func (r *AdminRepository) SetProfilePic(ctx context.Context, wallet, path string) (*domain.Admin, error) {
	return r.findAndSet(ctx, wallet, bson.M{"profile_pic": path, "updated_at": time.Now().UTC()})
}

func (r *AdminRepository) findAndSet(ctx context.Context, wallet string, set bson.M) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc adminDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"wallet_address": domain.NormalizeAddress(wallet)},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrAdminNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("update admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) Delete(ctx context.Context, wallet string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"wallet_address": domain.NormalizeAddress(wallet)})
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

// EnsureIndexes creates the unique wallet and email indexes on admins.
func (r *AdminRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "wallet_address", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
