package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guda/guda-backend/internal/core/domain"
)

const collectionThemes = "themes"

type ThemeRepository struct {
	col *mongo.Collection
}

func NewThemeRepository(db *mongo.Database) *ThemeRepository {
	return &ThemeRepository{col: db.Collection(collectionThemes)}
}

type themeDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	domain.Theme `bson:",inline"`
}

func (d *themeDoc) toDomain() *domain.Theme {
	t := d.Theme
	t.ID = d.ID.Hex()
	return &t
}

func (r *ThemeRepository) Create(ctx context.Context, t *domain.Theme) (*domain.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := themeDoc{Theme: *t}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert theme: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ThemeRepository) List(ctx context.Context) ([]domain.Theme, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []themeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}

	themes := make([]domain.Theme, 0, len(docs))
	for i := range docs {
		themes = append(themes, *docs[i].toDomain())
	}
	return themes, nil
}

func (r *ThemeRepository) FindByID(ctx context.Context, id string) (*domain.Theme, error) {
	oid, err := objectID(id, domain.ErrThemeNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc themeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrThemeNotFound
		}
		return nil, fmt.Errorf("find theme: %w", err)
	}
	return doc.toDomain(), nil
}

// Update sets every non-empty field of patch and leaves the rest untouched.
func (r *ThemeRepository) Update(ctx context.Context, id string, patch *domain.Theme) (*domain.Theme, error) {
	oid, err := objectID(id, domain.ErrThemeNotFound)
	if err != nil {
		return nil, err
	}

	set, err := themePatch(patch)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc themeDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrThemeNotFound
		}
		return nil, fmt.Errorf("update theme: %w", err)
	}
	return doc.toDomain(), nil
}

// themePatch renders patch through the theme's bson mapping and drops the
// empty required fields, which are the only ones not marked omitempty.
func themePatch(patch *domain.Theme) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode theme patch: %w", err)
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode theme patch: %w", err)
	}
	for k, v := range set {
		if s, ok := v.(string); ok && s == "" {
			delete(set, k)
		}
	}
	return set, nil
}

func (r *ThemeRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrThemeNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete theme: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrThemeNotFound
	}
	return nil
}
