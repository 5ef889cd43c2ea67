package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type documentDoc struct {
	Path      string `bson:"path"`
	Type      string `bson:"type"`
	IV        string `bson:"iv"`
	Extension string `bson:"extension"`
}

// balancesDoc keeps balances as decimal strings so no precision is lost.
type balancesDoc struct {
	ETH         string `bson:"eth"`
	USDCEth     string `bson:"usdc_eth"`
	Matic       string `bson:"matic"`
	USDCPolygon string `bson:"usdc_polygon"`
}

type transactionDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Type      string             `bson:"type"`
	Amount    float64            `bson:"amount"`
	From      string             `bson:"from"`
	To        string             `bson:"to"`
	Timestamp time.Time          `bson:"timestamp"`
	Note      string             `bson:"note,omitempty"`
	Status    string             `bson:"status"`
}

type userDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	WalletAddress string             `bson:"wallet_address"`
	Name          string             `bson:"name,omitempty"`
	UpiID         string             `bson:"upi_id,omitempty"`
	Email         string             `bson:"email,omitempty"`
	Mobile        string             `bson:"mobile,omitempty"`
	ProfilePic    string             `bson:"profile_pic,omitempty"`
	KYCStatus     bool               `bson:"kyc_status"`
	Documents     []documentDoc      `bson:"documents"`
	Balances      balancesDoc        `bson:"balances"`
	Transactions  []transactionDoc   `bson:"transactions"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func newTransactionDoc(tx domain.Transaction) transactionDoc {
	return transactionDoc{
		ID:        primitive.NewObjectID(),
		Type:      tx.Type,
		Amount:    tx.Amount,
		From:      tx.From,
		To:        tx.To,
		Timestamp: tx.Timestamp,
		Note:      tx.Note,
		Status:    string(tx.Status),
	}
}

func (d transactionDoc) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:        d.ID.Hex(),
		Type:      d.Type,
		Amount:    d.Amount,
		From:      d.From,
		To:        d.To,
		Timestamp: d.Timestamp,
		Note:      d.Note,
		Status:    domain.TransactionStatus(d.Status),
	}
}

func (d *userDoc) toDomain() (*domain.User, error) {
	balances, err := d.Balances.toDomain()
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", d.WalletAddress, err)
	}

	docs := make([]domain.Document, 0, len(d.Documents))
	for _, doc := range d.Documents {
		docs = append(docs, domain.Document{
			Path:      doc.Path,
			Type:      domain.DocumentType(doc.Type),
			IV:        doc.IV,
			Extension: doc.Extension,
		})
	}

	txs := make([]domain.Transaction, 0, len(d.Transactions))
	for _, tx := range d.Transactions {
		txs = append(txs, tx.toDomain())
	}

	return &domain.User{
		ID:            d.ID.Hex(),
		WalletAddress: d.WalletAddress,
		Name:          d.Name,
		UpiID:         d.UpiID,
		Email:         d.Email,
		Mobile:        d.Mobile,
		ProfilePic:    d.ProfilePic,
		KYCStatus:     d.KYCStatus,
		Documents:     docs,
		Balances:      balances,
		Transactions:  txs,
		CreatedAt:     d.CreatedAt,
	}, nil
}

func newBalancesDoc(b domain.Balances) balancesDoc {
	return balancesDoc{
		ETH:         b.ETH.String(),
		USDCEth:     b.USDCEth.String(),
		Matic:       b.Matic.String(),
		USDCPolygon: b.USDCPolygon.String(),
	}
}

func (d balancesDoc) toDomain() (domain.Balances, error) {
	var b domain.Balances
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{d.ETH, &b.ETH},
		{d.USDCEth, &b.USDCEth},
		{d.Matic, &b.Matic},
		{d.USDCPolygon, &b.USDCPolygon},
	} {
		if f.raw == "" {
			*f.dst = decimal.Zero
			continue
		}
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return domain.Balances{}, fmt.Errorf("parse balance %q: %w", f.raw, err)
		}
		*f.dst = v
	}
	return b, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		WalletAddress: domain.NormalizeAddress(u.WalletAddress),
		Name:          u.Name,
		UpiID:         u.UpiID,
		Email:         u.Email,
		Mobile:        u.Mobile,
		KYCStatus:     u.KYCStatus,
		Documents:     []documentDoc{},
		Balances:      newBalancesDoc(u.Balances),
		Transactions:  []transactionDoc{},
		CreatedAt:     u.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain()
}

// FindByWallet matches the normalized address exactly.
func (r *UserRepository) FindByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := r.col.FindOne(ctx, bson.M{"wallet_address": domain.NormalizeAddress(wallet)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain()
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for i := range docs {
		u, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, wallet string, upd ports.UserProfileUpdate) (*domain.User, error) {
	set := bson.M{}
	for key, v := range map[string]string{
		"name":        upd.Name,
		"email":       upd.Email,
		"upi_id":      upd.UpiID,
		"mobile":      upd.Mobile,
		"profile_pic": upd.ProfilePic,
	} {
		if v != "" {
			set[key] = v
		}
	}
	if len(set) == 0 {
		return r.FindByWallet(ctx, wallet)
	}
	return r.findAndUpdate(ctx, wallet, bson.M{"$set": set})
}

func (r *UserRepository) SetProfilePic(ctx context.Context, wallet, path string) (*domain.User, error) {
	return r.findAndUpdate(ctx, wallet, bson.M{"$set": bson.M{"profile_pic": path}})
}

func (r *UserRepository) AddDocument(ctx context.Context, wallet string, d domain.Document) (*domain.User, error) {
	return r.findAndUpdate(ctx, wallet, bson.M{"$push": bson.M{"documents": documentDoc{
		Path:      d.Path,
		Type:      string(d.Type),
		IV:        d.IV,
		Extension: d.Extension,
	}}})
}

// SetKYCStatus never upserts: an unknown wallet yields ErrUserNotFound.
func (r *UserRepository) SetKYCStatus(ctx context.Context, wallet string, status bool) (*domain.User, error) {
	return r.findAndUpdate(ctx, wallet, bson.M{"$set": bson.M{"kyc_status": status}})
}

func (r *UserRepository) findAndUpdate(ctx context.Context, wallet string, update bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"wallet_address": domain.NormalizeAddress(wallet)},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain()
}

func (r *UserRepository) Delete(ctx context.Context, wallet string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"wallet_address": domain.NormalizeAddress(wallet)})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AppendTransaction pushes tx onto the user's log and returns it with its new id.
func (r *UserRepository) AppendTransaction(ctx context.Context, wallet string, tx domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newTransactionDoc(tx)
	res, err := r.col.UpdateOne(ctx,
		bson.M{"wallet_address": domain.NormalizeAddress(wallet)},
		bson.M{"$push": bson.M{"transactions": doc}},
	)
	if err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	out := doc.toDomain()
	return &out, nil
}

func (r *UserRepository) UpdateTransactionStatus(ctx context.Context, wallet, txID string, status domain.TransactionStatus) (*domain.Transaction, error) {
	oid, err := objectID(txID, domain.ErrTransactionNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"wallet_address": domain.NormalizeAddress(wallet), "transactions._id": oid},
		bson.M{"$set": bson.M{"transactions.$.status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction status: %w", err)
	}

	for _, tx := range doc.Transactions {
		if tx.ID == oid {
			out := tx.toDomain()
			return &out, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// CountAllTransactions groups every user's transactions by status.
func (r *UserRepository) CountAllTransactions(ctx context.Context) (domain.TransactionCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$transactions"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$transactions.status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.TransactionCounts{}, fmt.Errorf("count transactions: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return domain.TransactionCounts{}, fmt.Errorf("decode transaction counts: %w", err)
	}

	var counts domain.TransactionCounts
	for _, row := range rows {
		counts.Add(domain.TransactionStatus(row.Status), row.Count)
	}
	return counts, nil
}

// EnsureIndexes creates the unique wallet index and a sparse unique email
// index, since email is optional for users.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "wallet_address", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
