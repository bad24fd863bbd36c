package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/scan-attendance-go/internal/domain/wallet"
	"github.com/cmlabs-hris/scan-attendance-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WalletCollection holds one document per employee.
const WalletCollection = "attendancewallets"

type scanEntryDocument struct {
	Timestamp    time.Time `bson:"timestamp"`
	ScanType     string    `bson:"scanType"`
	DepartmentID string    `bson:"departmentId"`
	ScannedBy    string    `bson:"scannedBy"`
	AutoClosed   bool      `bson:"autoClosed"`
}

type walletDocument struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	EmployeeID string              `bson:"employeeId"`
	Entries    []scanEntryDocument `bson:"entries"`
	Version    int64               `bson:"version"`
	CreatedAt  time.Time           `bson:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt"`
}

func toEntryDocuments(entries []wallet.ScanEntry) []scanEntryDocument {
	docs := make([]scanEntryDocument, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, scanEntryDocument{
			Timestamp:    e.Timestamp.UTC(),
			ScanType:     string(e.ScanType),
			DepartmentID: e.DepartmentID,
			ScannedBy:    e.ScannedBy,
			AutoClosed:   e.AutoClosed,
		})
	}
	return docs
}

func (d walletDocument) toDomain() *wallet.AttendanceWallet {
	entries := make([]wallet.ScanEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		entries = append(entries, wallet.ScanEntry{
			Timestamp:    e.Timestamp,
			ScanType:     wallet.ScanType(e.ScanType),
			DepartmentID: e.DepartmentID,
			ScannedBy:    e.ScannedBy,
			AutoClosed:   e.AutoClosed,
		})
	}
	return &wallet.AttendanceWallet{
		ID:         d.ID.Hex(),
		EmployeeID: d.EmployeeID,
		Entries:    entries,
		Version:    d.Version,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type walletRepositoryImpl struct {
	collection *mongo.Collection
	strict     bool
}

// NewWalletRepository stores wallets as documents with an embedded entries array.
func NewWalletRepository(db *database.MongoDB, strict bool) wallet.WalletRepository {
	return &walletRepositoryImpl{
		collection: db.Database.Collection(WalletCollection),
		strict:     strict,
	}
}

// EnsureIndexes creates the unique employee index and the operator lookup index.
func EnsureIndexes(ctx context.Context, db *database.MongoDB) error {
	_, err := db.Database.Collection(WalletCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employeeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "entries.scannedBy", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create wallet indexes: %w", err)
	}
	return nil
}

// FindByEmployee implements wallet.WalletRepository.
func (r *walletRepositoryImpl) FindByEmployee(ctx context.Context, employeeID string) (*wallet.AttendanceWallet, error) {
	var doc walletDocument
	err := r.collection.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, wallet.ErrWalletNotFound
		}
		return nil, fmt.Errorf("find wallet of employee %s: %w", employeeID, err)
	}
	return doc.toDomain(), nil
}

// Save implements wallet.WalletRepository.
func (r *walletRepositoryImpl) Save(ctx context.Context, w *wallet.AttendanceWallet) error {
	if w.IsNew() {
		return r.insert(ctx, w)
	}
	return r.update(ctx, w)
}

func (r *walletRepositoryImpl) insert(ctx context.Context, w *wallet.AttendanceWallet) error {
	now := time.Now().UTC()
	doc := walletDocument{
		ID:         primitive.NewObjectID(),
		EmployeeID: w.EmployeeID,
		Entries:    toEntryDocuments(w.Entries),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err == nil {
		w.ID, w.Version, w.CreatedAt, w.UpdatedAt = doc.ID.Hex(), doc.Version, doc.CreatedAt, doc.UpdatedAt
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert wallet of employee %s: %w", w.EmployeeID, err)
	}
	if r.strict {
		return wallet.ErrConcurrentScan
	}

	// Another first scan won the insert; overwrite it.
	return r.replace(ctx, w, bson.M{"employeeId": w.EmployeeID})
}

func (r *walletRepositoryImpl) update(ctx context.Context, w *wallet.AttendanceWallet) error {
	filter := bson.M{"employeeId": w.EmployeeID}
	if r.strict {
		filter["version"] = w.Version
	}
	return r.replace(ctx, w, filter)
}

func (r *walletRepositoryImpl) replace(ctx context.Context, w *wallet.AttendanceWallet, filter bson.M) error {
	update := bson.M{
		"$set": bson.M{
			"entries":   toEntryDocuments(w.Entries),
			"updatedAt": time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc walletDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if r.strict {
				return wallet.ErrConcurrentScan
			}
			return wallet.ErrWalletNotFound
		}
		return fmt.Errorf("update wallet of employee %s: %w", w.EmployeeID, err)
	}

	w.ID, w.Version, w.CreatedAt, w.UpdatedAt = doc.ID.Hex(), doc.Version, doc.CreatedAt, doc.UpdatedAt
	return nil
}

// ListScannedBy implements wallet.WalletRepository.
func (r *walletRepositoryImpl) ListScannedBy(ctx context.Context, operatorID string) ([]*wallet.AttendanceWallet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"entries.scannedBy": operatorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list wallets scanned by %s: %w", operatorID, err)
	}
	defer cursor.Close(ctx)

	wallets := []*wallet.AttendanceWallet{}
	for cursor.Next(ctx) {
		var doc walletDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode wallet: %w", err)
		}
		wallets = append(wallets, doc.toDomain())
	}

	return wallets, cursor.Err()
}
