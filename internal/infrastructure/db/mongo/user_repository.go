package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	UID          string     `bson:"_id"`
	Email        string     `bson:"email"`
	DisplayName  string     `bson:"displayName,omitempty"`
	PasswordHash string     `bson:"passwordHash"`
	Role         string     `bson:"role"`
	Platform     string     `bson:"platform,omitempty"`
	LastSeen     *time.Time `bson:"lastSeen,omitempty"`
	LastLoginAt  *time.Time `bson:"lastLoginAt,omitempty"`
	DeviceInfo   string     `bson:"deviceInfo,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt"`
}

func (d userDoc) toDomain() *domain.UserAccount {
	return &domain.UserAccount{
		UID:          d.UID,
		Email:        d.Email,
		DisplayName:  d.DisplayName,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		Platform:     d.Platform,
		LastSeen:     d.LastSeen,
		LastLoginAt:  d.LastLoginAt,
		DeviceInfo:   d.DeviceInfo,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.UserAccount) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		UID:          user.UID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Platform:     user.Platform,
		DeviceInfo:   user.DeviceInfo,
		CreatedAt:    user.CreatedAt.UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*domain.UserAccount, error) {
	return r.findOne(ctx, bson.M{"_id": uid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.UserAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every account ordered by email.
func (r *UserRepository) List(ctx context.Context) ([]domain.UserAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	out := make([]domain.UserAccount, len(docs))
	for i, d := range docs {
		out[i] = *d.toDomain()
	}
	return out, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, uid, role string) error {
	return r.set(ctx, uid, bson.M{"role": role})
}

func (r *UserRepository) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	return r.set(ctx, uid, bson.M{"displayName": displayName})
}

func (r *UserRepository) TouchLogin(ctx context.Context, uid string, at time.Time) error {
	return r.set(ctx, uid, bson.M{"lastLoginAt": at.UTC()})
}

func (r *UserRepository) set(ctx context.Context, uid string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes makes email unique so Create can report ErrUserExists.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
