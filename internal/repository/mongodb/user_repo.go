package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notekeeper/backend/internal/database"
	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/repository"
)

type UserRepo struct {
	coll *mongo.Collection
}

var _ repository.UserRepository = (*UserRepo)(nil)

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(database.UsersCollection)}
}

func (r *UserRepo) FindBySubject(ctx context.Context, subject string) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"firebaseUid": subject}).Decode(&u); err != nil {
		return nil, translate("find user by subject", err)
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, translate("find user", err)
	}
	return &u, nil
}

// Upsert relies on the unique firebaseUid index: of two racing upserts for
// the same subject one inserts and the other either matches the new document
// or fails with a duplicate key error.
func (r *UserRepo) Upsert(ctx context.Context, id models.Identity, now time.Time) (*models.User, bool, error) {
	newID := primitive.NewObjectID()
	onInsert := bson.M{
		"_id":       newID,
		"settings":  models.DefaultSettings(),
		"createdAt": now,
	}
	if id.Email != "" {
		onInsert["email"] = id.Email
	}
	if id.DisplayName != "" {
		onInsert["displayName"] = id.DisplayName
	}
	if id.PhotoURL != "" {
		onInsert["photoURL"] = id.PhotoURL
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var u models.User
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"firebaseUid": id.Subject},
		bson.M{"$setOnInsert": onInsert},
		opts,
	).Decode(&u)
	if err != nil {
		return nil, false, translate("upsert user", err)
	}
	return &u, u.ID == newID, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, patch models.ProfilePatch) (*models.User, error) {
	set := bson.M{}
	if patch.DisplayName != nil {
		set["displayName"] = *patch.DisplayName
	}
	if patch.PhotoURL != nil {
		set["photoURL"] = *patch.PhotoURL
	}
	return r.findAndSet(ctx, "update profile", id, set)
}

func (r *UserRepo) UpdateSettings(ctx context.Context, id primitive.ObjectID, patch models.SettingsPatch) (*models.User, error) {
	set := bson.M{}
	if patch.Theme != nil {
		set["settings.theme"] = *patch.Theme
	}
	if patch.Notifications != nil {
		set["settings.notifications"] = *patch.Notifications
	}
	if patch.Language != nil {
		set["settings.language"] = *patch.Language
	}
	return r.findAndSet(ctx, "update settings", id, set)
}

func (r *UserRepo) findAndSet(ctx context.Context, op string, id primitive.ObjectID, set bson.M) (*models.User, error) {
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u); err != nil {
		return nil, translate(op, err)
	}
	return &u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate("delete user", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
