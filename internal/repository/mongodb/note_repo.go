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

type NoteRepo struct {
	coll *mongo.Collection
}

var _ repository.NoteRepository = (*NoteRepo)(nil)

func NewNoteRepo(db *mongo.Database) *NoteRepo {
	return &NoteRepo{coll: db.Collection(database.NotesCollection)}
}

func (r *NoteRepo) List(ctx context.Context, userID primitive.ObjectID) ([]models.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, "list notes", bson.M{"userId": userID}, opts)
}

func (r *NoteRepo) Create(ctx context.Context, note *models.Note) error {
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, note)
	return translate("insert note", err)
}

func (r *NoteRepo) Update(ctx context.Context, userID, id primitive.ObjectID, patch models.NotePatch, now time.Time) (*models.Note, error) {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.AudioURL != nil {
		set["audioUrl"] = *patch.AudioURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var n models.Note
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&n)
	if err != nil {
		return nil, translate("update note", err)
	}
	return &n, nil
}

func (r *NoteRepo) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return translate("delete note", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *NoteRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, translate("delete notes by user", err)
	}
	return res.DeletedCount, nil
}

func (r *NoteRepo) Search(ctx context.Context, userID primitive.ObjectID, query string, limit int64) ([]models.Note, error) {
	filter := bson.M{
		"userId": userID,
		"$or":    containsFold(query, "title", "description"),
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return r.find(ctx, "search notes", filter, opts)
}

func (r *NoteRepo) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]models.Note, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(op, err)
	}
	defer cursor.Close(ctx)

	var notes []models.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, translate(op, err)
	}
	if notes == nil {
		notes = make([]models.Note, 0)
	}
	return notes, nil
}
