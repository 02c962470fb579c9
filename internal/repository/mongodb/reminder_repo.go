package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notekeeper/backend/internal/database"
	"notekeeper/backend/internal/errs"
	"notekeeper/backend/internal/models"
	"notekeeper/backend/internal/repository"
)

type ReminderRepo struct {
	coll *mongo.Collection
}

var _ repository.ReminderRepository = (*ReminderRepo)(nil)

func NewReminderRepo(db *mongo.Database) *ReminderRepo {
	return &ReminderRepo{coll: db.Collection(database.RemindersCollection)}
}

func (r *ReminderRepo) List(ctx context.Context, userID primitive.ObjectID) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	return r.find(ctx, "list reminders", bson.M{"userId": userID}, opts)
}

func (r *ReminderRepo) Create(ctx context.Context, reminder *models.Reminder) error {
	if reminder.ID.IsZero() {
		reminder.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, reminder)
	return translate("insert reminder", err)
}

func (r *ReminderRepo) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Reminder, error) {
	var rem models.Reminder
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&rem); err != nil {
		return nil, translate("get reminder", err)
	}
	return &rem, nil
}

func (r *ReminderRepo) Update(ctx context.Context, userID, id primitive.ObjectID, patch models.ResolvedReminderPatch) (*models.Reminder, error) {
	if patch.Empty() {
		return r.Get(ctx, userID, id)
	}
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Message != nil {
		set["message"] = *patch.Message
	}
	if patch.DateTime != nil {
		set["dateTime"] = *patch.DateTime
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rem models.Reminder
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&rem)
	if err != nil {
		return nil, translate("update reminder", err)
	}
	return &rem, nil
}

func (r *ReminderRepo) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return translate("delete reminder", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *ReminderRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, translate("delete reminders by user", err)
	}
	return res.DeletedCount, nil
}

func (r *ReminderRepo) Search(ctx context.Context, userID primitive.ObjectID, query string, limit int64) ([]models.Reminder, error) {
	filter := bson.M{
		"userId": userID,
		"$or":    containsFold(query, "title", "message"),
	}
	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}}).SetLimit(limit)
	return r.find(ctx, "search reminders", filter, opts)
}

func (r *ReminderRepo) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]models.Reminder, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(op, err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, translate(op, err)
	}
	if reminders == nil {
		reminders = make([]models.Reminder, 0)
	}
	return reminders, nil
}
