package repository

import (
	"context"
	"time"

	"taskhub/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ITaskRepository defines task persistence. Soft-deleted documents are
// excluded from every method here; a deleted task behaves as if it does
// not exist. Lookups return (nil, nil) when no document matches.
type ITaskRepository interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Task, error)
	List(ctx context.Context, q model.TaskQuery) ([]*model.Task, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*model.Task, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// TaskRepository implements task persistence on MongoDB
type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) ITaskRepository {
	return &TaskRepository{collection: db.Collection("tasks")}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Task, error) {
	var task *model.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// List returns one page of visible tasks plus the total match count.
// The visibility scope is part of the query filter so restricted tasks
// never influence results or pagination metadata.
func (r *TaskRepository) List(ctx context.Context, q model.TaskQuery) ([]*model.Task, int64, error) {
	filter := bson.M{"isDeleted": false}
	if q.Viewer != primitive.NilObjectID {
		filter["$or"] = bson.A{
			bson.M{"createdBy": q.Viewer},
			bson.M{"assignedTo": q.Viewer},
		}
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Priority != "" {
		filter["priority"] = q.Priority
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)
	var tasks []*model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update applies a partial $set to a live task and returns the updated
// document, or (nil, nil) when the task is missing or soft-deleted.
func (r *TaskRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*model.Task, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task *model.Task
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "isDeleted": false},
		bson.M{"$set": set},
		opts,
	).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// SoftDelete flips the deletion flag. It reports false when the task is
// missing or already deleted, so a repeat delete surfaces as not found.
func (r *TaskRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "isDeleted": false},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
