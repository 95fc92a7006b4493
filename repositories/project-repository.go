package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"project-manager/backend/models"
)

// ProjectRepository is the document access surface for the projects
// collection.
type ProjectRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	Find(ctx context.Context, filter bson.M) ([]models.Project, error)
	Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	RemoveByID(ctx context.Context, id primitive.ObjectID) error
}

type MongoProjectRepository struct {
	collection *mongo.Collection
}

func NewMongoProjectRepository(collection *mongo.Collection) *MongoProjectRepository {
	return &MongoProjectRepository{collection: collection}
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *MongoProjectRepository) Find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *MongoProjectRepository) Insert(ctx context.Context, project *models.Project) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// UpdateByID applies a partial $set to the document. The matched count
// distinguishes a missing document from a no-op update.
func (r *MongoProjectRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProjectRepository) RemoveByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
