package catalog

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSubjectNotFound is returned when a delete matches no document.
var ErrSubjectNotFound = errors.New("subject not found")

type SubjectRepository struct {
	collection *mongo.Collection
}

func NewSubjectRepository(db *mongo.Database) *SubjectRepository {
	return &SubjectRepository{collection: db.Collection("subjects")}
}

func (r *SubjectRepository) FindAll(ctx context.Context) ([]*Subject, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	subjects := []*Subject{}
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *SubjectRepository) FindByTriple(ctx context.Context, department string, semester int, name string) (*Subject, error) {
	filter := bson.M{"department": department, "semester": semester, "name": name}
	var subject Subject
	err := r.collection.FindOne(ctx, filter).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject *Subject) error {
	_, err := r.collection.InsertOne(ctx, subject)
	return err
}

func (r *SubjectRepository) Delete(ctx context.Context, department string, semester int, name string) error {
	filter := bson.M{"department": department, "semester": semester, "name": name}
	res, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

type SettingsRepository struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{collection: db.Collection("settings")}
}

// Upsert keeps the settings collection at one document per key.
func (r *SettingsRepository) Upsert(ctx context.Context, key string, value interface{}) error {
	filter := bson.M{"key": key}
	update := bson.M{"$set": bson.M{"key": key, "value": value}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *SettingsRepository) Find(ctx context.Context, key string) (*Setting, error) {
	var setting Setting
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&setting)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// FindDeadline reads the preference deadline as a time value. The second
// return reports whether a deadline has been set at all.
func (r *SettingsRepository) FindDeadline(ctx context.Context) (time.Time, bool, error) {
	var doc struct {
		Value time.Time `bson:"value"`
	}
	err := r.collection.FindOne(ctx, bson.M{"key": PreferenceDeadlineKey}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return doc.Value, true, nil
}
