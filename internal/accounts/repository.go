package accounts

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateStudent is returned when an insert trips the unique index on
// email or regNo.
var ErrDuplicateStudent = errors.New("student already exists")

type AdminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{collection: db.Collection("admins")}
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	var admin Admin
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *Admin) error {
	_, err := r.collection.InsertOne(ctx, admin)
	return err
}

type FacultyRepository struct {
	collection *mongo.Collection
}

func NewFacultyRepository(db *mongo.Database) *FacultyRepository {
	return &FacultyRepository{collection: db.Collection("faculty")}
}

func (r *FacultyRepository) FindByUsername(ctx context.Context, username string) (*Faculty, error) {
	var faculty Faculty
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&faculty)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &faculty, nil
}

func (r *FacultyRepository) Create(ctx context.Context, faculty *Faculty) error {
	_, err := r.collection.InsertOne(ctx, faculty)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("username already exists")
		}
		return err
	}
	return nil
}

func (r *FacultyRepository) FindByApproved(ctx context.Context, approved bool) ([]*Faculty, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"approved": approved})
	if err != nil {
		return nil, err
	}
	faculty := []*Faculty{}
	if err := cursor.All(ctx, &faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

func (r *FacultyRepository) Approve(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"approved": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("faculty not found")
	}
	return nil
}

func (r *FacultyRepository) UpdatePreferences(ctx context.Context, username string, prefs []SubjectPreference) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"username": username}, bson.M{"$set": bson.M{"subjectPreferences": prefs}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("faculty not found")
	}
	return nil
}

type StudentRepository struct {
	collection *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{collection: db.Collection("students")}
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*Student, error) {
	var student Student
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// FindByEmailOrRegNo is the importer's duplicate check, a single query
// matching either identity field.
func (r *StudentRepository) FindByEmailOrRegNo(ctx context.Context, email, regNo string) (*Student, error) {
	filter := bson.M{"$or": []bson.M{{"email": email}, {"regNo": regNo}}}
	var student Student
	err := r.collection.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) Create(ctx context.Context, student *Student) error {
	_, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateStudent
		}
		return err
	}
	return nil
}
