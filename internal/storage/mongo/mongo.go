package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/letsssgooo/codeduo/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "questions"

// Connect подключается к MongoDB и проверяет соединение.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}

// QuestionRepository реализует storage.QuestionRepository поверх коллекции MongoDB.
type QuestionRepository struct {
	Col *mongo.Collection
}

// NewQuestionRepository создаёт репозиторий на коллекции questions.
func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection(collectionName)}
}

// EnsureIndexes создаёт индексы для поиска по квизу и идентификатору вопроса.
func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "quiz_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "question_id", Value: 1}}},
	})
	return err
}

func (r *QuestionRepository) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	if q == nil {
		return nil, storage.ErrNilQuestion
	}

	stored := q.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if _, err := r.Col.InsertOne(ctx, stored); err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *QuestionRepository) FindByQuizID(ctx context.Context, quizID string) ([]*models.Question, error) {
	return r.find(ctx, bson.M{"quiz_id": quizID})
}

func (r *QuestionRepository) FindByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	return r.findOne(ctx, bson.M{"question_id": questionID})
}

func (r *QuestionRepository) Update(ctx context.Context, id string, q *models.Question) (*models.Question, error) {
	if q == nil {
		return nil, storage.ErrNilQuestion
	}

	update := bson.M{"$set": bson.M{
		"question_id":    q.QuestionID,
		"quiz_id":        q.QuizID,
		"question":       q.Text,
		"options":        q.Options,
		"correct_answer": q.Correct,
		"explanation":    q.Explanation,
		"updated_at":     time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Question
	err := r.Col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]*models.Question, error) {
	return r.find(ctx, bson.M{})
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (r *QuestionRepository) findOne(ctx context.Context, filter bson.M) (*models.Question, error) {
	var q models.Question
	err := r.Col.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &q, nil
}

func (r *QuestionRepository) find(ctx context.Context, filter bson.M) ([]*models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := make([]*models.Question, 0)
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}

	return questions, cur.Err()
}
