package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/template"
)

// DefaultCollection is the MongoDB collection templates are kept in.
const DefaultCollection = "templates"

// MongoStore keeps templates in a MongoDB collection, one document per
// template with the template id as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects to uri and uses database db.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(DefaultCollection),
		now:    time.Now,
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*template.Document, error) {
	if err := errors.ValidateTemplateID(id); err != nil {
		return nil, err
	}
	var doc template.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", id, err)
	}
	doc.SetDefaults()
	return &doc, nil
}

func (s *MongoStore) Put(ctx context.Context, doc *template.Document) error {
	if err := prepare(doc, s.now()); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put %q: %w", doc.ID, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateTemplateID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %q: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]*template.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var docs []*template.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	for _, d := range docs {
		d.SetDefaults()
	}
	return docs, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
