package docstore

import (
	"bytes"
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

// Collection is the MongoDB collection sheets are stored in.
const Collection = "sheets"

// DefaultDatabase is used when the connection URI names no database.
const DefaultDatabase = "sketchnote"

// MongoStore stores sheets in MongoDB, one document per name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type sheetRecord struct {
	Name      string    `bson:"_id"`
	Doc       string    `bson:"doc"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to uri and uses the sheets collection of database.
// An empty database selects DefaultDatabase.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeIO, err, "ping mongodb")
	}
	if database == "" {
		database = DefaultDatabase
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(Collection),
	}, nil
}

func (s *MongoStore) Put(ctx context.Context, name string, sh *sheet.Sheet) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := sh.Save(&buf); err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"doc": buf.String(), "updated_at": time.Now().UTC()}}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": name}, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "store sheet %q", name)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, name string) (*sheet.Sheet, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	var rec sheetRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "load sheet %q", name)
	}
	return sheet.Load(bytes.NewReader([]byte(rec.Doc)))
}

func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list sheets")
	}
	var recs []sheetRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list sheets")
	}
	out := make([]Info, 0, len(recs))
	for _, r := range recs {
		out = append(out, Info{Name: r.Name, UpdatedAt: r.UpdatedAt, Size: int64(len(r.Doc))})
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "delete sheet %q", name)
	}
	if res.DeletedCount == 0 {
		return notFound(name)
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
