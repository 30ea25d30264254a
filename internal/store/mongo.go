package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blackdiamond/coaltrack/internal/models"
)

// Mongo is the durable Store implementation. Read-modify-write cycles
// are serialized per record with an in-process lock keyed by kind and
// id, so two mutations of the same record never interleave while
// unrelated records stay independent.
type Mongo struct {
	client    *mongo.Client
	vehicles  *mongo.Collection
	locations *mongo.Collection
	shipments *mongo.Collection
	alerts    *mongo.Collection
	locks     recordLocks
}

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	db := client.Database(dbName)
	return &Mongo{
		client:    client,
		vehicles:  db.Collection("vehicles"),
		locations: db.Collection("locations"),
		shipments: db.Collection("shipments"),
		alerts:    db.Collection("alerts"),
	}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// recordLocks hands out one mutex per "kind:id" key.
type recordLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (r *recordLocks) acquire(key string) *sync.Mutex {
	r.mu.Lock()
	if r.locks == nil {
		r.locks = make(map[string]*sync.Mutex)
	}
	l, ok := r.locks[key]
	if !ok {
		l = &sync.Mutex{}
		r.locks[key] = l
	}
	r.mu.Unlock()
	l.Lock()
	return l
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	var out T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, coll.Name(), id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find %s %q: %v", ErrUnavailable, coll.Name(), id, err)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) ([]T, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrUnavailable, coll.Name(), err)
	}
	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, coll.Name(), err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func insertOne[T any](ctx context.Context, coll *mongo.Collection, rec T) error {
	if _, err := coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("%w: insert %s: %v", ErrUnavailable, coll.Name(), err)
	}
	return nil
}

// updateOne runs the read-modify-write cycle under the record lock.
// clamp runs after the caller's mutator so invariants hold no matter
// what the mutator wrote.
func updateOne[T any](ctx context.Context, m *Mongo, coll *mongo.Collection, id string, mutate func(*T), clamp func(*T)) (*T, error) {
	l := m.locks.acquire(coll.Name() + ":" + id)
	defer l.Unlock()

	rec, err := findOne[T](ctx, coll, id)
	if err != nil {
		return nil, err
	}
	mutate(rec)
	if clamp != nil {
		clamp(rec)
	}
	if _, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, rec); err != nil {
		return nil, fmt.Errorf("%w: replace %s %q: %v", ErrUnavailable, coll.Name(), id, err)
	}
	return rec, nil
}

func (m *Mongo) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return findOne[models.Vehicle](ctx, m.vehicles, id)
}

func (m *Mongo) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return findAll[models.Vehicle](ctx, m.vehicles, bson.M{})
}

func (m *Mongo) InsertVehicle(ctx context.Context, v models.Vehicle) error {
	v.SchemaVersion = models.SchemaVersion
	return insertOne(ctx, m.vehicles, v)
}

func (m *Mongo) UpdateVehicle(ctx context.Context, id string, mutate func(*models.Vehicle)) (*models.Vehicle, error) {
	return updateOne(ctx, m, m.vehicles, id, mutate, clampVehicle)
}

func (m *Mongo) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	return findOne[models.Location](ctx, m.locations, id)
}

func (m *Mongo) ListLocations(ctx context.Context) ([]models.Location, error) {
	return findAll[models.Location](ctx, m.locations, bson.M{})
}

func (m *Mongo) InsertLocation(ctx context.Context, l models.Location) error {
	l.SchemaVersion = models.SchemaVersion
	return insertOne(ctx, m.locations, l)
}

func (m *Mongo) UpdateLocation(ctx context.Context, id string, mutate func(*models.Location)) (*models.Location, error) {
	return updateOne(ctx, m, m.locations, id, mutate, clampLocation)
}

func (m *Mongo) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	return findOne[models.Shipment](ctx, m.shipments, id)
}

func (m *Mongo) ListShipments(ctx context.Context) ([]models.Shipment, error) {
	return findAll[models.Shipment](ctx, m.shipments, bson.M{})
}

func (m *Mongo) InsertShipment(ctx context.Context, s models.Shipment) (*models.Shipment, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.SchemaVersion = models.SchemaVersion
	if err := insertOne(ctx, m.shipments, s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *Mongo) UpdateShipment(ctx context.Context, id string, mutate func(*models.Shipment)) (*models.Shipment, error) {
	return updateOne(ctx, m, m.shipments, id, mutate, nil)
}

func (m *Mongo) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	return findOne[models.Alert](ctx, m.alerts, id)
}

func (m *Mongo) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	return findAll[models.Alert](ctx, m.alerts, bson.M{})
}

func (m *Mongo) ListOpenAlerts(ctx context.Context) ([]models.Alert, error) {
	return findAll[models.Alert](ctx, m.alerts, bson.M{"resolved": false})
}

func (m *Mongo) InsertAlert(ctx context.Context, a models.Alert) (*models.Alert, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.SchemaVersion = models.SchemaVersion
	if err := insertOne(ctx, m.alerts, a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (m *Mongo) UpdateAlert(ctx context.Context, id string, mutate func(*models.Alert)) (*models.Alert, error) {
	return updateOne(ctx, m, m.alerts, id, mutate, nil)
}
