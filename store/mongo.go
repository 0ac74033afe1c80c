package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/intervention-engine/strokerisk/plugin"
)

const (
	checksCollection = "checks"
	piesCollection   = "pies"
)

// MongoStore keeps checks and pies in the "checks" and "pies" collections of a MongoDB database.  Each call
// runs on its own copy of the database session.
type MongoStore struct {
	db     *mgo.Database
	logger *zap.Logger
}

// NewMongoStore creates a new store backed by the passed in MongoDB database
func NewMongoStore(db *mgo.Database, logger *zap.Logger) *MongoStore {
	return &MongoStore{db: db, logger: logger}
}

// EnsureIndexes creates the index used to list checks newest first
func (m *MongoStore) EnsureIndexes() error {
	db, done := m.session()
	defer done()
	return db.C(checksCollection).EnsureIndex(mgo.Index{Key: []string{"-checked_at"}})
}

func (m *MongoStore) session() (*mgo.Database, func()) {
	s := m.db.Session.Copy()
	return m.db.With(s), s.Close
}

func (m *MongoStore) SaveCheck(ctx context.Context, check *Check) error {
	db, done := m.session()
	defer done()
	if err := db.C(checksCollection).Insert(check); err != nil {
		if mgo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert check: %w", err)
	}
	m.logger.Debug("check saved", zap.String("check_id", check.ID))
	return nil
}

func (m *MongoStore) FindCheck(ctx context.Context, id string) (*Check, error) {
	db, done := m.session()
	defer done()
	check := &Check{}
	if err := db.C(checksCollection).FindId(id).One(check); err != nil {
		if err == mgo.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query check: %w", err)
	}
	return check, nil
}

func (m *MongoStore) ListChecks(ctx context.Context, limit int) ([]*Check, error) {
	db, done := m.session()
	defer done()
	query := db.C(checksCollection).Find(nil).Sort("-checked_at", "_id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	checks := []*Check{}
	if err := query.All(&checks); err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return checks, nil
}

func (m *MongoStore) SavePie(ctx context.Context, pie *plugin.Pie) error {
	db, done := m.session()
	defer done()
	if err := db.C(piesCollection).Insert(pie); err != nil {
		if mgo.IsDup(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert pie: %w", err)
	}
	return nil
}

func (m *MongoStore) FindPie(ctx context.Context, id string) (*plugin.Pie, error) {
	if !bson.IsObjectIdHex(id) {
		return nil, ErrNotFound
	}
	db, done := m.session()
	defer done()
	pie := &plugin.Pie{}
	if err := db.C(piesCollection).FindId(bson.ObjectIdHex(id)).One(pie); err != nil {
		if err == mgo.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query pie: %w", err)
	}
	return pie, nil
}
