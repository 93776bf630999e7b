// Package store connects to the data store and manages the timer slot and
// sessions
package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/tally/internal/models"
	"github.com/ayoisaiah/tally/internal/osutil"
)

const (
	timerBucket   = "timer"
	sessionBucket = "sessions"
	metaBucket    = "meta"

	activeTimerKey   = "active"
	schemaVersionKey = "schema_version"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// Slot returns the single well-known timer slot.
func (c *Client) Slot() *Slot {
	return &Slot{
		db:  c.DB,
		key: []byte(activeTimerKey),
	}
}

// Slot is a key in the timer bucket.
type Slot struct {
	db  *bolt.DB
	key []byte
}

func (s *Slot) Get() ([]byte, error) {
	var value []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(timerBucket)).Get(s.key)
		if v != nil {
			value = append([]byte(nil), v...)
		}

		return nil
	})

	return value, err
}

func (s *Slot) Set(value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timerBucket)).Put(s.key, value)
	})
}

func (s *Slot) Delete() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timerBucket)).Delete(s.key)
	})
}

func getSession(tx *bolt.Tx, id string) (*models.Session, error) {
	v := tx.Bucket([]byte(sessionBucket)).Get([]byte(id))
	if v == nil {
		return nil, models.ErrSessionNotFound.Wrap(errors.New(id))
	}

	var sess models.Session

	if err := json.Unmarshal(v, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

func putSession(tx *bolt.Tx, sess *models.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(sessionBucket)).Put([]byte(sess.ID), value)
}

func (c *Client) Create(ctx context.Context, sess *models.Session) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	err := c.DB.Update(func(tx *bolt.Tx) error {
		return putSession(tx, sess)
	})
	if err != nil {
		return "", err
	}

	return sess.ID, nil
}

func (c *Client) Update(ctx context.Context, id string, f models.Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.DB.Update(func(tx *bolt.Tx) error {
		sess, err := getSession(tx, id)
		if err != nil {
			return err
		}

		sess.Apply(f)

		return putSession(tx, sess)
	})
}

func (c *Client) Get(ctx context.Context, id string) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sess *models.Session

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		sess, err = getSession(tx, id)

		return err
	})

	return sess, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(id))
	})
}

// forEachSession decodes every session belonging to userID.
func (c *Client) forEachSession(userID string, fn func(*models.Session)) error {
	return c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).ForEach(func(_, v []byte) error {
			var sess models.Session

			if err := json.Unmarshal(v, &sess); err != nil {
				return err
			}

			if sess.UserID == userID {
				fn(&sess)
			}

			return nil
		})
	})
}

func (c *Client) Intervals(ctx context.Context, userID string) ([]models.Interval, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var intervals []models.Interval

	err := c.forEachSession(userID, func(sess *models.Session) {
		if sess.Completed() {
			intervals = append(intervals, sess.Interval())
		}
	})

	return intervals, err
}

func (c *Client) List(
	ctx context.Context,
	userID string,
	start, end time.Time,
) ([]*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var sessions []*models.Session

	err := c.forEachSession(userID, func(sess *models.Session) {
		if sess.StartTime.Before(start) || sess.StartTime.After(end) {
			return
		}

		sessions = append(sessions, sess)
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(sessions, func(a, b *models.Session) int {
		return cmp.Compare(a.StartTime.UnixNano(), b.StartTime.UnixNano())
	})

	return sessions, nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errTallyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		db,
	}

	// Create the necessary buckets for storing data if they do not exist
	// already, then bring older layouts up to date
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{timerBucket, sessionBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}
