package store

import (
	"context"
	"time"

	"github.com/ayoisaiah/tally/internal/models"
)

// DB is the session storage interface implemented by the bbolt client and
// the sqlite store.
type DB interface {
	// Create stores a new session and returns its id. An id is generated
	// when the session does not carry one.
	Create(ctx context.Context, sess *models.Session) (string, error)
	// Update writes the finalised fields of an existing session.
	Update(ctx context.Context, id string, f models.Fields) error
	// Get retrieves a single session.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
	// Intervals returns the spans of every completed session of a user.
	Intervals(ctx context.Context, userID string) ([]models.Interval, error)
	// List returns the sessions of a user that started within [start, end],
	// ordered by start time.
	List(
		ctx context.Context,
		userID string,
		start, end time.Time,
	) ([]*models.Session, error)
	// Close ends the database connection
	Close() error
}
