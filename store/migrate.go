package store

import (
	"encoding/json"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/ayoisaiah/tally/timer"
)

const (
	schemaVersion = 1

	// legacyTimerBucket held one paused timer per start time, keyed by the
	// RFC3339Nano start time, with snake_case field names.
	legacyTimerBucket = "timers"
)

type legacyTimer struct {
	StartTime          time.Time  `json:"start_time"`
	PausedAt           *time.Time `json:"paused_at"`
	TaskID             *string    `json:"task_id"`
	SessionID          string     `json:"session_id"`
	Notes              string     `json:"notes"`
	TotalPausedSeconds int        `json:"total_paused_seconds"`
	HourlyRate         float64    `json:"hourly_rate"`
}

// migrateTimers folds the legacy multi-timer bucket into the single timer
// slot. Only the most recently started timer survives and an existing
// active timer always wins.
func migrateTimers(tx *bbolt.Tx) error {
	legacy := tx.Bucket([]byte(legacyTimerBucket))
	if legacy == nil {
		return nil
	}

	slot := tx.Bucket([]byte(timerBucket))

	if slot.Get([]byte(activeTimerKey)) == nil {
		if k, v := legacy.Cursor().Last(); k != nil {
			var t legacyTimer

			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}

			b, err := json.Marshal(&timer.State{
				SessionID:          t.SessionID,
				TaskID:             t.TaskID,
				StartTime:          t.StartTime,
				PausedAt:           t.PausedAt,
				TotalPausedSeconds: t.TotalPausedSeconds,
				Notes:              t.Notes,
				HourlyRate:         t.HourlyRate,
			})
			if err != nil {
				return err
			}

			if err = slot.Put([]byte(activeTimerKey), b); err != nil {
				return err
			}
		}
	}

	return tx.DeleteBucket([]byte(legacyTimerBucket))
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	meta := tx.Bucket([]byte(metaBucket))

	var version int

	if v := meta.Get([]byte(schemaVersionKey)); v != nil {
		var err error

		version, err = strconv.Atoi(string(v))
		if err != nil {
			return err
		}
	}

	if version >= schemaVersion {
		return nil
	}

	if version < 1 {
		if err := migrateTimers(tx); err != nil {
			return err
		}
	}

	return meta.Put(
		[]byte(schemaVersionKey),
		[]byte(strconv.Itoa(schemaVersion)),
	)
}
