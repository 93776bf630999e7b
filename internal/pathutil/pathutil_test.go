package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverrides(t *testing.T) {
	p := &Paths{
		configFileName: "config.yml",
		dbFileName:     "tally.db",
		sqliteFileName: "sessions.sqlite",
		logFileName:    "tally.log",
	}

	p.applyEnvironmentOverrides("  ")
	assert.Equal(t, "tally.db", p.dbFileName)

	p.applyEnvironmentOverrides("dev")
	assert.Equal(t, "config_dev.yml", p.configFileName)
	assert.Equal(t, "tally_dev.db", p.dbFileName)
	assert.Equal(t, "sessions_dev.sqlite", p.sqliteFileName)
	assert.Equal(t, "tally_dev.log", p.logFileName)
}
