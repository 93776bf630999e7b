// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	sqliteFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	sqliteFilePath string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "tally",
			configFileName: "config.yml",
			dbFileName:     "tally.db",
			sqliteFileName: "sessions.sqlite",
			logFileName:    "tally.log",
		}

		paths.applyEnvironmentOverrides(os.Getenv("TALLY_ENV"))
		initErr = paths.computePaths()
	})

	return initErr
}

func Dir() string {
	return paths.configDir
}

func ConfigFilePath() string {
	return paths.configFilePath
}

func DBFilePath() string {
	return paths.dbFilePath
}

func SQLiteFilePath() string {
	return paths.sqliteFilePath
}

func LogFilePath() string {
	return paths.logFilePath
}

// applyEnvironmentOverrides gives each environment its own set of files so
// that a development build does not touch real data.
func (p *Paths) applyEnvironmentOverrides(env string) {
	env = strings.TrimSpace(env)
	if env == "" {
		return
	}

	p.configFileName = fmt.Sprintf("config_%s.yml", env)
	p.dbFileName = fmt.Sprintf("tally_%s.db", env)
	p.sqliteFileName = fmt.Sprintf("sessions_%s.sqlite", env)
	p.logFileName = fmt.Sprintf("tally_%s.log", env)
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	dataDir, err := xdg.DataFile(p.configDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.sqliteFilePath = filepath.Join(dataDir, p.sqliteFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}
