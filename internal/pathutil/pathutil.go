// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/burhanahmeed/tempo/internal/osutil"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	statusFileName string
	logFileName    string
	tracksDirName  string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	statusFilePath string
	logFilePath    string
	tracksDirPath  string
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
			configDir:      "tempo",
			configFileName: "config.yml",
			dbFileName:     "tempo.db",
			statusFileName: "status.json",
			logFileName:    "tempo.log",
			tracksDirName:  "tracks",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

func Dir() string {
	return paths.configDir
}

func DBFilePath() string {
	return paths.dbFilePath
}

func StatusFilePath() string {
	return paths.statusFilePath
}

func LogFilePath() string {
	return paths.logFilePath
}

func ConfigFilePath() string {
	return paths.configFilePath
}

// TracksDirPath is the directory holding cached audio files for playlist
// tracks, keyed by video ID.
func TracksDirPath() string {
	return paths.tracksDirPath
}

func (p *Paths) applyEnvironmentOverrides() {
	tempoEnv := strings.TrimSpace(os.Getenv("TEMPO_ENV"))
	if tempoEnv != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", tempoEnv)
		p.dbFileName = fmt.Sprintf("tempo_%s.db", tempoEnv)
		p.statusFileName = fmt.Sprintf("status_%s.json", tempoEnv)
		p.logFileName = fmt.Sprintf("tempo_%s.log", tempoEnv)
	}
}

func (p *Paths) computePaths() error {
	relPath := filepath.Join(p.configDir, p.configFileName)

	configFilePath, err := xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.configFilePath = configFilePath

	dataDir, err := xdg.DataFile(p.configDir)
	if err != nil {
		return err
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)

	p.statusFilePath = filepath.Join(dataDir, p.statusFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	p.tracksDirPath = filepath.Join(dataDir, p.tracksDirName)

	return os.MkdirAll(p.tracksDirPath, osutil.DirPermission)
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
