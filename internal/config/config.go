// Package config provides YAML-based configuration loading for the
// sokoban binary.
package config

// Config contains all runtime configuration.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	Display DisplayConfig `yaml:"display"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// PathsConfig locates the data files the game reads and writes.
type PathsConfig struct {
	// LevelsArchive is a zip of level files. Empty selects the embedded set.
	LevelsArchive string `yaml:"levels_archive"`
	// ScoresFile is the YAML document holding best scores and the level cursor.
	ScoresFile string `yaml:"scores_file"`
	// HistoryDB is the SQLite database of completed runs.
	HistoryDB string `yaml:"history_db"`
}

// DisplayConfig tunes presentation details.
type DisplayConfig struct {
	// ShowLegend controls the key legend block under the header.
	ShowLegend bool `yaml:"show_legend"`
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleMinutes int    `yaml:"idle_minutes"`
}
