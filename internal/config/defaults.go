package config

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			LevelsArchive: "",
			ScoresFile:    "~/.sokoban/scores.yaml",
			HistoryDB:     "~/.sokoban/history.db",
		},
		Display: DisplayConfig{
			ShowLegend: true,
		},
		SSH: SSHConfig{
			Address:     ":23235",
			HostKeyPath: "",
			IdleMinutes: 30,
		},
	}
}
