package domain

import "path/filepath"

// AppName is used for config and data directory names.
const AppName = "tasklist"

// GlobalConfigDir returns the config directory under the given XDG config home.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// DefaultDataDir returns the data directory under the given XDG data home.
func DefaultDataDir(dataHome string) string {
	return filepath.Join(dataHome, AppName)
}

// CookieJarPath returns the path of the cookie jar file.
func CookieJarPath(dataDir string) string {
	return filepath.Join(dataDir, "cookies.txt")
}

// SQLitePath returns the path of the sqlite database.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, "tasklist.db")
}

// LogPath returns the path of the log file.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "tasklist.log")
}
