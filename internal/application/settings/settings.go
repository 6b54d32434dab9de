// Package settings defines application-level configuration data.
package settings

import (
	"strings"
	"time"
)

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up       string `yaml:"up" kong:"help='Up key',default='k'"`
	Down     string `yaml:"down" kong:"help='Down key',default='j'"`
	Left     string `yaml:"left" kong:"help='Previous section key',default='h'"`
	Right    string `yaml:"right" kong:"help='Next section key',default='l'"`
	UpPage   string `yaml:"up_page" kong:"help='Page Up key',default='ctrl+u'"`
	DownPage string `yaml:"down_page" kong:"help='Page Down key',default='ctrl+d'"`
	Open     string `yaml:"open" kong:"help='Open book key',default='enter'"`
	Back     string `yaml:"back" kong:"help='Back key',default='esc'"`
	Quit     string `yaml:"quit" kong:"help='Quit key',default='q'"`
	Event    string `yaml:"event" kong:"help='Event page key',default='e'"`
	Home     string `yaml:"home" kong:"help='Home screen key',default='H'"`
	Register string `yaml:"register" kong:"help='Register for event key',default='r'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Accent string `yaml:"accent" kong:"help='Accent color',default='205'"`
	Badge  string `yaml:"badge" kong:"help='Membership badge color',default='220'"`
	Muted  string `yaml:"muted" kong:"help='Secondary text color',default='244'"`
}

// StoreConfig selects and configures the document store backend.
type StoreConfig struct {
	Driver       string        `yaml:"driver" kong:"help='Document store driver (sqlite/postgres)',default='sqlite'"`
	Path         string        `yaml:"path" kong:"help='SQLite database path'"`
	DSN          string        `yaml:"dsn" kong:"help='PostgreSQL DSN'"`
	PollInterval time.Duration `yaml:"poll_interval" kong:"help='SQLite watch polling interval',default='2s'"`
}

// SessionConfig describes where the current member identity comes from.
type SessionConfig struct {
	MemberID   string `yaml:"member_id" kong:"help='Current member id'"`
	MemberName string `yaml:"member_name" kong:"help='Current member full name'"`
	Token      string `yaml:"token" kong:"help='Signed session token'"`
	Secret     string `yaml:"secret" kong:"help='Session token signing secret'"`
}

// Settings represents the application configuration.
type Settings struct {
	Store   StoreConfig   `yaml:"store" kong:"embed,prefix='store.'"`
	Session SessionConfig `yaml:"session" kong:"embed,prefix='session.'"`
	KeyMap  KeyMapConfig  `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme   ThemeConfig   `yaml:"theme" kong:"embed,prefix='theme.'"`
	LogFile string        `yaml:"log_file" kong:"help='Log file path'"`
}

// Driver names accepted by StoreConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DriverName returns the normalized driver, defaulting to SQLite.
func (s StoreConfig) DriverName() string {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	if driver == "" {
		return DriverSQLite
	}
	return driver
}
