package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// GoogleCredentials represents the structure of Google OAuth credentials JSON file.
type GoogleCredentials struct {
	Installed struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"installed"`
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	} `json:"web"`
}

// LoadGoogleCredentials loads Google OAuth credentials from a JSON file.
func LoadGoogleCredentials(path string) (clientID, clientSecret string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds GoogleCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", "", fmt.Errorf("failed to parse credentials file: %w", err)
	}

	// Try "installed" first (for desktop apps), then "web"
	if creds.Installed.ClientID != "" {
		return creds.Installed.ClientID, creds.Installed.ClientSecret, nil
	}
	if creds.Web.ClientID != "" {
		return creds.Web.ClientID, creds.Web.ClientSecret, nil
	}

	return "", "", fmt.Errorf("no client_id found in credentials file (expected 'installed' or 'web' section)")
}

// CalDAV holds the connection settings for a CalDAV destination calendar.
type CalDAV struct {
	ServerURL    string `json:"server_url"`              // e.g. "https://caldav.icloud.com"
	Username     string `json:"username"`                // account email
	Password     string `json:"password"`                // app-specific password for iCloud
	CalendarPath string `json:"calendar_path,omitempty"` // collection path, e.g. "/<user>/calendars/classes/"
}

// Config holds the configuration for the timetable sync tool.
type Config struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetName     string `json:"sheet_name,omitempty"`
	TermStartCell string `json:"term_start_cell,omitempty"` // A1 reference of the term start cell
	TermEndCell   string `json:"term_end_cell,omitempty"`   // A1 reference of the term end cell

	CalendarType string  `json:"calendar_type,omitempty"` // "google" or "caldav"
	CalendarID   string  `json:"calendar_id,omitempty"`   // Google calendar id
	TimeZone     string  `json:"time_zone,omitempty"`     // IANA zone attached to recurring series
	CalDAV       *CalDAV `json:"caldav,omitempty"`

	AnchorPolicy string `json:"anchor_policy,omitempty"` // "rolling" (default) or "term"
	SyncSchedule string `json:"sync_schedule,omitempty"` // cron expression for the periodic trigger

	TokenPath             string `json:"token_path,omitempty"`
	GoogleCredentialsPath string `json:"google_credentials_path,omitempty"`
}

// LoadConfigFromFile loads configuration from a JSON file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadConfig loads configuration with the following precedence (highest to lowest):
// 1. Command-line flags
// 2. Environment variables
// 3. Config file
// 4. Defaults
// Returns an error if any required value is missing.
func LoadConfig(configFile string, spreadsheetIDFlag, calendarIDFlag, tokenPathFlag, googleCredentialsPathFlag string) (*Config, error) {
	var config Config

	// Step 1: Load from config file if provided
	if configFile != "" {
		fileConfig, err := LoadConfigFromFile(configFile)
		if err != nil {
			return nil, err
		}
		config = *fileConfig
	}

	// Step 2: Override with environment variables
	if spreadsheetID := os.Getenv("SPREADSHEET_ID"); spreadsheetID != "" {
		config.SpreadsheetID = spreadsheetID
	}
	if calendarID := os.Getenv("CALENDAR_ID"); calendarID != "" {
		config.CalendarID = calendarID
	}
	if tokenPath := os.Getenv("TOKEN_PATH"); tokenPath != "" {
		config.TokenPath = tokenPath
	}
	if googleCredentialsPath := os.Getenv("GOOGLE_CREDENTIALS_PATH"); googleCredentialsPath != "" {
		config.GoogleCredentialsPath = googleCredentialsPath
	}
	if syncSchedule := os.Getenv("SYNC_SCHEDULE"); syncSchedule != "" {
		config.SyncSchedule = syncSchedule
	}
	if anchorPolicy := os.Getenv("ANCHOR_POLICY"); anchorPolicy != "" {
		config.AnchorPolicy = anchorPolicy
	}

	// Step 3: Override with command-line flags (highest priority)
	if spreadsheetIDFlag != "" {
		config.SpreadsheetID = spreadsheetIDFlag
	}
	if calendarIDFlag != "" {
		config.CalendarID = calendarIDFlag
	}
	if tokenPathFlag != "" {
		config.TokenPath = tokenPathFlag
	}
	if googleCredentialsPathFlag != "" {
		config.GoogleCredentialsPath = googleCredentialsPathFlag
	}

	// Step 4: Apply defaults and validate required fields
	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet_id must be provided via --spreadsheet-id flag, SPREADSHEET_ID environment variable, or config file")
	}

	if config.SheetName == "" {
		config.SheetName = "Timetable"
	}
	if config.TermStartCell == "" {
		config.TermStartCell = "G9"
	}
	if config.TermEndCell == "" {
		config.TermEndCell = "H9"
	}

	if config.CalendarType == "" {
		config.CalendarType = "google"
	}
	switch config.CalendarType {
	case "google":
		if config.CalendarID == "" {
			return nil, fmt.Errorf("calendar_id must be provided via --calendar-id flag, CALENDAR_ID environment variable, or config file")
		}
		if config.TokenPath == "" {
			return nil, fmt.Errorf("token_path must be provided via --token-path flag, TOKEN_PATH environment variable, or config file")
		}
		if config.GoogleCredentialsPath == "" {
			return nil, fmt.Errorf("google_credentials_path must be provided via --google-credentials-path flag, GOOGLE_CREDENTIALS_PATH environment variable, or config file")
		}
	case "caldav":
		if config.CalDAV == nil || config.CalDAV.ServerURL == "" || config.CalDAV.Username == "" {
			return nil, fmt.Errorf("calendar_type %q requires a caldav section with server_url and username", config.CalendarType)
		}
		// The Sheets source still authenticates against Google.
		if config.TokenPath == "" || config.GoogleCredentialsPath == "" {
			return nil, fmt.Errorf("token_path and google_credentials_path are required to read the spreadsheet")
		}
	default:
		return nil, fmt.Errorf("unknown calendar_type %q (expected \"google\" or \"caldav\")", config.CalendarType)
	}

	if config.TimeZone == "" {
		config.TimeZone = "UTC"
	}

	if config.AnchorPolicy == "" {
		config.AnchorPolicy = "rolling"
	}
	if config.AnchorPolicy != "rolling" && config.AnchorPolicy != "term" {
		return nil, fmt.Errorf("invalid anchor_policy %q (expected \"rolling\" or \"term\")", config.AnchorPolicy)
	}

	if config.SyncSchedule == "" {
		config.SyncSchedule = "0 21 * * SUN"
	}

	return &config, nil
}
