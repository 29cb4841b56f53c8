package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"classcal/internal/auth"
	calclient "classcal/internal/calendar"
	"classcal/internal/config"
	"classcal/internal/schedule"
	syncer "classcal/internal/sync"
	"classcal/internal/timetable"
	"classcal/internal/trigger"

	"golang.org/x/oauth2"
)

func printHelp() {
	fmt.Fprintf(os.Stderr, `Class Calendar Sync Tool

Reads a weekly timetable from a Google Sheets spreadsheet and mirrors it into
a calendar as weekly-recurring event series bounded by the academic term. On
every run, existing events inside the term window are deleted and the series
are recreated from the current timetable contents.

USAGE:
    %s [OPTIONS]

OPTIONS:
    -h, --help                    Show this help message and exit
    -v, --verbose                 Enable verbose output (include file locations in logs)
    --config FILE                 Path to JSON config file
    --once                        Run a single sync and exit instead of scheduling
    --spreadsheet-id ID           Spreadsheet to read the timetable from
                                  (overrides config file and SPREADSHEET_ID env var)
    --calendar-id ID              Google calendar to sync into
                                  (overrides config file and CALENDAR_ID env var)
    --token-path PATH             Path to store the OAuth token
                                  (overrides config file and TOKEN_PATH env var)
    --google-credentials-path PATH Path to Google OAuth credentials JSON file
                                  (overrides config file and GOOGLE_CREDENTIALS_PATH env var)

CONFIGURATION PRECEDENCE (highest to lowest):
    1. Command-line flags
    2. Environment variables (SPREADSHEET_ID, CALENDAR_ID, TOKEN_PATH,
       GOOGLE_CREDENTIALS_PATH, SYNC_SCHEDULE, ANCHOR_POLICY)
    3. Config file (--config)
    4. Defaults

CONFIG FILE:
    Example:
    {
      "spreadsheet_id": "1AbC...",
      "sheet_name": "Timetable",
      "term_start_cell": "G9",
      "term_end_cell": "H9",
      "calendar_type": "google",
      "calendar_id": "primary",
      "time_zone": "Europe/Amsterdam",
      "anchor_policy": "rolling",
      "sync_schedule": "0 21 * * SUN",
      "token_path": "/path/to/token.json",
      "google_credentials_path": "/path/to/credentials.json"
    }

    For a CalDAV destination, set "calendar_type" to "caldav" and add:
    {
      "caldav": {
        "server_url": "https://caldav.icloud.com",
        "username": "your-email@icloud.com",
        "password": "app-specific-password",
        "calendar_path": "/<user>/calendars/classes/"
      }
    }

    The Google credentials JSON file should be in the format downloaded from
    Google Cloud Console. It should contain either an "installed" or "web"
    section with "client_id" and "client_secret" fields. The spreadsheet is
    always read through the Google Sheets API, so the token and credentials
    are required for both calendar types.

DESCRIPTION:
    The spreadsheet is the source of truth. Every run will:
    - DELETE every event in the destination calendar that falls inside the
      academic term window, including manually created ones
    - Recreate one weekly series per timetable row, recurring until term end

    Only use this tool with a dedicated calendar that you don't manually edit!

    The term window is read from two spreadsheet cells (G9 and H9 by default).
    With the default "rolling" anchor policy, each series starts on the next
    calendar date matching the row's weekday; the "term" policy anchors the
    first occurrence to the week of the term start instead.

    Without --once, the tool stays running and triggers a sync on the
    configured cron schedule (default: Sunday 21:00).

EXAMPLES:
    # Run one sync and exit
    %s --config /path/to/config.json --once

    # Stay running and sync every Sunday evening
    %s --config /path/to/config.json

    # Override the spreadsheet via environment
    SPREADSHEET_ID="1AbC..." %s --config /path/to/config.json --once

    # Show help
    %s --help

`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
}

func main() {
	// Parse command-line flags
	helpFlag := flag.Bool("help", false, "Show help message")
	helpFlagShort := flag.Bool("h", false, "Show help message (shorthand)")
	verboseFlag := flag.Bool("verbose", false, "Enable verbose output")
	verboseFlagShort := flag.Bool("v", false, "Enable verbose output (shorthand)")
	configFile := flag.String("config", "", "Path to JSON config file")
	once := flag.Bool("once", false, "Run a single sync and exit instead of scheduling")
	spreadsheetID := flag.String("spreadsheet-id", "", "Spreadsheet to read the timetable from (overrides config file and SPREADSHEET_ID env var)")
	calendarID := flag.String("calendar-id", "", "Google calendar to sync into (overrides config file and CALENDAR_ID env var)")
	tokenPath := flag.String("token-path", "", "Path to store the OAuth token (overrides config file and TOKEN_PATH env var)")
	googleCredentialsPath := flag.String("google-credentials-path", "", "Path to Google OAuth credentials JSON file (overrides config file and GOOGLE_CREDENTIALS_PATH env var)")
	flag.Parse()

	// Show help if requested
	if *helpFlag || *helpFlagShort {
		printHelp()
		os.Exit(0)
	}

	// Set up logging
	if *verboseFlag || *verboseFlagShort {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	ctx := context.Background()

	// Load configuration (precedence: flags > env vars > config file > defaults)
	cfg, err := config.LoadConfig(*configFile, *spreadsheetID, *calendarID, *tokenPath, *googleCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load Google OAuth credentials from the credentials file
	clientID, clientSecret, err := config.LoadGoogleCredentials(cfg.GoogleCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to load Google credentials: %v", err)
	}

	googleOAuthConfig := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  "http://127.0.0.1:8080", // Will be updated dynamically by auth flow
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar",
			"https://www.googleapis.com/auth/calendar.events",
			"https://www.googleapis.com/auth/spreadsheets.readonly",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}

	tokenStore := auth.NewFileTokenStore(cfg.TokenPath)

	httpClient, err := auth.GetAuthenticatedClient(ctx, googleOAuthConfig, tokenStore)
	if err != nil {
		log.Fatalf("Failed to authenticate: %v", err)
	}

	source, err := timetable.NewSheetsSource(ctx, httpClient, cfg.SpreadsheetID, cfg.SheetName, cfg.TermStartCell, cfg.TermEndCell)
	if err != nil {
		log.Fatalf("Failed to create spreadsheet source: %v", err)
	}

	// Create the destination calendar client based on calendar type
	var cal calclient.Client
	if cfg.CalendarType == "caldav" {
		cal = calclient.NewCalDAVClient(cfg.CalDAV.ServerURL, cfg.CalDAV.Username, cfg.CalDAV.Password, cfg.CalDAV.CalendarPath)
	} else {
		cal, err = calclient.NewGoogleClient(ctx, httpClient, cfg.CalendarID, cfg.TimeZone)
		if err != nil {
			log.Fatalf("Failed to create calendar client: %v", err)
		}
	}

	s := syncer.NewSyncer(source, cal, schedule.AnchorPolicy(cfg.AnchorPolicy), nil)

	if *once {
		report, err := s.Run(ctx)
		if err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		if report.DeleteFailures > 0 || report.CreateFailures > 0 {
			log.Printf("Sync finished with %d delete failure(s) and %d create failure(s)",
				report.DeleteFailures, report.CreateFailures)
			os.Exit(1)
		}
		return
	}

	// Scheduled mode: stay running and sync on the configured cadence.
	scheduler := trigger.NewScheduler()
	err = scheduler.Schedule(ctx, cfg.SyncSchedule, func(ctx context.Context) {
		if _, err := s.Run(ctx); err != nil {
			log.Printf("Sync failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to register sync trigger: %v", err)
	}

	scheduler.Start()
	log.Printf("Waiting for scheduled syncs (%s). Press Ctrl+C to exit.", cfg.SyncSchedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	scheduler.Stop()
}
