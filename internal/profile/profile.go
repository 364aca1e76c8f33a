package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultIntervals is the Ebbinghaus-style review interval table in days,
// indexed by review count.
var DefaultIntervals = []int{1, 2, 4, 7, 15, 30}

// SimpleIntervals is the alternative coarser schedule.
var SimpleIntervals = []int{1, 3, 7, 14, 30}

// Profile is the configuration to start the application.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Data is the data directory
	Data string
	// DSN points to where wordtrail stores its own data
	DSN string
	// Driver is the database driver (sqlite)
	Driver string
	// Version is the current version of the application
	Version string

	// Learning configuration
	DailyNewGoal    int            // WORDTRAIL_DAILY_NEW_GOAL (default: 10)
	DailyReviewGoal int            // WORDTRAIL_DAILY_REVIEW_GOAL (default: 50)
	LearningDays    []time.Weekday // days of week on which new learning is allowed
	Intervals       []int          // review interval table in days
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLearningDay reports whether new learning is allowed on the given day.
// An empty schedule means every day is a learning day.
func (p *Profile) IsLearningDay(day time.Time) bool {
	if len(p.LearningDays) == 0 {
		return true
	}
	weekday := day.Weekday()
	for _, d := range p.LearningDays {
		if d == weekday {
			return true
		}
	}
	return false
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.DailyNewGoal <= 0 {
		p.DailyNewGoal = 10
	}
	if p.DailyReviewGoal <= 0 {
		p.DailyReviewGoal = 50
	}
	if len(p.Intervals) == 0 {
		p.Intervals = DefaultIntervals
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("wordtrail_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
