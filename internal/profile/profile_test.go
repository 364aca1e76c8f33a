package profile

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{Data: dir}
	require.NoError(t, p.Validate())

	require.Equal(t, "dev", p.Mode)
	require.Equal(t, "sqlite", p.Driver)
	require.Equal(t, 10, p.DailyNewGoal)
	require.Equal(t, 50, p.DailyReviewGoal)
	require.Equal(t, DefaultIntervals, p.Intervals)
	require.Equal(t, filepath.Join(dir, "wordtrail_dev.db"), p.DSN)
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{
		Mode:            "prod",
		Data:            dir,
		DSN:             filepath.Join(dir, "custom.db"),
		DailyNewGoal:    5,
		DailyReviewGoal: 20,
		Intervals:       SimpleIntervals,
	}
	require.NoError(t, p.Validate())

	require.Equal(t, "prod", p.Mode)
	require.Equal(t, 5, p.DailyNewGoal)
	require.Equal(t, 20, p.DailyReviewGoal)
	require.Equal(t, SimpleIntervals, p.Intervals)
	require.Equal(t, filepath.Join(dir, "custom.db"), p.DSN)
	require.False(t, p.IsDev())
}

func TestValidateMissingDataDir(t *testing.T) {
	p := &Profile{Data: filepath.Join(t.TempDir(), "does-not-exist")}
	require.Error(t, p.Validate())
}

func TestIsLearningDay(t *testing.T) {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)

	// An empty schedule allows every day.
	p := &Profile{}
	require.True(t, p.IsLearningDay(monday))
	require.True(t, p.IsLearningDay(sunday))

	// A weekday-only schedule excludes the weekend.
	p.LearningDays = []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}
	require.True(t, p.IsLearningDay(monday))
	require.False(t, p.IsLearningDay(sunday))
}
