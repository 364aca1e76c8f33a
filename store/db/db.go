package db

import (
	"github.com/pkg/errors"

	"github.com/wordtrail/wordtrail/internal/profile"
	"github.com/wordtrail/wordtrail/store"
	"github.com/wordtrail/wordtrail/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
// The store is local-first: sqlite is the only supported engine.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'sqlite' is supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
