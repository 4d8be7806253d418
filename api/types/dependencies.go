package types

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/subarr/internal/database"
	"github.com/killallgit/subarr/internal/models"
	"github.com/killallgit/subarr/internal/services/subscriptions"
)

// ProfileLister lists quality profiles
type ProfileLister interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

// DownloadProbe reports whether the download client is reachable
type DownloadProbe interface {
	Version(ctx context.Context) (string, error)
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB            *database.DB
	Subscriptions subscriptions.SubscriptionService
	Profiles      ProfileLister
	Downloads     DownloadProbe
	Logger        logrus.FieldLogger
	Build         BuildInfo
	// DeleteFiles is used when a delete request does not say
	DeleteFiles bool
}

// Log returns the configured logger or the standard logger
func (d *Dependencies) Log() logrus.FieldLogger {
	if d == nil || d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}
