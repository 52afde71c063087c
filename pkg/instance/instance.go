package instance

import "github.com/angelmondragon/jewelcatalog/pkg/env"

const EnvInstanceID = "JEWELCATALOG_INSTANCE_ID"

// GetID returns the process instance identifier used in startup logs.
func GetID() string {
	if id := env.First(EnvInstanceID, "DYNO", "HOSTNAME"); id != "" {
		return id
	}
	return "local"
}
