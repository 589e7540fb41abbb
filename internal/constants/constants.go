package constants

import "time"

const (
	EnvExclude        = "TEST_KIND_EXCLUDE"
	EnvUnitAge        = "TEST_KIND_UNIT_AGE"
	EnvUnitSkip       = "TEST_KIND_UNIT_SKIP"
	EnvKnownResources = "TEST_KIND_KNOWN_RESOURCES"
	EnvResources      = "TEST_KIND_RESOURCES"
	EnvDefined        = "TEST_KIND_DEFINED"
	EnvExcludeWhen    = "TEST_KIND_EXCLUDE_WHEN"
	EnvLogLevel       = "TEST_KIND_LOG_LEVEL"
	EnvConfigFile     = "TEST_KIND_CONFIG"
)

const (
	KeyExclude        = "exclude"
	KeyUnitAge        = "unit_age"
	KeyUnitSkip       = "unit_skip"
	KeyKnownResources = "known_resources"
	KeyResources      = "resources"
	KeyDefined        = "defined"
	KeyExcludeWhen    = "exclude_when"
	KeyLogLevel       = "log_level"
)

const (
	DefaultUnitAgeDays  uint32 = 365
	DefaultUnitSkipDays uint32 = 30
	DefaultLogLevel            = "warn"
)

const (
	KindUnit        = "unit"
	KindIntegration = "integration"
	CategoryOther   = "other"
)

const (
	OptionUpdated   = "updated"
	OptionResources = "resources"
	DateLayout      = "2006-01-02"
)

// MaxFutureDays is how far past today an updated date may lie.
const MaxFutureDays = 2

// MinUpdated is the earliest accepted updated date.
var MinUpdated = time.Date(2023, time.October, 10, 0, 0, 0, 0, time.UTC)
