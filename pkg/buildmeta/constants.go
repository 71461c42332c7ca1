package buildmeta

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Descriptor updated (or previewed) successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration or element path
	ExitParseError       = 20 // Descriptor is not well-formed XML
	ExitNotANumber       = 21 // Counter property holds a non-numeric value
	ExitBackupFailed     = 30 // Backup could not be created, original untouched
	ExitReplaceFailed    = 31 // Original could not be deleted, original intact
	ExitAtomicMoveFailed = 32 // Rename failed after delete, original missing
	ExitWriteFailed      = 33 // Writing the transformed document failed
)

const (
	// DefaultDescriptor is the descriptor file updated when none is configured.
	DefaultDescriptor = "pom.xml"

	// DefaultElementPath is the absolute path of the element whose children are managed.
	DefaultElementPath = "/project/properties"

	// DefaultBuildNumberProperty holds the build counter.
	DefaultBuildNumberProperty = "build.number.current"

	// DefaultBuildDateProperty holds the formatted build date.
	DefaultBuildDateProperty = "build.date.current"

	// DefaultBuildYearProperty holds the four digit build year.
	DefaultBuildYearProperty = "build.year.current"

	// DefaultDatePattern is the strftime pattern for the build date (dd.MM.yyyy).
	DefaultDatePattern = "%d.%m.%Y"

	// BackupSuffix is inserted between the base name and the extension of the backup file.
	BackupSuffix = "-backup"

	// InitialCounterValue is written when a counter property does not exist yet.
	InitialCounterValue = "1"

	// EnvUpdater selects the updater implementation, overriding the config file.
	EnvUpdater = "BUILDMETA_UPDATER"

	// EnvBuildNumber forces the build number instead of incrementing it.
	EnvBuildNumber = "BUILDMETA_BUILD_NUMBER"
)
