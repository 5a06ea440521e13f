// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Backend Selection - these keys choose which hosted player the driver attaches to.
const (
	BackendDefault = "backend.default"
)

// Browser - these keys configure the Chrome instance that hosts the player page.
const (
	BrowserHeadless    = "browser.headless"
	BrowserExecPath    = "browser.exec_path"
	BrowserRemoteURL   = "browser.remote_url"
	BrowserUserDataDir = "browser.user_data_dir"
)

// Channel Server - these keys configure the controller-facing websocket endpoint.
const (
	ServerAddress = "server.address"
	ServerAuth    = "server.auth"
)

// Driver Polling - bounded retry budgets for every convergence loop.
const (
	DriverPollInterval     = "driver.poll_interval_ms"
	DriverPollRounds       = "driver.poll_rounds"
	DriverAfterPauseDelay  = "driver.after_pause_delay_ms"
	DriverMovementInterval = "driver.movement_interval_ms"
	DriverMovementRounds   = "driver.movement_rounds"
	DriverMovementAttempts = "driver.movement_attempts"
	DriverMovementDistinct = "driver.movement_distinct"
	DriverPauseRounds      = "driver.pause_rounds"
	DriverQueueSize        = "driver.queue_size"
)

// Progress Watchdog - these keys tune natural track-end detection.
const (
	WatchdogInterval  = "watchdog.interval_ms"
	WatchdogThreshold = "watchdog.threshold"
)

// History - these keys control the record of played tracks.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
