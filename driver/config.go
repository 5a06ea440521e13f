package driver

import (
	"time"

	"github.com/hostplay/hostplay/key"
	"github.com/spf13/viper"
)

// Config bounds every poll loop of a driver.
type Config struct {
	// PollInterval and PollRounds bound title and transport convergence.
	PollInterval time.Duration
	PollRounds   int

	// AfterPauseDelay is waited after pausing a playing track and before clicking next.
	AfterPauseDelay time.Duration

	// Movement confirmation: up to MovementAttempts clicks, each followed by
	// MovementRounds progress samples MovementInterval apart, until MovementDistinct
	// distinct readings have been seen.
	MovementInterval time.Duration
	MovementRounds   int
	MovementAttempts int
	MovementDistinct int

	// PauseRounds bounds the final pause convergence of a peek advance.
	PauseRounds int

	// QueueSize is the capacity of the command queue.
	QueueSize int

	WatchdogInterval  time.Duration
	WatchdogThreshold float64
}

// DefaultConfig returns the timings the hosted players were tuned with.
func DefaultConfig() Config {
	return Config{
		PollInterval:      100 * time.Millisecond,
		PollRounds:        40,
		AfterPauseDelay:   100 * time.Millisecond,
		MovementInterval:  50 * time.Millisecond,
		MovementRounds:    50,
		MovementAttempts:  2,
		MovementDistinct:  4,
		PauseRounds:       10,
		QueueSize:         8,
		WatchdogInterval:  400 * time.Millisecond,
		WatchdogThreshold: 1,
	}
}

// ConfigFromViper reads the driver configuration from the loaded config.
func ConfigFromViper() Config {
	ms := func(k string) time.Duration {
		return time.Duration(viper.GetInt(k)) * time.Millisecond
	}

	return Config{
		PollInterval:      ms(key.DriverPollInterval),
		PollRounds:        viper.GetInt(key.DriverPollRounds),
		AfterPauseDelay:   ms(key.DriverAfterPauseDelay),
		MovementInterval:  ms(key.DriverMovementInterval),
		MovementRounds:    viper.GetInt(key.DriverMovementRounds),
		MovementAttempts:  viper.GetInt(key.DriverMovementAttempts),
		MovementDistinct:  viper.GetInt(key.DriverMovementDistinct),
		PauseRounds:       viper.GetInt(key.DriverPauseRounds),
		QueueSize:         viper.GetInt(key.DriverQueueSize),
		WatchdogInterval:  ms(key.WatchdogInterval),
		WatchdogThreshold: viper.GetFloat64(key.WatchdogThreshold),
	}
}

// normalized replaces unusable values with defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()

	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	if c.PollRounds <= 0 {
		c.PollRounds = def.PollRounds
	}
	if c.AfterPauseDelay < 0 {
		c.AfterPauseDelay = def.AfterPauseDelay
	}
	if c.MovementInterval <= 0 {
		c.MovementInterval = def.MovementInterval
	}
	if c.MovementRounds <= 0 {
		c.MovementRounds = def.MovementRounds
	}
	if c.MovementAttempts <= 0 {
		c.MovementAttempts = def.MovementAttempts
	}
	if c.MovementDistinct <= 1 {
		c.MovementDistinct = def.MovementDistinct
	}
	if c.PauseRounds <= 0 {
		c.PauseRounds = def.PauseRounds
	}
	if c.QueueSize <= 0 {
		c.QueueSize = def.QueueSize
	}
	if c.WatchdogInterval <= 0 {
		c.WatchdogInterval = def.WatchdogInterval
	}
	if c.WatchdogThreshold <= 0 {
		c.WatchdogThreshold = def.WatchdogThreshold
	}

	return c
}
