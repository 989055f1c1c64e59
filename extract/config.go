/*
DESCRIPTION
  config.go defines Driver's tunables: the leveled logger it reports
  through, and the strict-epoch-reset option.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package extract

// Logger is the leveled-logging shape Driver and Compositor accept.
// github.com/ausocean/utils/logging.Logger satisfies it; so does any
// adapter a caller wants to supply instead.
type Logger interface {
	Debug(message string, params ...interface{})
	Info(message string, params ...interface{})
	Warning(message string, params ...interface{})
}

// Config holds Driver's tunables as a plain struct, modelled on
// revid/config.Config (no functional options — those fit higher-churn
// settings than this package needs).
type Config struct {
	// Logger receives Debug/Info/Warning calls as the Driver runs. A nil
	// Logger is valid and simply discards them.
	Logger Logger

	// StrictEpoch additionally treats a PCS carrying state EpochStart as
	// a reset signal, on top of the default empty-object-list rule, as a
	// belt-and-braces option for streams that rely on it.
	StrictEpoch bool
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}

func (c Config) logger() Logger {
	if c.Logger == nil {
		return nopLogger{}
	}
	return c.Logger
}
