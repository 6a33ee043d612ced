package config

// ConfigDiff describes what changed between two configs. The matcher index must
// be rebuilt when the matcher, pronouncer, or target list changed; the log
// level can be applied in place.
type ConfigDiff struct {
	LogLevelChanged   bool
	NewLogLevel       LogLevel
	MatcherChanged    bool
	PronouncerChanged bool
	TargetsChanged    bool
}

// RebuildRequired reports whether the matcher index has to be rebuilt to
// apply the new config.
func (d ConfigDiff) RebuildRequired() bool {
	return d.MatcherChanged || d.PronouncerChanged || d.TargetsChanged
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.LogLevel != new.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.LogLevel
	}
	if old.Matcher != new.Matcher {
		d.MatcherChanged = true
	}
	if old.Pronouncer != new.Pronouncer {
		d.PronouncerChanged = true
	}
	if old.TargetsFile != new.TargetsFile {
		d.TargetsChanged = true
	}
	return d
}
