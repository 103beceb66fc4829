package config

import "github.com/spf13/pflag"

// Flags binds the command-line overrides onto a pflag set (typically a
// cobra command's persistent flags). Only flags the user actually set end
// up in [Flags.Overrides].
type Flags struct {
	fs  *pflag.FlagSet
	cfg StructuredConfig

	fingerprinting bool
}

// RegisterFlags defines the override flags on fs.
//
// Flags:
//
//	-c/--config           config file (JSON or YAML)
//	--backend             storage backend: memory|file|sqlite|redis
//	--storage-path        store file or sqlite database path
//	--redis-address       redis host:port
//	--quota-bytes         storage capacity in bytes
//	--session-expiration  session token lifetime (e.g. 30m)
//	--idle-timeout        idle logout after (e.g. 15m)
//	--max-failed-attempts failures before lock
//	--fingerprinting      bind device trust to this host
//	--log-level           trace|debug|info|warn|error
//	--log-file            log file path
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVarP(&f.cfg.JSONFilePath, "config", "c", "", "Config file path (JSON or YAML)")
	fs.StringVar(&f.cfg.Storage.Backend, "backend", "", "Storage backend: memory|file|sqlite|redis")
	fs.StringVar(&f.cfg.Storage.Path, "storage-path", "", "Store file or SQLite database path")
	fs.StringVar(&f.cfg.Storage.RedisAddress, "redis-address", "", "Redis address host:port")
	fs.Int64Var(&f.cfg.Storage.QuotaBytes, "quota-bytes", 0, "Storage capacity in bytes")
	fs.DurationVar(&f.cfg.Auth.SessionExpiration, "session-expiration", 0, "Session lifetime (e.g., 30m)")
	fs.DurationVar(&f.cfg.Auth.IdleTimeout, "idle-timeout", 0, "Idle timeout (e.g., 15m)")
	fs.IntVar(&f.cfg.Auth.MaxFailedAttempts, "max-failed-attempts", 0, "Failed attempts before lock")
	fs.BoolVar(&f.fingerprinting, "fingerprinting", true, "Bind remembered devices to this host")
	fs.StringVar(&f.cfg.Log.Level, "log-level", "", "Log level")
	fs.StringVar(&f.cfg.Log.File, "log-file", "", "Log file path")

	return f
}

// Overrides returns the flag layer for [GetStructuredConfig]. Call it after
// the flag set has been parsed.
func (f *Flags) Overrides() *StructuredConfig {
	out := f.cfg
	if f.fs.Changed("fingerprinting") {
		v := f.fingerprinting
		out.Auth.EnableDeviceFingerprinting = &v
	}
	return &out
}
