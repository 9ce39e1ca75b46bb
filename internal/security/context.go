package security

// Context is the operation class being validated. The class decides which
// path prefixes are forbidden on top of the always-forbidden set.
type Context int

const (
	// ContextDeletion covers general user-initiated deletion.
	ContextDeletion Context = iota
	// ContextCacheCleanup covers cache directory cleanup.
	ContextCacheCleanup
	// ContextPackageCleanup covers package-manager cache cleanup.
	ContextPackageCleanup
	// ContextLogCleanup covers log file cleanup.
	ContextLogCleanup
	// ContextStartupManagement covers startup-program toggling.
	ContextStartupManagement
)

func (c Context) String() string {
	switch c {
	case ContextDeletion:
		return "deletion"
	case ContextCacheCleanup:
		return "cache_cleanup"
	case ContextPackageCleanup:
		return "package_cleanup"
	case ContextLogCleanup:
		return "log_cleanup"
	case ContextStartupManagement:
		return "startup_management"
	default:
		return "unknown"
	}
}

// alwaysForbidden prefixes are rejected in every context.
var alwaysForbidden = []string{
	"/bin", "/boot", "/dev", "/etc", "/lib", "/lib64",
	"/proc", "/run", "/sbin", "/sys",
	"/usr/bin", "/usr/sbin", "/usr/lib", "/usr/local/bin",
	"/var/lib", "/var/run", "/var/lock", "/var/spool",
	"/root", "/home/root",
}

// contextForbidden narrows further per operation class. The table form keeps
// the denylist auditable in one place.
var contextForbidden = map[Context][]string{
	ContextDeletion:          {"/usr", "/opt", "/var"},
	ContextCacheCleanup:      {"/etc", "/usr/bin"},
	ContextPackageCleanup:    {"/etc"},
	ContextLogCleanup:        {},
	ContextStartupManagement: {},
}

// allowedSharedRoots are the system locations reachable outside the home
// directory boundary, for shared caches and scratch space.
var allowedSharedRoots = []string{"/var/cache", "/tmp"}
