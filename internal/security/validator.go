// Package security validates paths before any mutating filesystem
// operation. Validation is pure: it reads metadata but never changes
// anything. Every cleanup or toggle operation must pass all layers here
// before acting, and a failure rejects only the single item being checked.
package security

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"
)

// Validator checks a path against a fixed pipeline of security layers:
//
//  1. traversal sequences in the raw input
//  2. absolute-path requirement
//  3. canonicalization (symlinks resolved; failure is a hard reject)
//  4. system-critical denylist, context-aware
//  5. filesystem boundary (home directory or shared cache roots)
//  6. ownership and writability
//  7. existence
//
// The layers run in this order because the later checks are more expensive
// and only meaningful once the path is syntactically and structurally safe.
type Validator struct {
	home        string
	sharedRoots []string
	uid         int
}

// NewValidator creates a Validator bound to the invoking user's home
// directory.
func NewValidator() (*Validator, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewValidatorAt(home), nil
}

// NewValidatorAt creates a Validator with an explicit home boundary.
func NewValidatorAt(home string) *Validator {
	return &Validator{
		home:        filepath.Clean(home),
		sharedRoots: allowedSharedRoots,
		uid:         os.Getuid(),
	}
}

// Validate runs the full pipeline for one path under the given operation
// context, returning a typed *Error on the first failing layer.
func (v *Validator) Validate(path string, ctx Context) error {
	if err := checkTraversal(path); err != nil {
		return err
	}

	if !filepath.IsAbs(path) {
		return &Error{Kind: KindNotAbsolute, Path: path}
	}

	// Resolving symlinks here is load-bearing: a link inside the home
	// directory can point at /etc, and only the canonical target is safe
	// to compare against the denylist and boundary below.
	canonical, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Error{Kind: KindDoesNotExist, Path: path, Err: err}
		}
		return &Error{Kind: KindUnresolvable, Path: path, Err: err}
	}
	canonical = filepath.Clean(canonical)

	if err := v.checkSystemCritical(canonical, ctx); err != nil {
		return err
	}

	if err := v.checkBoundaries(canonical); err != nil {
		return err
	}

	if err := v.checkPermissions(canonical); err != nil {
		return err
	}

	if _, err := os.Lstat(canonical); err != nil {
		return &Error{Kind: KindDoesNotExist, Path: path, Err: err}
	}

	return nil
}

// checkTraversal rejects raw inputs carrying traversal sequences, including
// the backslash and percent-encoded spellings, before any canonicalization
// happens.
func checkTraversal(path string) error {
	lower := strings.ToLower(path)
	patterns := []string{"..", "../", "..\\", "/../", "\\..\\", "%2e%2e%2f", "%2e%2e/"}
	for _, p := range patterns {
		if strings.Contains(path, p) || strings.Contains(lower, p) {
			return &Error{Kind: KindTraversal, Path: path}
		}
	}
	return nil
}

func (v *Validator) checkSystemCritical(canonical string, ctx Context) error {
	for _, prefix := range alwaysForbidden {
		if underPrefix(canonical, prefix) {
			return &Error{Kind: KindSystemCritical, Path: canonical}
		}
	}
	for _, prefix := range contextForbidden[ctx] {
		if underPrefix(canonical, prefix) {
			return &Error{Kind: KindSystemCritical, Path: canonical}
		}
	}
	if canonical == "/" {
		return &Error{Kind: KindSystemCritical, Path: canonical}
	}
	return nil
}

func (v *Validator) checkBoundaries(canonical string) error {
	if underPrefix(canonical, v.home) && canonical != v.home {
		return nil
	}
	for _, root := range v.sharedRoots {
		if underPrefix(canonical, root) {
			return nil
		}
	}
	return &Error{Kind: KindOutsideBoundaries, Path: canonical}
}

// checkPermissions requires the resolved path to be owned by the invoking
// user (root excepted) and writable by its owner.
func (v *Validator) checkPermissions(canonical string) error {
	info, err := os.Lstat(canonical)
	if err != nil {
		if os.IsNotExist(err) {
			return &Error{Kind: KindDoesNotExist, Path: canonical, Err: err}
		}
		return &Error{Kind: KindPermissionDenied, Path: canonical, Err: err}
	}

	if v.uid == 0 {
		return nil
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return &Error{Kind: KindPermissionDenied, Path: canonical}
	}
	if int(stat.Uid) != v.uid {
		return &Error{Kind: KindPermissionDenied, Path: canonical}
	}
	if info.Mode().Perm()&0o200 == 0 {
		return &Error{Kind: KindPermissionDenied, Path: canonical}
	}
	return nil
}

// underPrefix reports whether path equals prefix or lives beneath it.
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// CurrentUserIsRoot reports whether the process runs as the superuser.
func CurrentUserIsRoot() bool {
	u, err := user.Current()
	return err == nil && u.Uid == "0"
}
