package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/logging"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultMaxAttempts bounds the search for a free disambiguated name
const DefaultMaxAttempts = 1000

// Resolver finds collision-free destination paths for one run. It never
// returns a path that exists at call time, and never returns the same path
// twice within the run.
type Resolver struct {
	fs          types.FS
	token       string
	maxAttempts int
	claimed     map[string]struct{}
	collisions  int
	logger      zerolog.Logger
}

// NewResolver creates a resolver whose disambiguated names embed token,
// normally the run timestamp. maxAttempts <= 0 uses DefaultMaxAttempts.
func NewResolver(fs types.FS, token string, maxAttempts int) *Resolver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Resolver{
		fs:          fs,
		token:       token,
		maxAttempts: maxAttempts,
		claimed:     make(map[string]struct{}),
		logger:      logging.GetLogger("paths.resolver"),
	}
}

// WithLogger replaces the collision event logger
func (r *Resolver) WithLogger(logger zerolog.Logger) *Resolver {
	r.logger = logger
	return r
}

// Collisions returns how many collisions this resolver has disambiguated
func (r *Resolver) Collisions() int {
	return r.collisions
}

// ResolveDestination returns the path filename should be moved to inside dir.
// renamed reports whether the name had to be disambiguated.
//
// The first candidate is dir/filename. On collision the run token is inserted
// between stem and extension (report.pdf → report_<token>.pdf); if that is
// also taken a sequence number follows (report_<token>_1.pdf, ...).
func (r *Resolver) ResolveDestination(dir, filename string) (path string, renamed bool, err error) {
	original := filepath.Join(dir, filename)
	free, err := r.available(original)
	if err != nil {
		return "", false, err
	}
	if free {
		r.claim(original)
		return original, false, nil
	}

	stem, ext := SplitName(filename)
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		candidate := filepath.Join(dir, disambiguate(stem, ext, r.token, attempt))
		free, err := r.available(candidate)
		if err != nil {
			return "", false, err
		}
		if !free {
			continue
		}

		r.claim(candidate)
		r.collisions++
		r.logger.Warn().
			Str("file", filename).
			Str("existing", original).
			Str("renamed_to", filepath.Base(candidate)).
			Int("attempt", attempt).
			Msg("Destination exists, renamed to avoid overwrite")
		return candidate, true, nil
	}

	return "", false, errors.Newf(errors.ErrCollisionUnresolved,
		"no free name for %s in %s after %d attempts", filename, dir, r.maxAttempts).
		WithDetail("file", filename).
		WithDetail("dir", dir)
}

func disambiguate(stem, ext, token string, attempt int) string {
	if attempt == 0 {
		return fmt.Sprintf("%s_%s%s", stem, token, ext)
	}
	return fmt.Sprintf("%s_%s_%d%s", stem, token, attempt, ext)
}

// available reports whether path is neither on disk nor handed out already
func (r *Resolver) available(path string) (bool, error) {
	if _, taken := r.claimed[path]; taken {
		return false, nil
	}
	_, err := r.fs.Lstat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot check destination %s", path).
		WithDetail("path", path)
}

func (r *Resolver) claim(path string) {
	r.claimed[path] = struct{}{}
}
