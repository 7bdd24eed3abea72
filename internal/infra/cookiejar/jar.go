// Package cookiejar provides a file-backed implementation of domain.Slot
// that keeps each slot as an HTTP cookie.
package cookiejar

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/runoshun/tasklist/internal/domain"
)

const header = "# tasklist cookie jar: one Set-Cookie line per slot\n"

// Jar implements domain.Slot using a cookie file.
// Every line of the file is a Set-Cookie header value. Cookies are identified
// by name; the path is recorded but does not partition the jar.
type Jar struct {
	clock    domain.Clock
	path     string
	lockPath string
}

// Option configures a Jar.
type Option func(*Jar)

// WithClock overrides the clock used for expiry.
func WithClock(c domain.Clock) Option {
	return func(j *Jar) { j.clock = c }
}

// New creates a Jar for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string, opts ...Option) *Jar {
	j := &Jar{
		clock:    domain.RealClock{},
		path:     path,
		lockPath: path + ".lock",
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Path returns the cookie file path.
func (j *Jar) Path() string {
	return j.path
}

// Read returns the value of the cookie named key.
// Expired cookies are reported as missing.
func (j *Jar) Read(key string) ([]byte, bool, error) {
	lock, err := j.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, false, err
	}
	defer j.releaseLock(lock)

	cookies, err := j.read()
	if err != nil {
		return nil, false, err
	}

	now := j.clock.Now()
	for _, c := range cookies {
		if c.Name != key {
			continue
		}
		if expired(c, now) {
			return nil, false, nil
		}
		return []byte(c.Value), true, nil
	}
	return nil, false, nil
}

// Write replaces the cookie named key.
// opts.MaxAge is converted to an absolute expiry; <= 0 keeps the cookie forever.
// Other expired cookies are dropped from the file.
func (j *Jar) Write(key string, value []byte, opts domain.SlotOptions) error {
	cookie := &http.Cookie{
		Name:  key,
		Value: string(value),
		Path:  opts.Path,
	}
	now := j.clock.Now()
	if opts.MaxAge > 0 {
		cookie.Expires = now.Add(opts.MaxAge).UTC().Truncate(time.Second)
	}
	if err := cookie.Valid(); err != nil {
		return fmt.Errorf("invalid cookie %q: %w", key, err)
	}

	lock, err := j.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer j.releaseLock(lock)

	cookies, err := j.read()
	if err != nil {
		return err
	}

	kept := make([]*http.Cookie, 0, len(cookies)+1)
	for _, c := range cookies {
		if c.Name == key || expired(c, now) {
			continue
		}
		kept = append(kept, c)
	}
	kept = append(kept, cookie)

	return j.write(kept)
}

func expired(c *http.Cookie, now time.Time) bool {
	return !c.Expires.IsZero() && !now.Before(c.Expires)
}

func (j *Jar) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(j.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(j.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (j *Jar) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read parses the cookie file. A missing file is an empty jar.
func (j *Jar) read() ([]*http.Cookie, error) {
	content, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := http.ParseSetCookie(line)
		if err != nil {
			return nil, fmt.Errorf("parse cookie file line %d: %w", lineNo, err)
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan cookie file: %w", err)
	}
	return cookies, nil
}

func (j *Jar) write(cookies []*http.Cookie) error {
	var buf bytes.Buffer
	buf.WriteString(header)
	for _, c := range cookies {
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := j.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, j.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Jar implements Slot.
var _ domain.Slot = (*Jar)(nil)
