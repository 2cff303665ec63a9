package cookie

import (
	"net/http"
	"slices"
	"sync"
	"time"
)

// Jar holds the cookies of one request and tracks the changes made to them.
//
// The delta is the ordered set of additions and removals made since the jar
// was created or since the last ResetDelta. Only the delta is sent back to
// the client, so resetting it discards every change made so far.
type Jar struct {
	mu       sync.Mutex
	manager  *Manager
	original []*http.Cookie
	delta    []change
}

type change struct {
	cookie  *http.Cookie
	removed bool
}

func newJar(m *Manager, header http.Header) *Jar {
	r := http.Request{Header: header}
	return &Jar{
		manager:  m,
		original: r.Cookies(),
	}
}

// Get returns the current cookie named name, taking pending changes into account.
func (j *Jar) Get(name string) (*http.Cookie, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if i := j.deltaIndex(name); i >= 0 {
		if j.delta[i].removed {
			return nil, false
		}
		return j.delta[i].cookie, true
	}

	for _, c := range j.original {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Value returns the value of the cookie named name.
func (j *Jar) Value(name string) (string, error) {
	c, ok := j.Get(name)
	if !ok {
		return "", ErrCookieNotFound
	}
	return c.Value, nil
}

// Add adds or replaces a cookie. Attributes left unset take the manager defaults.
func (j *Jar) Add(c *http.Cookie) error {
	if c == nil || c.Name == "" {
		return ErrInvalidName
	}

	c = cloneCookie(c)
	j.manager.defaults.fill(c)

	header := c.String()
	if len(header) > j.manager.maxSize {
		return ErrCookieTooLarge{
			Name: c.Name,
			Size: len(header),
			Max:  j.manager.maxSize,
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.put(change{cookie: c})
	return nil
}

// Remove removes the cookie named name. A cookie the client sent is
// expired on the client; a cookie only added in this request is dropped.
func (j *Jar) Remove(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.sentByClient(name) {
		if i := j.deltaIndex(name); i >= 0 {
			j.delta = slices.Delete(j.delta, i, i+1)
		}
		return
	}

	c := &http.Cookie{
		Name:    name,
		Value:   "",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}
	j.manager.defaults.fill(c)
	j.put(change{cookie: c, removed: true})
}

// AddSigned adds a cookie whose value carries an HMAC signature.
func (j *Jar) AddSigned(c *http.Cookie) error {
	if c == nil || c.Name == "" {
		return ErrInvalidName
	}
	signed, err := j.manager.sign(c.Name, c.Value)
	if err != nil {
		return err
	}
	c = cloneCookie(c)
	c.Value = signed
	return j.Add(c)
}

// Signed returns the verified value of a signed cookie.
func (j *Jar) Signed(name string) (string, error) {
	raw, err := j.Value(name)
	if err != nil {
		return "", err
	}
	return j.manager.verify(name, raw)
}

// AddPrivate adds a cookie whose value is encrypted and authenticated.
func (j *Jar) AddPrivate(c *http.Cookie) error {
	if c == nil || c.Name == "" {
		return ErrInvalidName
	}
	sealed, err := j.manager.encrypt(c.Name, c.Value)
	if err != nil {
		return err
	}
	c = cloneCookie(c)
	c.Value = sealed
	return j.Add(c)
}

// Private returns the decrypted value of a private cookie.
func (j *Jar) Private(name string) (string, error) {
	raw, err := j.Value(name)
	if err != nil {
		return "", err
	}
	return j.manager.decrypt(name, raw)
}

// Delta returns the cookies to send to the client, in the order they were changed.
func (j *Jar) Delta() []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]*http.Cookie, 0, len(j.delta))
	for _, ch := range j.delta {
		out = append(out, cloneCookie(ch.cookie))
	}
	return out
}

// TakeDelta returns the delta and resets it.
func (j *Jar) TakeDelta() []*http.Cookie {
	out := j.Delta()
	j.ResetDelta()
	return out
}

// ResetDelta discards every change made since the last reset.
func (j *Jar) ResetDelta() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.delta = nil
}

func (j *Jar) put(ch change) {
	if i := j.deltaIndex(ch.cookie.Name); i >= 0 {
		j.delta[i] = ch
		return
	}
	j.delta = append(j.delta, ch)
}

func (j *Jar) deltaIndex(name string) int {
	return slices.IndexFunc(j.delta, func(ch change) bool { return ch.cookie.Name == name })
}

func (j *Jar) sentByClient(name string) bool {
	return slices.ContainsFunc(j.original, func(c *http.Cookie) bool { return c.Name == name })
}

func cloneCookie(c *http.Cookie) *http.Cookie {
	cc := *c
	return &cc
}
