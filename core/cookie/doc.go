// Package cookie provides the per-request cookie jar used by the dispatch
// engine, with delta tracking, signed cookies, and private (encrypted) cookies.
//
// # Features
//
//   - Delta tracking: only cookies added or removed during the request are sent back
//   - Delta reset, used when a failed route's changes must not reach the client
//   - HMAC-SHA256 signed cookies for tamper detection
//   - AES-256-GCM private cookies bound to the cookie name
//   - HKDF key derivation from configured secrets
//   - Key rotation: the first secret writes, all secrets read
//   - 4KB size limit enforcement
//   - Secure defaults (HttpOnly, SameSite=Lax, Path=/)
//   - Environment-based configuration
//
// # Basic Usage
//
//	manager, err := cookie.New([]string{"your-32-char-secret-key-here!!!!"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	jar := manager.NewJar(r.Header)
//
//	// Read a cookie sent by the client
//	if c, ok := jar.Get("theme"); ok {
//		fmt.Println(c.Value)
//	}
//
//	// Change cookies; only these changes are emitted as Set-Cookie headers
//	jar.Add(&http.Cookie{Name: "theme", Value: "dark"})
//	jar.Remove("legacy")
//
//	for _, c := range jar.TakeDelta() {
//		w.Header().Add("Set-Cookie", c.String())
//	}
//
// # Signed and Private Cookies
//
//	jar.AddSigned(&http.Cookie{Name: "uid", Value: "42"})
//	uid, err := jar.Signed("uid")
//
//	jar.AddPrivate(&http.Cookie{Name: "session", Value: token})
//	token, err := jar.Private("session")
//
// Both fail with ErrNoSecret when the manager has no secrets.
//
// # Configuration
//
//	type Config struct {
//		Secrets  string        `env:"COOKIE_SECRETS"`   // comma-separated
//		Path     string        `env:"COOKIE_PATH" envDefault:"/"`
//		Domain   string        `env:"COOKIE_DOMAIN"`
//		MaxAge   int           `env:"COOKIE_MAX_AGE"`
//		Secure   bool          `env:"COOKIE_SECURE"`
//		HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
//		SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"`
//		MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
//	}
//
//	manager, err := cookie.NewFromConfig(cfg)
//
// # Concurrency
//
// A Manager is immutable and shared by all requests. A Jar belongs to one
// request; its methods are nevertheless safe for concurrent use.
package cookie
