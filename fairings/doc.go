// Package fairings provides ready-made fairings for common cross-cutting
// concerns: security headers, request logging, and CORS.
//
// All of them are attached like any other fairing:
//
//	set := fairing.New()
//	set.Attach(
//		fairings.Logging(log),
//		fairings.Shield(),
//		fairings.CORSWithConfig(fairings.CORSConfig{
//			AllowOrigins: []string{"https://app.example.com"},
//		}),
//	)
//	engine := dispatch.New(r, dispatch.WithFairings(set))
//
// Response fairings run in attach order after the response is built, including
// responses produced by catchers. Shield never replaces a header the route
// already set. CORS answers preflight requests itself, so no OPTIONS routes
// are needed.
package fairings
