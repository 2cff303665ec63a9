// Package fairing implements lifecycle hooks attached to the dispatch engine
// and the server.
//
// A fairing declares the callbacks it wants in its Info and implements the
// matching interfaces:
//
//	KindRequest   OnRequest(req, data)    before routing
//	KindResponse  OnResponse(req, resp)   after a response exists, before finalization
//	KindLiftoff   OnLiftoff(ctx)          once the server listens
//	KindShutdown  OnShutdown(ctx)         when graceful shutdown begins
//
// Simple fairings can be built from functions:
//
//	fs := fairing.New(fairing.WithLogger(log))
//	fs.Attach(
//		fairing.OnRequest("trailing-slash", func(req *handler.Request, _ *handler.Data) {
//			...
//		}),
//		fairing.OnResponse("powered-by", func(_ *handler.Request, resp *handler.Response) {
//			resp.Header.Set("X-Powered-By", "Rocket")
//		}),
//	)
//
// Callbacks run one after another in attach order. A callback that panics is
// logged and skipped; the request continues.
package fairing
