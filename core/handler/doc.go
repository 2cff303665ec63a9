// Package handler defines the values and contracts shared by route handlers,
// error catchers, and the dispatch engine.
//
// # Core Types
//
//	// Request is the parsed request: method, URL, headers, cookie jar,
//	// and the route currently serving it.
//	type Request struct{ ... }
//
//	// Data is the request body, passed along when a handler forwards.
//	type Data struct{ ... }
//
//	// Response is status, headers, and an empty, sized, or streamed body.
//	type Response struct{ ... }
//
//	// Outcome is Success(*Response), Error(status), or Forward(Forwarded).
//	type Outcome = outcome.Outcome[*Response, int, Forwarded]
//
// # Route Handlers
//
// A route handler answers with an Outcome. Forwarding declines the request
// and lets the next matching route try:
//
//	func showUser(req *handler.Request, data *handler.Data) handler.Outcome {
//		id, err := strconv.Atoi(req.Param("id"))
//		if err != nil {
//			return handler.Forward(data, http.StatusUnprocessableEntity)
//		}
//		user, ok := users.Find(id)
//		if !ok {
//			return handler.Error(http.StatusNotFound)
//		}
//		resp, err := handler.JSON(http.StatusOK, user)
//		if err != nil {
//			return handler.Error(http.StatusInternalServerError)
//		}
//		return handler.Success(resp)
//	}
//
//	route := router.Get("/users/{id}", handler.Func(showUser))
//
// # Error Handlers
//
// Catchers render responses for failed requests. Returning an error or a
// nil response marks the catcher itself as failed:
//
//	notFound := handler.ErrorHandlerFunc(func(status int, req *handler.Request) (*handler.Response, error) {
//		return handler.HTML(status, "<h1>Nothing here</h1>"), nil
//	})
//
// # Responses
//
// Handlers never set Content-Length, Server, or Set-Cookie: the engine
// derives them from the body size, its configuration, and the cookie jar.
//
//	handler.Text(http.StatusOK, "hello")
//	handler.Bytes(http.StatusOK, "image/png", png)
//	handler.Stream(http.StatusOK, "text/event-stream", events)
//
// A response can offer protocol upgrades; the engine picks one matching the
// request's Upgrade header and hands the connection to its IoHandler:
//
//	resp := handler.NewResponse(http.StatusOK)
//	resp.AddUpgrade("websocket", upgrade.WebSocket(echo))
package handler
