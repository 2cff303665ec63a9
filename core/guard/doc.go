// Package guard contains panics raised by application handlers so that one
// faulty handler cannot take down the goroutine dispatching a request.
//
//	resp, ok := guard.Run(req.Context(), log, "users.show", func() handler.Outcome {
//		return h.Handle(req, data)
//	})
//	if !ok {
//		// the handler panicked; the panic was logged with its stack
//		resp = handler.Error(http.StatusInternalServerError)
//	}
//
// Try returns the panic as a PanicError instead of logging it.
package guard
