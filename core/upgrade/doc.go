// Package upgrade provides I/O handlers that take over a connection after the
// dispatch engine negotiated a protocol upgrade.
//
// A route opts in by registering a handler on the response it returns. The
// response is sent as is to clients that did not ask for the protocol:
//
//	chat := upgrade.NewWebSocket(func(ctx context.Context, conn *websocket.Conn) error {
//		for {
//			_, msg, err := conn.ReadMessage()
//			if err != nil {
//				return nil
//			}
//			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
//				return err
//			}
//		}
//	}, upgrade.WithSubprotocols("chat.v1"))
//
//	r.Mount("/", router.Get("/chat", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
//		return handler.Success(chat.Attach(handler.Text(http.StatusUpgradeRequired, "websocket only")))
//	})))
//
// WebSocket handshakes are completed by gorilla/websocket, which validates the
// Sec-WebSocket headers and the request origin. Headers of the routed
// response, such as Set-Cookie and Server, are sent with the handshake.
//
// Raw handlers hijack the connection, write the 101 response themselves, and
// hand the stream to a ConnFunc:
//
//	tunnel := upgrade.Raw("tunnel", func(ctx context.Context, conn net.Conn, rw *bufio.ReadWriter) error {
//		_, err := io.Copy(upstream, rw)
//		return err
//	})
package upgrade
