package dispatch

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/yonasBSD/Rocket/core/catcher"
	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/logger"
)

// Upgrade negotiates a protocol upgrade for a finalized response. When req
// asks for a protocol that resp registered, resp becomes a 101 Switching
// Protocols response and the protocol's I/O handler is returned. Otherwise
// resp is left as is and should be sent normally.
func (e *Engine) Upgrade(req *handler.Request, resp *handler.Response) (string, handler.IoHandler, bool) {
	requested := req.Header().Values("Upgrade")
	if len(requested) == 0 || !resp.HasUpgrades() {
		return "", nil, false
	}

	proto, h, ok := resp.SearchUpgrade(requested)
	if !ok {
		e.logger.InfoContext(req.Context(), "request wants upgrade but no i/o handler matched; refusing",
			logger.Key("requested", strings.Join(requested, ", ")), logger.RequestID(req.ID()))
		return "", nil, false
	}

	resp.Status = http.StatusSwitchingProtocols
	resp.Body().Clear()
	resp.Header.Del("Content-Length")
	resp.Header.Set("Connection", "Upgrade")
	resp.Header.Set("Upgrade", proto)

	e.logger.DebugContext(req.Context(), "upgrading connection",
		logger.Protocol(proto), logger.RequestID(req.ID()))
	return proto, h, true
}

// ServeHTTP implements http.Handler: it builds the request, preprocesses and
// dispatches it, and writes the response or hands the connection to an
// upgrade handler.
func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := ""
	if e.requestIDHeader != "" {
		id = r.Header.Get(e.requestIDHeader)
	}
	if id == "" {
		id = uuid.NewString()
	}

	req := handler.FromHTTP(r, e.cookies.NewJar(r.Header), handler.WithRequestID(id), handler.WithIPHeader(e.ipHeader))
	data := handler.NewData(r.Body)

	token := e.Preprocess(req, data)
	resp := e.Dispatch(token, req, data)

	if proto, h, ok := e.Upgrade(req, resp); ok {
		header := resp.Header.Clone()
		header.Del("Connection")
		header.Del("Upgrade")
		if err := h.ServeIO(w, r, header); err != nil {
			e.logger.ErrorContext(r.Context(), ErrUpgradeFailed.Error(),
				logger.Protocol(proto), logger.Error(err), logger.RequestID(id))
		}
		return
	}

	e.write(w, req, resp)
}

func (e *Engine) write(w http.ResponseWriter, req *handler.Request, resp *handler.Response) {
	if !validStatus(resp.Status) {
		e.logger.ErrorContext(req.Context(), "response fairing left an invalid status; sending 500",
			logger.StatusCode(resp.Status), logger.RequestID(req.ID()))
		resp = catcher.Default(http.StatusInternalServerError, req)
	}

	h := w.Header()
	for k, vs := range resp.Header {
		h[k] = append([]string(nil), vs...)
	}
	w.WriteHeader(resp.Status)

	body := resp.Body()
	if !body.HasContent() {
		return
	}
	reader := body.Reader()
	if c, ok := reader.(io.Closer); ok {
		defer c.Close()
	}
	if _, err := io.Copy(w, reader); err != nil && !errors.Is(err, http.ErrBodyNotAllowed) {
		e.logger.WarnContext(req.Context(), "writing response body failed",
			logger.Error(err), logger.RequestID(req.ID()))
	}
}
