package dispatch_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yonasBSD/Rocket/core/cookie"
	"github.com/yonasBSD/Rocket/core/dispatch"
	"github.com/yonasBSD/Rocket/core/fairing"
	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/router"
)

type recordingIO struct {
	header http.Header
	called bool
}

func (r *recordingIO) ServeIO(w http.ResponseWriter, _ *http.Request, header http.Header) error {
	r.called = true
	r.header = header
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

func formRequest() *handler.Request {
	h := http.Header{}
	h.Set("Content-Type", "application/x-www-form-urlencoded")
	return handler.NewRequest(http.MethodPost, "/item", handler.WithHeader(h))
}

func TestPreprocess_MethodOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		req    *handler.Request
		body   string
		method string
	}{
		{"put", formRequest(), "_method=PUT&name=x", http.MethodPut},
		{"lowercase", formRequest(), "_method=delete", http.MethodDelete},
		{"escaped name", formRequest(), "%5Fmethod=PATCH", http.MethodPatch},
		{"unknown method", formRequest(), "_method=BREW", http.MethodPost},
		{"not first field", formRequest(), "name=x&_method=PUT", http.MethodPost},
		{"beyond peek window", formRequest(), "_method=" + strings.Repeat(" ", 30) + "PUT", http.MethodPost},
		{"not a form", handler.NewRequest(http.MethodPost, "/item"), "_method=PUT", http.MethodPost},
		{"not a post", handler.NewRequest(http.MethodGet, "/item"), "_method=PUT", http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEngine(nil, nil)
			data := handler.DataFromString(tt.body)
			e.Preprocess(tt.req, data)
			assert.Equal(t, tt.method, tt.req.Method())

			rest, err := io.ReadAll(data)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(rest), "peeking must not consume the body")
		})
	}
}

func TestPreprocess_OverrideRoutes(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Delete("/item", text("deleted")),
		router.Post("/item", text("posted")),
	}, nil)

	resp := run(e, formRequest(), "_method=DELETE")
	assert.Equal(t, "deleted", readBody(t, resp))
}

func TestDispatch_ZeroTokenPreprocesses(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{router.Put("/item", text("put"))}, nil)

	req := formRequest()
	data := handler.DataFromString("_method=PUT")
	resp := e.Dispatch(dispatch.RequestToken{}, req, data)
	assert.Equal(t, "put", readBody(t, resp))
}

func TestUpgrade(t *testing.T) {
	t.Parallel()

	upgradable := func() *handler.Response {
		resp := handler.Text(http.StatusOK, "fallback")
		resp.AddUpgrade("websocket", &recordingIO{})
		return resp
	}
	withUpgrade := func(value string) *handler.Request {
		h := http.Header{}
		if value != "" {
			h.Set("Connection", "Upgrade")
			h.Set("Upgrade", value)
		}
		return handler.NewRequest(http.MethodGet, "/ws", handler.WithHeader(h))
	}

	e := newEngine(nil, nil)

	t.Run("negotiated", func(t *testing.T) {
		t.Parallel()
		resp := upgradable()
		resp.Header.Set("Content-Length", "8")

		proto, h, ok := e.Upgrade(withUpgrade("h2c, WebSocket"), resp)
		require.True(t, ok)
		assert.Equal(t, "websocket", proto)
		assert.NotNil(t, h)
		assert.Equal(t, http.StatusSwitchingProtocols, resp.Status)
		assert.Equal(t, "Upgrade", resp.Header.Get("Connection"))
		assert.Equal(t, "websocket", resp.Header.Get("Upgrade"))
		assert.Empty(t, resp.Header.Get("Content-Length"))
		assert.False(t, resp.Body().HasContent())
	})

	t.Run("unsupported protocol", func(t *testing.T) {
		t.Parallel()
		resp := upgradable()
		_, _, ok := e.Upgrade(withUpgrade("h2c"), resp)
		assert.False(t, ok)
		assert.Equal(t, http.StatusOK, resp.Status)
	})

	t.Run("no upgrade requested", func(t *testing.T) {
		t.Parallel()
		resp := upgradable()
		_, _, ok := e.Upgrade(withUpgrade(""), resp)
		assert.False(t, ok)
	})

	t.Run("nothing registered", func(t *testing.T) {
		t.Parallel()
		_, _, ok := e.Upgrade(withUpgrade("websocket"), handler.Text(http.StatusOK, "x"))
		assert.False(t, ok)
	})
}

func TestServeHTTP(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Get("/hello/{name}", handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
			resp := handler.Text(http.StatusOK, "hello "+req.Param("name"))
			resp.Header.Set("X-Request-Id", req.ID())
			return handler.Success(resp)
		})),
	}, nil)

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hello/rocket", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello rocket", rec.Body.String())
		assert.Equal(t, "12", rec.Header().Get("Content-Length"))
		assert.Equal(t, "Rocket", rec.Header().Get("Server"))
		assert.Len(t, rec.Header().Get("X-Request-Id"), 36, "generated ids are UUIDs")
	})

	t.Run("client request id", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/hello/id", nil)
		r.Header.Set("X-Request-Id", "abc-123")
		e.ServeHTTP(rec, r)
		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
	})

	t.Run("head", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/hello/rocket", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "12", rec.Header().Get("Content-Length"))
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/nope", nil)
		r.Header.Set("Accept", "application/json")
		e.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t,
			`{"error":{"code":404,"reason":"Not Found","description":"The requested resource could not be found."}}`,
			rec.Body.String())
	})
}

func TestServeHTTP_Form(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Put("/item", handler.Func(func(_ *handler.Request, data *handler.Data) handler.Outcome {
			b, _ := io.ReadAll(data.Open(1024))
			form, err := url.ParseQuery(string(b))
			if err != nil {
				return handler.Error(http.StatusBadRequest)
			}
			return handler.Success(handler.Text(http.StatusOK, form.Get("name")))
		}), router.WithFormat("form")),
	}, nil)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/item", strings.NewReader("_method=PUT&name=saturn"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	e.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "saturn", rec.Body.String())
}

func TestServeHTTP_Cookies(t *testing.T) {
	t.Parallel()

	manager, err := cookie.New([]string{strings.Repeat("k", 32)})
	require.NoError(t, err)

	e := newEngine([]*router.Route{
		router.Get("/login", handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
			if err := req.Cookies().AddPrivate(&http.Cookie{Name: "session", Value: "user-1"}); err != nil {
				return handler.Error(http.StatusInternalServerError)
			}
			return handler.Success(handler.Text(http.StatusOK, "in"))
		})),
		router.Get("/me", handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
			user, err := req.Cookies().Private("session")
			if err != nil {
				return handler.Error(http.StatusUnauthorized)
			}
			return handler.Success(handler.Text(http.StatusOK, user))
		})),
	}, nil, dispatch.WithCookieManager(manager))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "user-1", cookies[0].Value)

	rec = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})
	e.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServeHTTP_Upgrade(t *testing.T) {
	t.Parallel()

	upgrader := &recordingIO{}
	e := newEngine([]*router.Route{
		router.Get("/ws", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			resp := handler.Text(http.StatusUpgradeRequired, "upgrade required")
			resp.Header.Set("X-Extra", "kept")
			resp.AddUpgrade("echo", upgrader)
			return handler.Success(resp)
		})),
	}, nil)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Connection", "Upgrade")
	r.Header.Set("Upgrade", "echo")
	e.ServeHTTP(rec, r)

	require.True(t, upgrader.called)
	assert.Equal(t, http.StatusSwitchingProtocols, rec.Code)
	assert.Equal(t, "kept", upgrader.header.Get("X-Extra"))
	assert.Equal(t, "Rocket", upgrader.header.Get("Server"))
	assert.Empty(t, upgrader.header.Get("Upgrade"))
	assert.Empty(t, upgrader.header.Get("Connection"))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUpgradeRequired, rec.Code)
	assert.Equal(t, "upgrade required", rec.Body.String())
}

func TestServeHTTP_ClientIP(t *testing.T) {
	t.Parallel()

	whoami := router.Get("/ip", handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
		addr, ok := req.ClientIP()
		if !ok {
			return handler.Error(http.StatusInternalServerError)
		}
		return handler.Success(handler.Text(http.StatusOK, addr.String()))
	}))

	serve := func(e http.Handler) string {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/ip", nil)
		r.RemoteAddr = "10.0.0.1:4000"
		r.Header.Set("X-Real-IP", "203.0.113.7")
		r.Header.Set("Fly-Client-IP", "198.51.100.2")
		e.ServeHTTP(rec, r)
		return rec.Body.String()
	}

	tests := []struct {
		name string
		cfg  dispatch.Config
		want string
	}{
		{"default header", dispatch.Config{}, "203.0.113.7"},
		{"custom header", dispatch.Config{IPHeader: "Fly-Client-IP"}, "198.51.100.2"},
		{"disabled", dispatch.Config{IPHeader: "-"}, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := router.New()
			r.Mount("/", whoami)
			assert.Equal(t, tt.want, serve(dispatch.NewFromConfig(r, tt.cfg)))
		})
	}
}

func TestServeHTTP_InvalidStatus(t *testing.T) {
	t.Parallel()

	badCatcher := router.NewCatcher(http.StatusNotFound, handler.ErrorHandlerFunc(func(int, *handler.Request) (*handler.Response, error) {
		return handler.Text(0, "lost"), nil
	}))

	fs := fairing.New()
	fs.Attach(fairing.OnResponse("break status", func(req *handler.Request, resp *handler.Response) {
		if req.Path() == "/broken-by-fairing" {
			resp.Status = 1000
		}
	}))

	e := newEngine([]*router.Route{
		router.Get("/zero", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			return handler.Success(handler.NewResponse(0))
		})),
		router.Get("/huge", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			return handler.Success(handler.Text(1000, "huge"))
		})),
		router.Get("/broken-by-fairing", text("fine")),
	}, []*router.Catcher{badCatcher}, dispatch.WithFairings(fs))

	tests := []struct {
		name string
		path string
	}{
		{"route zero status", "/zero"},
		{"route status above 999", "/huge"},
		{"catcher invalid status", "/missing"},
		{"fairing invalid status", "/broken-by-fairing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NotPanics(t, func() {
				e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			})
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

func TestServeHTTP_EncodedSegments(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Get("/files/{name}", handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
			return handler.Success(handler.Text(http.StatusOK, req.Param("name")))
		})),
	}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/a%2Fb", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a/b", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/a/b", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
