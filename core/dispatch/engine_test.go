package dispatch_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/yonasBSD/Rocket/core/dispatch"
	"github.com/yonasBSD/Rocket/core/fairing"
	"github.com/yonasBSD/Rocket/core/handler"
	"github.com/yonasBSD/Rocket/core/router"
)

func newEngine(routes []*router.Route, catchers []*router.Catcher, opts ...dispatch.Option) *dispatch.Engine {
	r := router.New()
	r.Mount("/", routes...)
	r.Register("/", catchers...)
	return dispatch.New(r, opts...)
}

func run(e *dispatch.Engine, req *handler.Request, body string) *handler.Response {
	data := handler.DataFromString(body)
	token := e.Preprocess(req, data)
	return e.Dispatch(token, req, data)
}

func get(e *dispatch.Engine, method, path string) *handler.Response {
	return run(e, handler.NewRequest(method, path), "")
}

func readBody(t *testing.T, resp *handler.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body().Reader())
	require.NoError(t, err)
	return string(b)
}

func text(s string) handler.Handler {
	return handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
		return handler.Success(handler.Text(http.StatusOK, s))
	})
}

func status(code int) handler.Handler {
	return handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
		return handler.Error(code)
	})
}

func counted(n *atomic.Int32, h handler.Handler) handler.Handler {
	return handler.Func(func(req *handler.Request, data *handler.Data) handler.Outcome {
		n.Add(1)
		return h.Handle(req, data)
	})
}

var forward = handler.Func(func(_ *handler.Request, data *handler.Data) handler.Outcome {
	return handler.NotFound(data)
})

var panics = handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
	panic("handler exploded")
})

func TestDispatch_Totality(t *testing.T) {
	t.Parallel()

	panicking := handler.ErrorHandlerFunc(func(int, *handler.Request) (*handler.Response, error) {
		panic("catcher exploded")
	})

	engines := map[string]*dispatch.Engine{
		"empty": newEngine(nil, nil),
		"panicking route": newEngine([]*router.Route{router.Any("/*", panics)}, nil),
		"panicking everything": newEngine(
			[]*router.Route{router.Any("/*", panics)},
			[]*router.Catcher{router.NewDefaultCatcher(panicking)},
		),
	}

	for name, e := range engines {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodDelete} {
				for _, path := range []string{"/", "/a/b/c", "/%zz"} {
					var resp *handler.Response
					require.NotPanics(t, func() { resp = get(e, method, path) })
					require.NotNil(t, resp)
					assert.GreaterOrEqual(t, resp.Status, 400)
				}
			}
		})
	}
}

func TestDispatch_NoRoutes(t *testing.T) {
	t.Parallel()

	resp := get(newEngine(nil, nil), http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Contains(t, readBody(t, resp), "404")
}

func TestDispatch_ForwardOrdering(t *testing.T) {
	t.Parallel()

	t.Run("falls through forwards", func(t *testing.T) {
		t.Parallel()
		var one, two, three atomic.Int32
		e := newEngine([]*router.Route{
			router.Get("/x", counted(&three, text("three")), router.WithRank(3)),
			router.Get("/x", counted(&one, forward), router.WithRank(1)),
			router.Get("/x", counted(&two, forward), router.WithRank(2)),
		}, nil)

		resp := get(e, http.MethodGet, "/x")
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "three", readBody(t, resp))
		assert.Equal(t, int32(1), one.Load())
		assert.Equal(t, int32(1), two.Load())
		assert.Equal(t, int32(1), three.Load())
	})

	t.Run("first success stops", func(t *testing.T) {
		t.Parallel()
		var one, two, three atomic.Int32
		e := newEngine([]*router.Route{
			router.Get("/x", counted(&one, text("one")), router.WithRank(1)),
			router.Get("/x", counted(&two, text("two")), router.WithRank(2)),
			router.Get("/x", counted(&three, text("three")), router.WithRank(3)),
		}, nil)

		resp := get(e, http.MethodGet, "/x")
		assert.Equal(t, "one", readBody(t, resp))
		assert.Equal(t, int32(1), one.Load())
		assert.Zero(t, two.Load())
		assert.Zero(t, three.Load())
	})

	t.Run("error stops", func(t *testing.T) {
		t.Parallel()
		var after atomic.Int32
		e := newEngine([]*router.Route{
			router.Get("/x", status(http.StatusForbidden), router.WithRank(1)),
			router.Get("/x", counted(&after, text("never")), router.WithRank(2)),
		}, nil)

		resp := get(e, http.MethodGet, "/x")
		assert.Equal(t, http.StatusForbidden, resp.Status)
		assert.Zero(t, after.Load())
	})

	t.Run("last forward status wins", func(t *testing.T) {
		t.Parallel()
		unauthorized := handler.Func(func(_ *handler.Request, data *handler.Data) handler.Outcome {
			return handler.Forward(data, http.StatusUnauthorized)
		})
		e := newEngine([]*router.Route{
			router.Get("/x", forward, router.WithRank(1)),
			router.Get("/x", unauthorized, router.WithRank(2)),
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, get(e, http.MethodGet, "/x").Status)
	})
}

func TestDispatch_ForwardPassesData(t *testing.T) {
	t.Parallel()

	first := handler.Func(func(_ *handler.Request, data *handler.Data) handler.Outcome {
		buf := make([]byte, 3)
		_, _ = io.ReadFull(data, buf)
		return handler.NotFound(data)
	})
	second := handler.Func(func(_ *handler.Request, data *handler.Data) handler.Outcome {
		rest, _ := io.ReadAll(data)
		return handler.Success(handler.Text(http.StatusOK, string(rest)))
	})

	e := newEngine([]*router.Route{
		router.Post("/x", first, router.WithRank(1)),
		router.Post("/x", second, router.WithRank(2)),
	}, nil)

	resp := run(e, handler.NewRequest(http.MethodPost, "/x"), "hello world")
	assert.Equal(t, "lo world", readBody(t, resp))
}

func TestDispatch_AttachesRoute(t *testing.T) {
	t.Parallel()

	var seen []string
	record := func(next handler.Handler) handler.Handler {
		return handler.Func(func(req *handler.Request, data *handler.Data) handler.Outcome {
			seen = append(seen, req.Route().Name+":"+req.Param("id"))
			return next.Handle(req, data)
		})
	}

	e := newEngine([]*router.Route{
		router.Get("/users/{id}", record(forward), router.WithName("first"), router.WithRank(1)),
		router.Get("/users/{id}", record(text("ok")), router.WithName("second"), router.WithRank(2)),
	}, nil)

	get(e, http.MethodGet, "/users/7")
	assert.Equal(t, []string{"first:7", "second:7"}, seen)
}

func TestDispatch_HeadFallback(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	e := newEngine([]*router.Route{
		router.Get("/x", counted(&calls, text("hello"))),
	}, nil)

	getResp := get(e, http.MethodGet, "/x")
	require.Equal(t, http.StatusOK, getResp.Status)
	getLength := getResp.Header.Get("Content-Length")
	require.Equal(t, "5", getLength)

	req := handler.NewRequest(http.MethodHead, "/x")
	resp := run(e, req, "")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.False(t, resp.Body().HasContent())
	assert.Empty(t, readBody(t, resp))
	assert.Equal(t, getLength, resp.Header.Get("Content-Length"))
	assert.Equal(t, http.MethodGet, req.Method(), "method is rewritten for the retry")
	assert.Equal(t, int32(2), calls.Load())
}

func TestDispatch_HeadRouteWins(t *testing.T) {
	t.Parallel()

	var getCalls atomic.Int32
	e := newEngine([]*router.Route{
		router.Head("/x", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			resp := handler.NewResponse(http.StatusOK)
			resp.Header.Set("X-Head", "yes")
			return handler.Success(resp)
		})),
		router.Get("/x", counted(&getCalls, text("hello"))),
	}, nil)

	resp := get(e, http.MethodHead, "/x")
	assert.Equal(t, "yes", resp.Header.Get("X-Head"))
	assert.Zero(t, getCalls.Load())
}

func TestDispatch_HeadRetriedOnce(t *testing.T) {
	t.Parallel()

	var getCalls atomic.Int32
	e := newEngine([]*router.Route{
		router.Get("/x", counted(&getCalls, forward)),
	}, nil)

	resp := get(e, http.MethodHead, "/x")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, int32(1), getCalls.Load())
	assert.False(t, resp.Body().HasContent(), "HEAD error responses have no body")
}

func TestDispatch_NoContent(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Delete("/x", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			resp := handler.Text(http.StatusNoContent, "ignored")
			resp.Header.Set("Content-Length", "7")
			return handler.Success(resp)
		})),
	}, nil)

	resp := get(e, http.MethodDelete, "/x")
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.False(t, resp.Body().HasContent())
	_, known := resp.Body().Size()
	assert.False(t, known)
	assert.Empty(t, resp.Header.Values("Content-Length"))
}

func TestDispatch_NotModified(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Get("/x", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			resp := handler.Text(http.StatusNotModified, "cached")
			resp.Header.Set("ETag", `"v1"`)
			resp.Header.Set("Cache-Control", "max-age=60")
			return handler.Success(resp)
		})),
	}, nil)

	resp := get(e, http.MethodGet, "/x")
	assert.Equal(t, http.StatusNotModified, resp.Status)
	assert.Empty(t, readBody(t, resp))
	assert.Equal(t, `"v1"`, resp.Header.Get("ETag"))
	assert.Equal(t, "max-age=60", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestDispatch_CatcherEscalationBound(t *testing.T) {
	t.Parallel()

	var invocations, notFound, internal atomic.Int32
	boom := func(n *atomic.Int32) handler.ErrorHandler {
		return handler.ErrorHandlerFunc(func(int, *handler.Request) (*handler.Response, error) {
			invocations.Add(1)
			n.Add(1)
			panic("catcher exploded")
		})
	}

	e := newEngine(nil, []*router.Catcher{
		router.NewCatcher(http.StatusNotFound, boom(&notFound)),
		router.NewCatcher(http.StatusInternalServerError, boom(&internal)),
	})

	resp := get(e, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, int32(2), invocations.Load())
	assert.Equal(t, int32(1), notFound.Load())
	assert.Equal(t, int32(1), internal.Load())
}

func TestDispatch_CatcherFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handler     handler.ErrorHandlerFunc
		invocations int32
	}{
		{
			name: "error result",
			handler: func(int, *handler.Request) (*handler.Response, error) {
				return nil, errors.New("cannot render")
			},
			invocations: 2,
		},
		{
			name: "nil response",
			handler: func(int, *handler.Request) (*handler.Response, error) {
				return nil, nil
			},
			invocations: 2,
		},
		{
			name: "zero status",
			handler: func(int, *handler.Request) (*handler.Response, error) {
				return handler.NewResponse(0), nil
			},
			invocations: 2,
		},
		{
			name: "status above 999",
			handler: func(int, *handler.Request) (*handler.Response, error) {
				return handler.Text(1000, "too big"), nil
			},
			invocations: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var calls atomic.Int32
			h := handler.ErrorHandlerFunc(func(code int, req *handler.Request) (*handler.Response, error) {
				calls.Add(1)
				return tt.handler(code, req)
			})

			e := newEngine(nil, []*router.Catcher{router.NewDefaultCatcher(h)})
			resp := get(e, http.MethodGet, "/missing")
			assert.Equal(t, http.StatusInternalServerError, resp.Status)
			assert.Equal(t, tt.invocations, calls.Load())
		})
	}
}

func TestDispatch_CatcherEscalationWithoutInternalCatcher(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	e := newEngine(nil, []*router.Catcher{
		router.NewCatcher(http.StatusNotFound, handler.ErrorHandlerFunc(func(int, *handler.Request) (*handler.Response, error) {
			calls.Add(1)
			return nil, errors.New("broken")
		})),
	})

	resp := get(e, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDispatch_InternalErrorCatcherRunsOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	e := newEngine(
		[]*router.Route{router.Get("/x", panics)},
		[]*router.Catcher{
			router.NewCatcher(http.StatusInternalServerError, handler.ErrorHandlerFunc(func(int, *handler.Request) (*handler.Response, error) {
				calls.Add(1)
				panic("again")
			})),
		},
	)

	resp := get(e, http.MethodGet, "/x")
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDispatch_CatcherResponse(t *testing.T) {
	t.Parallel()

	e := newEngine(
		[]*router.Route{router.Get("/x", status(http.StatusTeapot))},
		[]*router.Catcher{
			router.NewCatcher(http.StatusTeapot, handler.ErrorHandlerFunc(func(code int, req *handler.Request) (*handler.Response, error) {
				return handler.Text(code, fmt.Sprintf("%d at %s", code, req.Path())), nil
			})),
		},
	)

	resp := get(e, http.MethodGet, "/x")
	assert.Equal(t, http.StatusTeapot, resp.Status)
	assert.Equal(t, "418 at /x", readBody(t, resp))
	assert.Equal(t, "9", resp.Header.Get("Content-Length"))
}

func TestDispatch_CookieIsolation(t *testing.T) {
	t.Parallel()

	setsCookie := func(then handler.Outcome) handler.Handler {
		return handler.Func(func(req *handler.Request, data *handler.Data) handler.Outcome {
			_ = req.Cookies().Add(&http.Cookie{Name: "a", Value: "1"})
			if then.IsForward() {
				return handler.NotFound(data)
			}
			return then
		})
	}

	t.Run("failed attempt does not leak", func(t *testing.T) {
		t.Parallel()
		e := newEngine([]*router.Route{
			router.Get("/x", setsCookie(handler.NotFound(nil)), router.WithRank(1)),
			router.Get("/x", status(http.StatusForbidden), router.WithRank(2)),
		}, nil)

		resp := get(e, http.MethodGet, "/x")
		assert.Equal(t, http.StatusForbidden, resp.Status)
		for _, v := range resp.Header.Values("Set-Cookie") {
			assert.False(t, strings.HasPrefix(v, "a="), "leaked cookie %q", v)
		}
	})

	t.Run("successful attempt keeps cookies", func(t *testing.T) {
		t.Parallel()
		e := newEngine([]*router.Route{
			router.Get("/x", setsCookie(handler.Success(handler.Text(http.StatusOK, "ok")))),
		}, nil)

		resp := get(e, http.MethodGet, "/x")
		require.Len(t, resp.Header.Values("Set-Cookie"), 1)
		assert.True(t, strings.HasPrefix(resp.Header.Get("Set-Cookie"), "a=1"))
	})

	t.Run("catcher cookies are kept", func(t *testing.T) {
		t.Parallel()
		e := newEngine(
			[]*router.Route{router.Get("/x", setsCookie(handler.Error(http.StatusBadRequest)))},
			[]*router.Catcher{
				router.NewDefaultCatcher(handler.ErrorHandlerFunc(func(code int, req *handler.Request) (*handler.Response, error) {
					_ = req.Cookies().Add(&http.Cookie{Name: "flash", Value: "oops"})
					return handler.Text(code, "bad"), nil
				})),
			},
		)

		resp := get(e, http.MethodGet, "/x")
		cookies := resp.Header.Values("Set-Cookie")
		require.Len(t, cookies, 1)
		assert.True(t, strings.HasPrefix(cookies[0], "flash=oops"))
	})
}

func TestDispatch_PanicIsolation(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Get("/panic", panics),
		router.Get("/ok/{n}", handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
			return handler.Success(handler.Text(http.StatusOK, req.Param("n")))
		})),
	}, nil)

	var g errgroup.Group
	for i := range 64 {
		g.Go(func() error {
			if i%2 == 0 {
				resp := get(e, http.MethodGet, "/panic")
				if resp.Status != http.StatusInternalServerError {
					return fmt.Errorf("panic request %d: status %d", i, resp.Status)
				}
				return nil
			}

			want := fmt.Sprint(i)
			resp := get(e, http.MethodGet, "/ok/"+want)
			b, err := io.ReadAll(resp.Body().Reader())
			if err != nil {
				return err
			}
			if resp.Status != http.StatusOK || string(b) != want {
				return fmt.Errorf("request %d: status %d body %q", i, resp.Status, b)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestDispatch_PanicIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newEngine(
		[]*router.Route{router.Get("/x", panics, router.WithName("exploder"))},
		nil,
		dispatch.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)

	resp := get(e, http.MethodGet, "/x")
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Contains(t, buf.String(), "handler=exploder")
	assert.Contains(t, buf.String(), `panic="handler exploded"`)
}

func TestDispatch_NilSuccess(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Get("/x", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			return handler.Success(nil)
		})),
	}, nil)

	assert.Equal(t, http.StatusInternalServerError, get(e, http.MethodGet, "/x").Status)
}

func TestDispatch_InvalidSuccessStatus(t *testing.T) {
	t.Parallel()

	for _, code := range []int{0, 42, 1000} {
		t.Run(fmt.Sprint(code), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			e := newEngine([]*router.Route{
				router.Get("/x", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
					return handler.Success(handler.Text(code, "body"))
				}), router.WithName("bad-status")),
			}, nil, dispatch.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

			resp := get(e, http.MethodGet, "/x")
			assert.Equal(t, http.StatusInternalServerError, resp.Status)
			assert.NotEqual(t, "body", readBody(t, resp))
			assert.Contains(t, buf.String(), "route returned an invalid status")
		})
	}
}

func TestDispatch_CookieDeltaTaken(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{
		router.Get("/x", handler.Func(func(req *handler.Request, _ *handler.Data) handler.Outcome {
			_ = req.Cookies().Add(&http.Cookie{Name: "a", Value: "1"})
			return handler.Success(handler.Text(http.StatusOK, "ok"))
		})),
	}, nil)

	req := handler.NewRequest(http.MethodGet, "/x")
	resp := run(e, req, "")
	require.Len(t, resp.Header.Values("Set-Cookie"), 1)
	assert.Empty(t, req.Cookies().Delta(), "finalize drains the jar delta")
}

func TestDispatch_InvalidErrorStatus(t *testing.T) {
	t.Parallel()

	e := newEngine([]*router.Route{router.Get("/x", status(0))}, nil)
	assert.Equal(t, http.StatusInternalServerError, get(e, http.MethodGet, "/x").Status)
}

func TestFinalize_Headers(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		e := newEngine([]*router.Route{router.Get("/", text("hi"))}, nil)
		resp := get(e, http.MethodGet, "/")
		assert.Equal(t, "Rocket", resp.Header.Get("Server"))
		assert.Equal(t, "2", resp.Header.Get("Content-Length"))
		assert.Empty(t, resp.Header.Get("Alt-Svc"))
	})

	t.Run("handler server header is kept", func(t *testing.T) {
		t.Parallel()
		e := newEngine([]*router.Route{router.Get("/", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			resp := handler.Text(http.StatusOK, "hi")
			resp.Header.Set("Server", "custom")
			return handler.Success(resp)
		}))}, nil)
		assert.Equal(t, "custom", get(e, http.MethodGet, "/").Header.Get("Server"))
	})

	t.Run("configured", func(t *testing.T) {
		t.Parallel()
		e := newEngine(
			[]*router.Route{router.Get("/", text("hi"))},
			nil,
			dispatch.WithIdent(""),
			dispatch.WithAltSvc(`h3=":443"; ma=2592000`),
		)
		resp := get(e, http.MethodGet, "/")
		assert.Empty(t, resp.Header.Values("Server"))
		assert.Equal(t, `h3=":443"; ma=2592000`, resp.Header.Get("Alt-Svc"))
	})

	t.Run("streamed body has no length", func(t *testing.T) {
		t.Parallel()
		e := newEngine([]*router.Route{router.Get("/", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			return handler.Success(handler.Stream(http.StatusOK, "text/plain", strings.NewReader("chunked")))
		}))}, nil)
		resp := get(e, http.MethodGet, "/")
		assert.Empty(t, resp.Header.Values("Content-Length"))
		assert.Equal(t, "chunked", readBody(t, resp))
	})

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		e := newEngine([]*router.Route{router.Get("/", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			return handler.Success(&handler.Response{Status: http.StatusAccepted})
		}))}, nil)
		resp := get(e, http.MethodGet, "/")
		assert.Equal(t, http.StatusAccepted, resp.Status)
		assert.Equal(t, "0", resp.Header.Get("Content-Length"))
	})
}

func TestFairings_Lifecycle(t *testing.T) {
	t.Parallel()

	var order []string
	fs := fairing.New()
	fs.Attach(
		fairing.OnRequest("tag", func(req *handler.Request, _ *handler.Data) {
			order = append(order, "request:"+req.Method())
			if req.Header().Get("X-Tunnel") != "" {
				req.SetMethod(req.Header().Get("X-Tunnel"))
			}
		}),
		fairing.OnResponse("observe", func(_ *handler.Request, resp *handler.Response) {
			order = append(order, "response")
			assert.Equal(t, "Rocket", resp.Header.Get("Server"), "server header is set before response fairings")
			assert.Empty(t, resp.Header.Get("Content-Length"), "length is computed after response fairings")
			resp.Header.Set("X-Fairing", "seen")
			resp.SetBody(handler.BytesBody([]byte("rewritten")))
		}),
	)

	e := newEngine([]*router.Route{
		router.Put("/x", handler.Func(func(*handler.Request, *handler.Data) handler.Outcome {
			order = append(order, "route")
			return handler.Success(handler.Text(http.StatusOK, "put"))
		})),
	}, nil, dispatch.WithFairings(fs))

	h := http.Header{}
	h.Set("X-Tunnel", http.MethodPut)
	resp := run(e, handler.NewRequest(http.MethodGet, "/x", handler.WithHeader(h)), "")

	assert.Equal(t, []string{"request:GET", "route", "response"}, order)
	assert.Equal(t, "seen", resp.Header.Get("X-Fairing"))
	assert.Equal(t, "rewritten", readBody(t, resp))
	assert.Equal(t, "9", resp.Header.Get("Content-Length"))
}

func TestFairings_ResponseFairingDropsHeader(t *testing.T) {
	t.Parallel()

	fs := fairing.New()
	fs.Attach(fairing.OnResponse("drop headers", func(_ *handler.Request, resp *handler.Response) {
		resp.Header = nil
	}))

	e := newEngine([]*router.Route{router.Get("/x", text("hello"))}, nil, dispatch.WithFairings(fs))

	var resp *handler.Response
	require.NotPanics(t, func() { resp = get(e, http.MethodGet, "/x") })
	require.NotNil(t, resp.Header)
	assert.Equal(t, "5", resp.Header.Get("Content-Length"))
	assert.Equal(t, "hello", readBody(t, resp))
}

func TestFairings_ResponseFairingSeesCatcherResponses(t *testing.T) {
	t.Parallel()

	var statuses []int
	fs := fairing.New()
	fs.Attach(fairing.OnResponse("status", func(_ *handler.Request, resp *handler.Response) {
		statuses = append(statuses, resp.Status)
	}))

	e := newEngine(nil, nil, dispatch.WithFairings(fs))
	get(e, http.MethodGet, "/missing")
	assert.Equal(t, []int{http.StatusNotFound}, statuses)
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, dispatch.ErrNilRouter, func() { dispatch.New(nil) })

	var buf bytes.Buffer
	r := router.New()
	r.Mount("/",
		router.Get("/a", text("a"), router.WithRank(1)),
		router.Get("/a", text("b"), router.WithRank(1)),
	)
	e := dispatch.New(r,
		dispatch.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		dispatch.WithTracer(noop.NewTracerProvider().Tracer("test")),
	)

	assert.True(t, r.Finalized())
	assert.Same(t, r, e.Router())
	assert.NotNil(t, e.Fairings())
	assert.NotNil(t, e.Cookies())
	assert.Contains(t, buf.String(), "routes collide")

	resp := get(e, http.MethodGet, "/a")
	assert.Equal(t, "a", readBody(t, resp), "registration order decides collisions")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.Mount("/", router.Get("/", text("hi")))

	e := dispatch.NewFromConfig(r, dispatch.Config{Ident: "Custom/1.0", AltSvc: `h3=":8443"`})
	resp := get(e, http.MethodGet, "/")
	assert.Equal(t, "Custom/1.0", resp.Header.Get("Server"))
	assert.Equal(t, `h3=":8443"`, resp.Header.Get("Alt-Svc"))

	e = dispatch.NewFromConfig(router.New(), dispatch.Config{})
	assert.Equal(t, "Rocket", get(e, http.MethodGet, "/").Header.Get("Server"))
}
