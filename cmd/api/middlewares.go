package main

import (
	"context"
	"errors"
	"fmt"
	"moviereviews/proj/internal/domain/permissions"
	"moviereviews/proj/internal/services/auth"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				err, ok := rvr.(error)
				if !ok {
					err = fmt.Errorf("%v", rvr)
				}
				w.Header().Set("Connection", "close")
				app.Http.ServerError(w, r, fmt.Errorf("panic: %w", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			app.Http.setupLogPerReq(r).Info(
				"request completed",
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

const (
	limiterSweepInterval = time.Minute
	limiterIdleTTL       = 3 * time.Minute
)

// ipLimiter keeps a token bucket per client ip. Buckets idle for longer than
// limiterIdleTTL are dropped by a sweep that piggybacks on incoming requests,
// so nothing outlives the handler.
type ipLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*limitedClient
	lastSweep time.Time
}

type limitedClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*limitedClient),
	}
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= limiterSweepInterval {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}
	c, ok := l.clients[ip]
	if !ok {
		c = &limitedClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	if !app.cfg.Limiter.Enabled {
		return next
	}
	limiter := newIPLimiter(app.cfg.Limiter.Rps, app.cfg.Limiter.Burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RealIP may already have stripped the port
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !limiter.allow(ip, time.Now()) {
			log.Warn("rate limit exceeded", "ip", ip)
			app.Http.TooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyPrincipal CtxKey = "principal"

func principalFromContext(ctx context.Context) permissions.Principal {
	p, ok := ctx.Value(CtxKeyPrincipal).(permissions.Principal)
	if !ok {
		return permissions.Anonymous()
	}
	return p
}

// Authenticate resolves the "Authorization: Token <key>" header into the
// request principal. A header that is present but does not resolve to a user
// fails the request right away.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := permissions.Anonymous()
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			log := app.Http.setupLogPerReq(r)
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || parts[0] != "Token" {
				log.Warn("malformed auth header")
				app.Http.Unauthorized(w, r, "Invalid token.")
				return
			}
			user, err := app.services.Auth.Authenticate(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					log.Warn("unknown token")
					app.Http.Unauthorized(w, r, "Invalid token.")
					return
				}
				app.Http.ServerError(w, r, err)
				return
			}
			log.Debug("authenticated", "user_id", user.ID)
			principal = permissions.Authenticated(user)
		}
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyPrincipal, principal))
		next.ServeHTTP(w, r)
	})
}
