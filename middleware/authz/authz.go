// Package authz enforces RBAC policy on demo server requests using Casbin,
// with the policy file hot-reloaded via fsnotify — adapted from the
// teacher's middlewares/auth/casbin package, retargeted at net/http and
// the shared errs.APIError response shape.
package authz

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/dormoron/kedge/internal/errs"
)

// SubjectResolver extracts the Casbin subject (typically a user or role
// name) from an incoming request.
type SubjectResolver func(*http.Request) (string, error)

// Enforcer wraps a Casbin enforcer and watches its policy file for
// out-of-band edits.
type Enforcer struct {
	enforcer   *casbin.Enforcer
	resolveSub SubjectResolver
	policyFile string
	watcher    *fsnotify.Watcher
	mu         sync.RWMutex
}

// NewEnforcer loads modelFile/policyFile into a Casbin enforcer and starts
// watching policyFile for changes.
func NewEnforcer(modelFile, policyFile string, resolveSub SubjectResolver) (*Enforcer, error) {
	enforcer, err := casbin.NewEnforcer(modelFile, policyFile)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("authz: creating file watcher: %w", err)
	}
	if err := watcher.Add(policyFile); err != nil {
		return nil, fmt.Errorf("authz: watching policy file: %w", err)
	}

	e := &Enforcer{enforcer: enforcer, resolveSub: resolveSub, policyFile: policyFile, watcher: watcher}
	go e.watchPolicy()
	return e, nil
}

// Close stops the policy file watcher.
func (e *Enforcer) Close() error {
	return e.watcher.Close()
}

func (e *Enforcer) watchPolicy() {
	for {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				_ = e.reloadPolicy()
			}
		case _, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (e *Enforcer) reloadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enforcer.LoadPolicy()
}

// Middleware denies the request with 403 unless the resolved subject is
// permitted act (the HTTP method) on obj (the URL path) by policy. A
// subject resolver error is answered with 401 and a policy enforcement
// error with 500.
func (e *Enforcer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := e.resolveSub(r)
		if err != nil {
			writeAPIError(w, errs.NewAuthError(err.Error()))
			return
		}

		e.mu.RLock()
		allowed, err := e.enforcer.Enforce(sub, r.URL.Path, r.Method)
		e.mu.RUnlock()
		if err != nil {
			writeAPIError(w, errs.NewInternalError("policy enforcement failed: "+err.Error()))
			return
		}
		if !allowed {
			writeAPIError(w, errs.NewPermissionError(""))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeAPIError(w http.ResponseWriter, apiErr *errs.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	w.Write(apiErr.ToJSON())
}
