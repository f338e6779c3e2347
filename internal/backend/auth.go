package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/msgboard/msgboard/internal/errors"
	"github.com/msgboard/msgboard/internal/logger"
)

const (
	// ExpiryMargin is how long before expiry a token counts as expired.
	ExpiryMargin = 90 * time.Second
	// AutoRefreshInterval is how often StartAutoRefresh checks the token.
	AutoRefreshInterval = 30 * time.Second
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUpResponse is a session when autoconfirm is on and a bare user when
// the service is waiting for email confirmation.
type signUpResponse struct {
	Session
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	const op = "backend.SignInWithPassword"

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.MissingField(op, "email and password")
	}

	var sess Session
	err := c.do(ctx, op, request{
		method: http.MethodPost,
		path:   authPrefix + "/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   credentials{Email: email, Password: password},
	}, &sess)
	if err != nil {
		return nil, wrapAuth(op, err)
	}
	if sess.AccessToken == "" {
		return nil, apperrors.AuthFailed(op, NewAPIError(http.StatusOK, "", "service returned no session"))
	}

	c.setSession(&sess, EventSignedIn)
	logger.WithUser(sess.User.ID).Info("signed in", "email", sess.User.Email)
	return sess.clone(), nil
}

// SignUp registers a new user. The returned session is nil when the service
// requires the user to confirm their email first.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	const op = "backend.SignUp"

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.MissingField(op, "email and password")
	}

	var resp signUpResponse
	err := c.do(ctx, op, request{
		method: http.MethodPost,
		path:   authPrefix + "/signup",
		body:   credentials{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, wrapAuth(op, err)
	}

	if resp.AccessToken == "" {
		c.log().Info("signup pending email confirmation", "email", email, "user_id", resp.ID)
		return nil, nil
	}

	sess := resp.Session
	c.setSession(&sess, EventSignedIn)
	logger.WithUser(sess.User.ID).Info("signed up", "email", sess.User.Email)
	return sess.clone(), nil
}

// SignOut revokes the session on the service and clears it locally.
// The local session is kept only when the service could not be reached.
func (c *Client) SignOut(ctx context.Context) error {
	const op = "backend.SignOut"

	c.restore()
	sess := c.current()
	if sess == nil {
		c.clearSession()
		return nil
	}

	err := c.do(ctx, op, request{
		method: http.MethodPost,
		path:   authPrefix + "/logout",
		token:  sess.AccessToken,
	}, nil)
	if err != nil {
		apiErr, ok := AsAPIError(err)
		if !ok {
			return err
		}
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			// token already revoked or expired on the service side
		default:
			return wrapAuth(op, err)
		}
	}

	c.clearSession()
	logger.WithUser(sess.User.ID).Info("signed out")
	return nil
}

// GetSession returns the current session, restoring it from the store on
// first use and refreshing it if it is about to expire. A session whose
// refresh is rejected is cleared and (nil, nil) returned.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	sess, err := c.validSession(ctx)
	if err != nil || sess == nil {
		return nil, err
	}
	return c.fillUser(ctx, sess), nil
}

// validSession is GetSession without the user lookup.
func (c *Client) validSession(ctx context.Context) (*Session, error) {
	c.restore()

	sess := c.current()
	if sess == nil || !sess.ExpiresWithin(c.now(), ExpiryMargin) {
		return sess, nil
	}

	refreshed, err := c.RefreshSession(ctx)
	if err != nil {
		if _, ok := AsAPIError(err); ok {
			c.log().Warn("stored session could not be refreshed, clearing", "error", err)
			return nil, nil
		}
		return nil, err
	}
	return refreshed, nil
}

// fillUser looks up the user for a session stored without an email, so the
// UI always has an address to greet. Lookup failures keep the session as is.
func (c *Client) fillUser(ctx context.Context, sess *Session) *Session {
	if sess.User.Email != "" {
		return sess
	}
	if _, err := c.GetUser(ctx); err != nil {
		c.log().Warn("looking up session user failed", "error", err)
		return sess
	}
	if cur := c.current(); cur != nil {
		return cur
	}
	return sess
}

// GetUser fetches the user for the current access token. A changed email or
// ID is stored and announced as USER_UPDATED.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	const op = "backend.GetUser"

	sess := c.current()
	if sess == nil {
		return nil, apperrors.E(apperrors.Op(op), apperrors.KindAuth, "not signed in")
	}

	var user User
	err := c.do(ctx, op, request{
		method: http.MethodGet,
		path:   authPrefix + "/user",
		token:  sess.AccessToken,
	}, &user)
	if err != nil {
		return nil, wrapAuth(op, err)
	}

	if user.Email != sess.User.Email || user.ID != sess.User.ID {
		c.mu.Lock()
		if c.session != nil && c.session.AccessToken == sess.AccessToken {
			c.session.User = user
			updated := c.session.clone()
			c.mu.Unlock()
			c.persist(updated)
			c.hub.publish(AuthEvent{Type: EventUserUpdated, Session: updated})
		} else {
			c.mu.Unlock()
		}
	}
	return &user, nil
}

// RefreshSession trades the refresh token for a new session. When the
// service rejects the refresh token the session is cleared and subscribers
// see SIGNED_OUT.
func (c *Client) RefreshSession(ctx context.Context) (*Session, error) {
	const op = "backend.RefreshSession"

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	sess := c.current()
	if sess == nil {
		return nil, apperrors.E(apperrors.Op(op), apperrors.KindAuth, "not signed in")
	}
	// another caller refreshed while this one waited
	if !sess.ExpiresWithin(c.now(), ExpiryMargin) {
		return sess, nil
	}
	if sess.RefreshToken == "" {
		c.clearSession()
		return nil, apperrors.AuthFailed(op, NewAPIError(http.StatusUnauthorized, "", "session has no refresh token"))
	}

	var next Session
	err := c.do(ctx, op, request{
		method: http.MethodPost,
		path:   authPrefix + "/token",
		query:  url.Values{"grant_type": {"refresh_token"}},
		body:   map[string]string{"refresh_token": sess.RefreshToken},
	}, &next)
	if err != nil {
		if _, ok := AsAPIError(err); ok {
			c.clearSession()
		}
		return nil, wrapAuth(op, err)
	}
	if next.User.ID == "" {
		next.User = sess.User
	}

	c.setSession(&next, EventTokenRefreshed)
	c.log().Debug("token refreshed", "expires_at", next.ExpiresAt)
	return next.clone(), nil
}

// StartAutoRefresh refreshes the token in the background until ctx is done
// or StopAutoRefresh is called. Calling it again restarts the loop.
func (c *Client) StartAutoRefresh(ctx context.Context) {
	c.StopAutoRefresh()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.autoMu.Lock()
	c.stopAuto = cancel
	c.autoStopped = done
	c.autoMu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(AutoRefreshInterval)
		defer ticker.Stop()

		c.refreshIfNeeded(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.refreshIfNeeded(ctx)
			}
		}
	}()
}

// StopAutoRefresh stops the background refresh loop and waits for it to exit.
func (c *Client) StopAutoRefresh() {
	c.autoMu.Lock()
	cancel, done := c.stopAuto, c.autoStopped
	c.stopAuto, c.autoStopped = nil, nil
	c.autoMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (c *Client) refreshIfNeeded(ctx context.Context) {
	c.restore()
	sess := c.current()
	if sess == nil || !sess.ExpiresWithin(c.now(), ExpiryMargin) {
		return
	}
	if _, err := c.RefreshSession(ctx); err != nil && ctx.Err() == nil {
		c.log().Warn("background token refresh failed", "error", err)
	}
}

// restore loads the persisted session once.
func (c *Client) restore() {
	c.mu.Lock()
	if c.restored {
		c.mu.Unlock()
		return
	}
	c.restored = true
	c.mu.Unlock()

	rec, err := c.store.Load()
	if err != nil {
		c.log().Warn("loading stored session failed", "error", err)
		return
	}
	sess := sessionFromRecord(rec)
	if sess == nil {
		return
	}
	sess.normalize(c.now())

	c.mu.Lock()
	if c.session == nil {
		c.session = sess
	}
	c.mu.Unlock()
	c.log().Debug("restored stored session", "email", sess.User.Email)
}

func (c *Client) current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.clone()
}

func (c *Client) setSession(sess *Session, event AuthEventType) {
	sess.normalize(c.now())

	c.mu.Lock()
	c.session = sess.clone()
	c.restored = true
	c.mu.Unlock()

	c.persist(sess)
	c.hub.publish(AuthEvent{Type: event, Session: sess.clone()})
}

func (c *Client) persist(sess *Session) {
	if err := c.store.Save(sess.toRecord()); err != nil {
		c.log().Warn("persisting session failed", "error", err)
	}
}

func (c *Client) clearSession() {
	c.mu.Lock()
	had := c.session != nil
	c.session = nil
	c.restored = true
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		c.log().Warn("clearing stored session failed", "error", err)
	}
	if had {
		c.hub.publish(AuthEvent{Type: EventSignedOut})
	}
}
