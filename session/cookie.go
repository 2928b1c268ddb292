package session

import (
	"context"
	"encoding/gob"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/sessions"
)

// Cookie adapts a gorilla/sessions session to Store. Values live in the
// session's Values map until Save is called; types other than the builtin
// scalars must be registered with encoding/gob by the application.
type Cookie struct {
	sess *sessions.Session
}

// NewCookie wraps sess.
func NewCookie(sess *sessions.Session) *Cookie {
	return &Cookie{sess: sess}
}

// LoadCookie fetches the named session from store for r and wraps it. A
// cookie that fails to decode yields a fresh session together with the error,
// mirroring sessions.Store.Get.
func LoadCookie(store sessions.Store, r *http.Request, name string) (*Cookie, error) {
	sess, err := store.Get(r, name)
	if sess == nil {
		return nil, err
	}
	return NewCookie(sess), err
}

// Set stores value in the session. A value the cookie codec cannot
// gob-encode, such as an unregistered struct, returns ErrEncode and is not
// stored.
func (c *Cookie) Set(_ context.Context, key string, value any) error {
	values := map[interface{}]interface{}{key: value}
	if err := gob.NewEncoder(io.Discard).Encode(values); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	c.sess.Values[key] = value
	return nil
}

// Exists reports whether key holds a non-nil value.
func (c *Cookie) Exists(_ context.Context, key string) (bool, error) {
	v, ok := c.sess.Values[key]
	return ok && v != nil, nil
}

func (c *Cookie) Get(_ context.Context, key string) (any, error) {
	v, ok := c.sess.Values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// Save writes the session cookie. It must run before the response body.
func (c *Cookie) Save(r *http.Request, w http.ResponseWriter) error {
	return c.sess.Save(r, w)
}

// IsNew reports whether the session was created for this request.
func (c *Cookie) IsNew() bool {
	return c.sess.IsNew
}
