package web

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/microblog/pkg/cookie"
)

const (
	sessionCookie = "session"
	flashKey      = "messages"

	// RememberMaxAge is the session cookie lifetime when "remember me" is checked.
	RememberMaxAge = 30 * 24 * 60 * 60
)

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type sessionKey struct{}

func (c *requestContext) UserID() int64 {
	if id, ok := c.Get(sessionKey{}).(int64); ok {
		return id
	}

	var id int64
	raw, err := c.cookies.GetSigned(c.request, sessionCookie)
	switch {
	case err == nil:
		id, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			id = 0
		}
	case !errors.Is(err, cookie.ErrNotFound):
		c.LogWarn("invalid session cookie", slog.Any("error", err))
	}

	c.Set(sessionKey{}, id)
	return id
}

func (c *requestContext) IsAuthenticated() bool {
	return c.UserID() > 0
}

func (c *requestContext) AuthenticateSession(userID int64, remember bool) error {
	maxAge := 0
	if remember {
		maxAge = RememberMaxAge
	}
	if err := c.cookies.SetSigned(c.response, sessionCookie, strconv.FormatInt(userID, 10), maxAge); err != nil {
		return err
	}
	c.Set(sessionKey{}, userID)
	return nil
}

func (c *requestContext) DestroySession() {
	c.cookies.Delete(c.response, sessionCookie)
	c.Set(sessionKey{}, int64(0))
}

func (c *requestContext) Flash() []FlashMessage {
	var msgs []FlashMessage
	if err := c.cookies.Flash(c.response, c.request, flashKey, &msgs); err != nil {
		if !errors.Is(err, cookie.ErrNotFound) {
			c.LogWarn("failed to read flash messages", slog.Any("error", err))
		}
		return nil
	}
	return msgs
}

// SetFlash queues the message; all queued messages are written as one cookie
// right before the response headers are sent.
func (c *requestContext) SetFlash(category, message string) error {
	if !c.cookies.HasSecret() {
		return cookie.ErrNoSecret
	}
	c.flashes = append(c.flashes, FlashMessage{Category: category, Message: message})
	if c.flashHooked {
		return nil
	}
	c.flashHooked = true
	c.response.OnBeforeWrite(func() {
		if err := c.cookies.SetFlash(c.response, flashKey, c.flashes); err != nil {
			c.LogError("failed to write flash messages", slog.Any("error", err))
		}
	})
	return nil
}
