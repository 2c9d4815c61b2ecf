package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	eventProgress = "progress"
	eventError    = "error"
	eventDone     = "done"
)

// streamFrames relays simulation frames as server-sent events. Errors before
// the first frame are answered with a regular status code; later errors end
// the stream with an error event.
func streamFrames[V any, R any](
	c *gin.Context,
	op string,
	play func(ctx context.Context, fn func(*V) error) error,
	render func(*V) R,
) {
	ctx := c.Request.Context()
	started := false

	err := play(ctx, func(v *V) error {
		if !started {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Header("X-Accel-Buffering", "no")
			started = true
		}
		c.SSEvent(eventProgress, render(v))
		c.Writer.Flush()
		return nil
	})

	if err != nil {
		if !started {
			if errorStatus(err) >= 500 {
				log.WithError(err).Errorf("%s failed", op)
			}
			mapDomainError(c, err)
			return
		}
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			log.WithField("op", op).Debug("stream client disconnected")
			return
		}
		log.WithError(err).Errorf("%s failed", op)
		c.SSEvent(eventError, gin.H{"error": errorMessage(err)})
		c.Writer.Flush()
		return
	}

	c.SSEvent(eventDone, gin.H{})
	c.Writer.Flush()
}
