// Package respond holds the uniform wire failure envelope, shared by
// handlers and middleware so the two cannot drift apart.
package respond

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform failure body. Success payloads are plain JSON,
// not envelope-wrapped; the asymmetry is intentional.
type Envelope struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// Fail aborts the request with an envelope body.
func Fail(c *gin.Context, status int, kind, content string) {
	c.AbortWithStatusJSON(status, Envelope{Kind: kind, Content: content})
}
