package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	sessionID = uuid.NewString()
	strokeSeq uint64
)

func nextStrokeSeq() uint64 {
	return atomic.AddUint64(&strokeSeq, 1)
}

// SessionID identifies this process in log output.
func SessionID() string { return sessionID }

// NextStrokeID returns a unique, increasing ID for a new stroke.
func NextStrokeID() string {
	return fmt.Sprintf("stroke-%s-%d", sessionID[:8], nextStrokeSeq())
}
