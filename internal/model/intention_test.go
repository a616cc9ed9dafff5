package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntention_String(t *testing.T) {
	tests := []struct {
		in   Intention
		want string
	}{
		{IntentionIdle, "IDLE"},
		{IntentionMoveTo, "MOVE_TO"},
		{IntentionWait, "WAIT"},
		{IntentionTalk, "TALK"},
		{Intention(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}
