package model

// Intention represents the current behavior state of a scene NPC
type Intention int32

const (
	// IntentionIdle - NPC is standing idle, no active behavior
	IntentionIdle Intention = iota
	// IntentionMoveTo - NPC is walking to its current waypoint
	IntentionMoveTo
	// IntentionWait - NPC is pausing after a completed loop
	IntentionWait
	// IntentionTalk - NPC is waiting to deliver or delivering dialogue lines
	IntentionTalk
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionMoveTo:
		return "MOVE_TO"
	case IntentionWait:
		return "WAIT"
	case IntentionTalk:
		return "TALK"
	default:
		return "UNKNOWN"
	}
}
