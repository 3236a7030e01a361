package services

import (
	"context"
	"log"
)

// Notifier is the outbound notification boundary. Delivery is fire-and-forget:
// the award engine only guarantees the publish call is attempted, and failures
// are never propagated back to the caller.
type Notifier interface {
	Notify(externalUserID, eventType string, payload map[string]interface{})
}

// Notification event types published by the award engine.
const (
	NotifyBadgeGranted       = "badge_granted"
	NotifyAchievementGranted = "achievement_granted"
	NotifyLevelUp            = "level_up"
	NotifyCompetitionResult  = "competition_result"
)

type notification struct {
	UserID    string
	EventType string
	Payload   map[string]interface{}
}

// LogNotifier queues notifications on a buffered channel and drains them from
// a background goroutine, logging each one. A real push/email integration
// would replace the drain loop, not the Notify signature.
type LogNotifier struct {
	queue chan notification
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{queue: make(chan notification, 256)}
}

func (n *LogNotifier) Notify(externalUserID, eventType string, payload map[string]interface{}) {
	select {
	case n.queue <- notification{UserID: externalUserID, EventType: eventType, Payload: payload}:
	default:
		// Queue full: drop rather than block the award path.
		log.Printf("[notifier] queue full, dropped %s for %s", eventType, externalUserID)
	}
}

// Start drains the queue until ctx is cancelled.
func (n *LogNotifier) Start(ctx context.Context) {
	log.Println("[notifier] dispatch loop started")
	for {
		select {
		case <-ctx.Done():
			log.Println("[notifier] dispatch loop shutting down")
			return
		case msg := <-n.queue:
			log.Printf("[notifier] user=%s event=%s payload=%v", msg.UserID, msg.EventType, msg.Payload)
		}
	}
}
