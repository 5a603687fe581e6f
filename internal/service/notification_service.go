package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/insureline/helpdesk/internal/events"
	"github.com/insureline/helpdesk/internal/mail"
	"github.com/insureline/helpdesk/internal/realtime"
)

const mailTimeout = 30 * time.Second

// NotificationService is the notification bridge. It subscribes to
// lifecycle events, broadcasts them to every connected client, and
// sends the resolution email. Neither delivery path can fail a resolve
// operation: email errors are logged and swallowed on their own error
// channel, and the broadcast is fire-and-forget.
type NotificationService struct {
	dispatcher  events.Dispatcher
	broadcaster realtime.Broadcaster
	mailer      mail.Mailer
	logger      *zap.Logger
}

// NewNotificationService creates the bridge.
func NewNotificationService(dispatcher events.Dispatcher, broadcaster realtime.Broadcaster, mailer mail.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		mailer:      mailer,
		logger:      logger,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventNewTicket, n.handleNewTicket)
	n.dispatcher.Subscribe(events.EventTicketResolved, n.handleTicketResolved)
}

func (n *NotificationService) handleNewTicket(ctx context.Context, event events.Event) error {
	n.broadcast(ctx, event)
	return nil
}

func (n *NotificationService) handleTicketResolved(ctx context.Context, event events.Event) error {
	n.broadcast(ctx, event)

	payload, ok := event.Payload.(events.TicketResolvedPayload)
	if !ok || payload.CreatorEmail == "" || n.mailer == nil {
		return nil
	}

	// Email delivery runs detached from the request: its failure must
	// never reach the caller-visible result of the resolve.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := n.mailer.SendResolutionNotice(ctx, payload.CreatorEmail, payload.TicketID, payload.Notes); err != nil {
			n.logger.Warn("resolution email failed",
				zap.String("ticket_id", payload.TicketID),
				zap.Error(err))
		}
	}()
	return nil
}

func (n *NotificationService) broadcast(ctx context.Context, event events.Event) {
	if n.broadcaster == nil {
		return
	}
	if err := n.broadcaster.Broadcast(ctx, event); err != nil {
		n.logger.Warn("realtime broadcast failed",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}
