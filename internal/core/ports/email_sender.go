package ports

import "context"

// OutgoingMessage is one email with a single binary attachment, addressed to
// a single recipient.
type OutgoingMessage struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// EmailSender hands a message to the mail transport. A nil return means the
// transport accepted the message for delivery; anything else is an
// errs.ErrTransportFailure and leaves the order dispatchable.
type EmailSender interface {
	Send(ctx context.Context, msg OutgoingMessage) error
}
