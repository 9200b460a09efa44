package mail

import (
	"context"
	"errors"
)

// ErrTransport: el proveedor no pudo entregar el mensaje.
var ErrTransport = errors.New("mail transport error")

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender envía un mensaje. Los fallos deben envolver ErrTransport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
