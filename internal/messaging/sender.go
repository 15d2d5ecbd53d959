package messaging

import "log"

// EmailSender hands a message to the external delivery provider. The real
// provider integration lives outside this service; LogSender stands in for
// local and test environments.
type EmailSender interface {
	Send(to, subject, body string) error
}

type LogSender struct {
	From string
}

func NewLogSender(from string) *LogSender {
	return &LogSender{From: from}
}

func (s *LogSender) Send(to, subject, body string) error {
	log.Printf("sender: from=%s to=%s subject=%q (%d bytes)", s.From, to, subject, len(body))
	return nil
}
