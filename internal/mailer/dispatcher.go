package mailer

import (
	"context"
	"log"
)

type job struct {
	email string
	token string
}

// Dispatcher hands verification emails to a background worker so request
// handlers never wait on SMTP. Failures are logged, not propagated.
type Dispatcher struct {
	mailer Mailer
	jobs   chan job
	done   chan struct{}
}

// NewDispatcher starts the delivery worker.
func NewDispatcher(m Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: m,
		jobs:   make(chan job, 64),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for j := range d.jobs {
		if err := d.mailer.SendVerificationEmail(j.email, j.token); err != nil {
			log.Printf("mailer: send to %s failed: %v", j.email, err)
		}
	}
}

// Enqueue schedules a verification email without blocking the caller. When
// the queue is full the message is dropped and logged; the user can request
// a resend.
func (d *Dispatcher) Enqueue(email, token string) {
	select {
	case d.jobs <- job{email: email, token: token}:
	default:
		log.Printf("mailer: queue full, dropped verification email for %s", email)
	}
}

// Close stops accepting work and waits for queued messages to drain or the
// context to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	close(d.jobs)
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
