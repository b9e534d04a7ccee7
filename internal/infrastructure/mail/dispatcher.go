package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fluxt/fluxt-api/internal/api/metrics"
	"github.com/fluxt/fluxt-api/internal/core/domain"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
)

type job struct {
	template string
	user     *domain.User
	token    string
}

// Dispatcher implements ports.Mailer by queueing messages onto a fixed worker
// pool. Enqueueing never blocks the request path beyond channel capacity.
type Dispatcher struct {
	jobs   chan job
	sender *SMTPSender
	log    zerolog.Logger
}

func NewDispatcher(sender *SMTPSender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		jobs:   make(chan job, channelBuffer),
		sender: sender,
		log:    log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < defaultWorkers; i++ {
		go d.runWorker(ctx, i)
	}
}

func (d *Dispatcher) SendUserCreated(user *domain.User, token string) {
	d.jobs <- job{template: "user_created", user: user, token: token}
}

func (d *Dispatcher) SendPasswordReset(user *domain.User, token string) {
	d.jobs <- job{template: "password_reset", user: user, token: token}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-d.jobs:
			d.deliver(j)
		}
	}
}

func (d *Dispatcher) deliver(j job) {
	var err error
	switch j.template {
	case "user_created":
		err = d.sender.userCreated(j.user, j.token)
	case "password_reset":
		err = d.sender.passwordReset(j.user, j.token)
	}

	if err != nil {
		metrics.EmailsTotal.WithLabelValues(j.template, "error").Inc()
		d.log.Error().Err(err).
			Str("template", j.template).
			Str("recipient", j.user.Email).
			Msg("email delivery failed")
		return
	}

	metrics.EmailsTotal.WithLabelValues(j.template, "sent").Inc()
	d.log.Info().
		Str("template", j.template).
		Str("recipient", j.user.Email).
		Msg("email sent")
}
