package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/mailer"
)

type outcome int

const (
	ack outcome = iota
	requeue
	drop
)

// handle renders and sends one queued job. Malformed or unrenderable jobs are dropped;
// a failed send is requeued once and dropped when it fails again on redelivery.
func handle(ctx context.Context, sender mailer.Sender, body []byte, redelivered bool, logger logrus.FieldLogger) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(logger, "bad message", err, nil)
		return drop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html, err := mailer.Prepare(job)
	if err != nil {
		helpers.LogError(logger, "render failed", err, logrus.Fields{"template": job.Template, "to": job.To})
		return drop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(logger, "send failed", err, logrus.Fields{"template": job.Template, "to": job.To, "redelivered": redelivered})
		if redelivered {
			return drop
		}
		return requeue
	}
	helpers.LogInfo(logger, "email sent", logrus.Fields{"template": job.Template, "to": job.To, "provider": sender.Name()})
	return ack
}

func settle(msg amqp.Delivery, o outcome) {
	switch o {
	case ack:
		_ = msg.Ack(false)
	case requeue:
		_ = msg.Nack(false, true)
	default:
		_ = msg.Nack(false, false)
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	sender, err := mailer.NewSender(cfg)
	if err != nil {
		logger.WithError(err).Fatal("mail transport not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		logger.WithError(err).Fatal("amqp connect")
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			settle(msg, handle(ctx, sender, msg.Body, msg.Redelivered, logger))
		}
		close(done)
	}()

	logger.WithFields(logrus.Fields{"queue": cfg.RabbitMQEmailQueue, "provider": sender.Name()}).Info("email worker listening")
	select {
	case <-stop:
	case <-done:
		logger.Warn("delivery channel closed")
	}
	logger.Info("shutting down...")
	cancel()
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
