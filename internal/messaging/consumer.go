package messaging

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/repository"
)

const (
	maxRetryAttempts = 3
	initialDelay     = 1 * time.Second
	maxDelay         = 30 * time.Second
)

// DeliveryConsumer drains the delivery queue, hands each message to the
// email sender with backoff, and records the outcome on the notifications
// row. Delivery failure never propagates back to the report flow.
type DeliveryConsumer struct {
	rmq              *RabbitMQ
	notificationRepo *repository.NotificationRepository
	sender           EmailSender
	done             chan struct{}
	wg               sync.WaitGroup
}

func NewDeliveryConsumer(rmq *RabbitMQ, notificationRepo *repository.NotificationRepository, sender EmailSender) *DeliveryConsumer {
	return &DeliveryConsumer{
		rmq:              rmq,
		notificationRepo: notificationRepo,
		sender:           sender,
		done:             make(chan struct{}),
	}
}

func (c *DeliveryConsumer) Start() {
	c.wg.Add(1)
	go c.consume()
}

func (c *DeliveryConsumer) consume() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			return
		default:
			msgs, err := c.rmq.Consume()
			if err != nil {
				log.Printf("consumer: %v, retrying in 5s...", err)
				time.Sleep(5 * time.Second)
				continue
			}

			c.processMessages(msgs)
		}
	}
}

func (c *DeliveryConsumer) processMessages(msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("consumer: channel closed, reconnecting...")
				return
			}

			c.handleMessage(msg)
		}
	}
}

func (c *DeliveryConsumer) handleMessage(msg amqp.Delivery) {
	var delivery DeliveryMessage
	if err := json.Unmarshal(msg.Body, &delivery); err != nil {
		log.Printf("consumer: unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	notificationID, err := uuid.Parse(delivery.NotificationID)
	if err != nil {
		log.Printf("consumer: bad notification id %q", delivery.NotificationID)
		msg.Nack(false, false)
		return
	}

	sendErr := retry.Do(
		func() error {
			return c.sender.Send(delivery.RecipientEmail, delivery.Subject, delivery.Message)
		},
		retry.Attempts(maxRetryAttempts),
		retry.Delay(initialDelay),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("consumer: send retry %d for %s: %v", n+1, notificationID, err)
		}),
	)

	if sendErr != nil {
		log.Printf("consumer: delivery failed for %s: %v", notificationID, sendErr)
		if err := c.notificationRepo.MarkFailed(notificationID); err != nil {
			log.Printf("consumer: mark failed %s: %v", notificationID, err)
		}
		// Attempts exhausted, drop rather than requeue forever.
		msg.Ack(false)
		return
	}

	if err := c.notificationRepo.MarkSent(notificationID); err != nil {
		log.Printf("consumer: mark sent %s: %v", notificationID, err)
		// Message was delivered; requeueing would duplicate the email.
	}
	msg.Ack(false)
}

func (c *DeliveryConsumer) Stop() {
	close(c.done)
	c.wg.Wait()
}
