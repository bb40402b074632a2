// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

/*
Package queue provides a managed RabbitMQ publisher for domain events.

Order status changes are mirrored onto a durable queue so the game server
can deliver purchased perks (VIP ranks, coins, unbans) in-game without
polling the database. Publishing is a side effect of a successful store
write: failures are logged and returned, and callers are expected to ignore
them rather than fail the originating request.
*/
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher holds a long-lived AMQP connection and channel.
//
// # Concurrency
//
// amqp channels are not safe for concurrent publishing; callers go through
// [Publisher.Publish], which is safe because amqp091-go serializes writes on
// the underlying connection per channel and we publish without confirms.
type Publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	logger     *slog.Logger
}

// NewPublisher dials the broker and opens a publishing channel.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	connection, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("queue: dial failed: %w", err)
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("queue: channel open failed: %w", err)
	}

	logger.Info("amqp publisher connected")

	return &Publisher{connection: connection, channel: channel, logger: logger}, nil
}

// Publish sends a JSON-encoded payload to the named queue.
//
// The queue is declared durable on every publish (idempotent) and messages
// are marked persistent so they survive broker restarts.
func (publisher *Publisher) Publish(ctx context.Context, queueName string, payload any) error {

	if _, err := publisher.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		publisher.logger.ErrorContext(ctx, "amqp_queue_declare_failed",
			slog.String("queue", queueName),
			slog.Any("error", err),
		)
		return fmt.Errorf("queue: declare failed: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("queue: marshal payload failed: %w", err)
	}

	message := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := publisher.channel.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		message,
	); err != nil {
		publisher.logger.ErrorContext(ctx, "amqp_publish_failed",
			slog.String("queue", queueName),
			slog.Any("error", err),
		)
		return fmt.Errorf("queue: publish failed: %w", err)
	}

	return nil
}

// Close tears down the channel and connection.
func (publisher *Publisher) Close() {
	if publisher.channel != nil {
		_ = publisher.channel.Close()
	}
	if publisher.connection != nil {
		_ = publisher.connection.Close()
	}
}
