// Package service provides the publisher for content change events. The
// CMS calls it after every successful blog or portfolio mutation so that
// external consumers (sitemap regeneration in particular) learn about the
// change. Errors are logged and returned to allow callers to ignore
// failures without interrupting the main request flow.
package service

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/conbyt/conbyt-cms/internal/queue"
)

const contentQueueName = "content.changed"

// ContentPublisher publishes ContentChangedEvents to the broker. A nil
// publisher (broker not configured) is safe to call and does nothing.
type ContentPublisher struct {
    URL string
}

// NewContentPublisher returns a publisher for the given broker URL, or
// nil when the URL is empty so callers can skip publishing entirely.
func NewContentPublisher(url string) *ContentPublisher {
    if url == "" {
        return nil
    }
    return &ContentPublisher{URL: url}
}

// Publish sends a ContentChangedEvent to the content.changed queue. The
// function attempts to be robust and to never panic; any error is logged
// and returned so the caller can choose to ignore it. Messages are marked
// as persistent.
func (p *ContentPublisher) Publish(ctx context.Context, event q.ContentChangedEvent) error {
    if p == nil {
        return nil
    }
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        contentQueueName, // name
        true,             // durable
        false,            // autoDelete
        false,            // exclusive
        false,            // noWait
        nil,              // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",               // default exchange
        contentQueueName, // routing key = queue name
        false,            // mandatory
        false,            // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
