package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/clubops/annonce-backend/internal/service"
)

// ImportJobsQueue is the queue that carries CSV import jobs from the
// dashboard to the worker.
const ImportJobsQueue = "csv_imports"

// ImportJob asks a worker to ingest every CSV file in a directory.
type ImportJob struct {
	Directory string `json:"directory"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used in development and
// tests when no broker is configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartImportSubscriber runs queued import jobs through the ingestion
// pipeline. Used with the in-memory queue when no broker is configured; the
// RabbitMQ path lives in cmd/worker.
func StartImportSubscriber(q Queue, imports *service.ImportService) {
	err := q.Subscribe(ImportJobsQueue, func(payload any) error {
		job, ok := payload.(ImportJob)
		if !ok {
			log.Println("⚠️ Invalid payload type, expected ImportJob")
			return nil // drop, retrying will not help
		}

		log.Println("📩 Processing queued import for directory:", job.Directory)

		reports, err := imports.IngestDirectory(job.Directory)
		if err != nil {
			log.Println("⚠️ Import failed:", err)
			return err // triggers retry in queue
		}

		for _, report := range reports {
			log.Printf("Imported %s: %d created, %d skipped\n", report.File, report.Created, report.Skipped)
		}
		return nil
	})

	if err != nil {
		log.Println("⚠️ Failed to start subscriber for", ImportJobsQueue, ":", err)
	}
}
