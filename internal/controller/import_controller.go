// internal/controller/import_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/streadway/amqp"

	"github.com/clubops/annonce-backend/internal/queue"
	"github.com/clubops/annonce-backend/internal/service"
)

type ImportController struct {
	ImportService *service.ImportService
	AmqpURL       string      // RabbitMQ URL; preferred when set
	Queue         queue.Queue // in-process fallback; nil means run synchronously
}

func (c *ImportController) RunImport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Directory string `json:"directory"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
	}
	if body.Directory == "" {
		body.Directory = os.Getenv("CSV_DOWNLOAD_DIR")
	}
	if body.Directory == "" {
		http.Error(w, "directory is required", http.StatusBadRequest)
		return
	}

	if c.AmqpURL == "" {
		if c.Queue != nil {
			if err := c.Queue.Publish(queue.ImportJobsQueue, queue.ImportJob{Directory: body.Directory}); err != nil {
				http.Error(w, "Failed to publish job", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":    "queued",
				"directory": body.Directory,
			})
			return
		}

		reports, err := c.ImportService.IngestDirectory(body.Directory)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "done",
			"reports": reports,
		})
		return
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(c.AmqpURL)
	if err != nil {
		http.Error(w, "Failed to connect to queue", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		http.Error(w, "Failed to open queue channel", http.StatusInternalServerError)
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.ImportJobsQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		http.Error(w, "Failed to declare queue", http.StatusInternalServerError)
		return
	}

	payload, _ := json.Marshal(queue.ImportJob{Directory: body.Directory})
	err = ch.Publish(
		"",
		q.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err != nil {
		http.Error(w, "Failed to publish job", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "queued",
		"directory": body.Directory,
	})
}
