// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/clubops/annonce-backend/internal/brevo"
	"github.com/clubops/annonce-backend/internal/controller"
	"github.com/clubops/annonce-backend/internal/db"
	"github.com/clubops/annonce-backend/internal/queue"
	"github.com/clubops/annonce-backend/internal/repository"
	"github.com/clubops/annonce-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	conn, err := db.NewHandle().Connect()
	if err != nil {
		log.Fatal("failed to connect to DB:", err)
	}

	contactRepo := &repository.ContactRepository{DB: conn}

	sender := os.Getenv("BREVO_SENDER")
	if sender == "" {
		sender = "Nightclub"
	}
	provider := brevo.NewClient(os.Getenv("BREVO_API_KEY"))

	importService := &service.ImportService{ContactRepo: contactRepo}
	announcementService := &service.AnnouncementService{
		Provider: provider,
		Sender:   sender,
	}

	amqpURL := os.Getenv("AMQP_URL")
	var q queue.Queue
	if amqpURL == "" {
		// No broker configured, run queued imports in-process.
		inMem := queue.NewInMemoryQueue()
		queue.StartImportSubscriber(inMem, importService)
		q = inMem
	}

	contactController := &controller.ContactController{
		ContactRepo: contactRepo,
	}
	announcementController := &controller.AnnouncementController{
		ContactRepo:         contactRepo,
		AnnouncementService: announcementService,
	}
	importController := &controller.ImportController{
		ImportService: importService,
		AmqpURL:       amqpURL,
		Queue:         q,
	}

	r := chi.NewRouter()

	// Contact routes
	r.Get("/contacts", contactController.ListContacts)
	r.Post("/contacts", contactController.CreateContact)
	r.Put("/contacts/{id}", contactController.UpdateContact)
	r.Delete("/contacts/{id}", contactController.DeleteContact)

	// Announcement routes
	r.Get("/credits", announcementController.GetCredits)
	r.Post("/announcements/sms", announcementController.SendSMS)

	// Import routes
	r.Post("/imports", importController.RunImport)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
