// internal/service/import_service.go
package service

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/clubops/annonce-backend/internal/csvdata"
	"github.com/clubops/annonce-backend/internal/model"
	"github.com/clubops/annonce-backend/internal/phone"
	"github.com/clubops/annonce-backend/internal/repository"
)

// ImportService turns scraped CSV exports into contact records. Dedup is
// keyed solely on the canonical local phone number, which makes re-running an
// import over the same files a no-op.
type ImportService struct {
	ContactRepo repository.ContactRepositoryInterface
}

// IngestDirectory processes every CSV file found in dir and returns one
// report per readable file. A missing directory is not an error: the scraper
// may simply not have run yet.
func (s *ImportService) IngestDirectory(dir string) ([]model.ImportReport, error) {
	files, err := findCSVFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Println("No CSV files found in", dir)
		return []model.ImportReport{}, nil
	}

	log.Printf("Processing %d CSV file(s) from %s\n", len(files), dir)

	reports := make([]model.ImportReport, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Println("⚠️ failed to read", file, ":", err)
			continue
		}
		report := s.IngestFile(filepath.Base(file), string(content))
		log.Printf("File %s processed: %d created, %d skipped\n", report.File, report.Created, report.Skipped)
		reports = append(reports, report)
	}
	return reports, nil
}

// IngestFile runs the rows of one export through the pipeline. A row is
// skipped (never an error) when its phone cannot be normalized, when a
// contact with that phone already exists, or when storage rejects it; no row
// outcome stops the batch.
func (s *ImportService) IngestFile(name, content string) model.ImportReport {
	report := model.ImportReport{File: name}

	for _, row := range csvdata.ParseTable(content) {
		localPhone := phone.Normalize(row.Field(csvdata.FieldPhone), phone.Local)
		if localPhone == "" {
			report.Skipped++
			continue
		}

		existing, err := s.ContactRepo.FindByPhone(localPhone)
		if err != nil {
			log.Println("⚠️ lookup failed for", localPhone, ":", err)
			report.Skipped++
			continue
		}
		if existing != nil {
			report.Skipped++
			continue
		}

		contact := &model.Contact{
			PhoneNumber: localPhone,
			Email:       strings.TrimSpace(row.Field(csvdata.FieldEmail)),
			FirstName:   strings.TrimSpace(row.Field(csvdata.FieldFirstName)),
			LastName:    strings.TrimSpace(row.Field(csvdata.FieldLastName)),
			PostalCode:  csvdata.ExtractPostalCode(row.Field(csvdata.FieldPostalCode)),
		}
		if birth := csvdata.ParseDate(row.Field(csvdata.FieldBirthDate)); birth != "" {
			contact.BirthDate = &birth
		}

		if err := s.ContactRepo.Create(contact); err != nil {
			log.Println("⚠️ failed to create contact", localPhone, ":", err)
			report.Skipped++
			continue
		}
		report.Created++
	}

	return report
}

func findCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".csv") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
