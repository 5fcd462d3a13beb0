package main

import (
	"errors"
	"flag"
	"log"

	"resume-tailor/internal/config"
	"resume-tailor/internal/models"
	"resume-tailor/internal/repositories"
	"resume-tailor/internal/services"
)

// Creates a user directly from local PDF files, bypassing the HTTP API.
// Useful for seeding a development database:
//
//	go run scripts/seed_user.go -user jane -resume ./jane_resume.pdf -linkedin ./jane_linkedin.pdf
func main() {
	userID := flag.String("user", "", "user id to create")
	resumePath := flag.String("resume", "", "path to resume PDF")
	linkedinPath := flag.String("linkedin", "", "path to LinkedIn export PDF")
	flag.Parse()

	if *userID == "" || *resumePath == "" || *linkedinPath == "" {
		log.Fatal("❌ -user, -resume and -linkedin are all required")
	}

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	pdfParser := services.NewPDFParserService()

	resumeText, err := pdfParser.ExtractText(*resumePath)
	if err != nil {
		log.Fatalf("❌ Failed to extract resume text: %v", err)
	}

	linkedinText, err := pdfParser.ExtractText(*linkedinPath)
	if err != nil {
		log.Fatalf("❌ Failed to extract LinkedIn text: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	user := &models.User{
		UserID:      *userID,
		ResumeTxt:   resumeText,
		LinkedinTxt: linkedinText,
	}

	if err := userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			log.Fatalf("❌ User %q already exists", *userID)
		}
		log.Fatalf("❌ Failed to create user: %v", err)
	}

	log.Printf("✅ User %q created (%d resume chars, %d linkedin chars)\n",
		user.UserID, len(user.ResumeTxt), len(user.LinkedinTxt))
}
