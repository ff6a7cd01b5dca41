package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/storage"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	"github.com/sirupsen/logrus"
)

const maxResumeSize = 10 * 1024 * 1024

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// joinApplication takes a careers page application with the resume as
// a multipart upload
func joinApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dao := ctx.Value("store").(*store.Store)
	resumeStore := ctx.Value("resumeStore").(*storage.ResumeStore)

	err := r.ParseMultipartForm(maxResumeSize)
	if err != nil {
		http.Error(w, "File must be under 10MB.", 400)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	if name == "" || !emailPattern.MatchString(email) {
		http.Error(w, "Please provide your name and a valid email address.", 400)
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		http.Error(w, "Please attach your resume.", 400)
		return
	}
	defer file.Close()

	if !allowedResumeTypes[header.Header.Get("Content-Type")] {
		http.Error(w, "Only PDF, DOC, or DOCX files are allowed.", 400)
		return
	}
	if header.Size > maxResumeSize {
		http.Error(w, "File must be under 10MB.", 400)
		return
	}

	_, resumeURL, err := resumeStore.Save(header.Filename, file)
	if err != nil {
		logrus.Errorf("cannot store resume: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	err = dao.CreateApplication(&model.Application{
		Name:              name,
		Email:             email,
		Location:          strings.TrimSpace(r.FormValue("location")),
		ResumeURL:         resumeURL,
		ResumeFileName:    header.Filename,
		ResumeContentType: header.Header.Get("Content-Type"),
		ResumeSize:        header.Size,
		Created:           time.Now().Unix(),
	})
	if err != nil {
		logrus.Errorf("cannot save application: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("{}"))
}

func waitlistSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dao := ctx.Value("store").(*store.Store)

	var payload struct {
		Name     string   `json:"name"`
		Email    string   `json:"email"`
		Location string   `json:"location"`
		Company  string   `json:"company"`
		Position string   `json:"position"`
		UseCases []string `json:"useCases"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	name := strings.TrimSpace(payload.Name)
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	location := strings.TrimSpace(payload.Location)
	useCase := computeUseCase(payload.UseCases)
	company := strings.TrimSpace(payload.Company)
	position := strings.TrimSpace(payload.Position)

	if len(name) < 2 || len(name) > 100 {
		http.Error(w, "Name must be 2-100 characters.", 400)
		return
	}
	if len(email) < 4 || len(email) > 100 {
		http.Error(w, "Email must be 4-100 characters.", 400)
		return
	}
	if len(location) < 4 || len(location) > 100 {
		http.Error(w, "Location must be 4-100 characters.", 400)
		return
	}
	if len(useCase) < 4 || len(useCase) > 100 {
		http.Error(w, "Use case must be 4-100 characters.", 400)
		return
	}
	if len(company) < 2 || len(company) > 100 {
		http.Error(w, "Company must be 2-100 characters.", 400)
		return
	}
	if len(position) < 2 || len(position) > 100 {
		http.Error(w, "Position must be 2-100 characters.", 400)
		return
	}
	if !emailPattern.MatchString(email) {
		http.Error(w, "Please enter a valid email address.", 400)
		return
	}

	err = dao.CreateWaitlistSubmission(&model.WaitlistSubmission{
		Name:     name,
		Email:    email,
		Location: location,
		UseCase:  useCase,
		Company:  company,
		Position: position,
		Created:  time.Now().Unix(),
	})
	if err != nil {
		logrus.Errorf("cannot save waitlist signup: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("{}"))
}

// computeUseCase flattens the use case checkboxes. "None" stands
// alone, picking it discards every other selection.
func computeUseCase(selections []string) string {
	for _, s := range selections {
		if s == "None" {
			return "None"
		}
	}
	return strings.Join(selections, ", ")
}

func enterpriseContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dao := ctx.Value("store").(*store.Store)

	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Company  string `json:"company"`
		Title    string `json:"title"`
		Phone    string `json:"phone"`
		TeamSize string `json:"teamSize"`
		Message  string `json:"message"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if strings.TrimSpace(payload.Name) == "" || !emailPattern.MatchString(email) {
		http.Error(w, "Please provide your name and a valid email address.", 400)
		return
	}
	if strings.TrimSpace(payload.Company) == "" {
		http.Error(w, "Please provide your company name.", 400)
		return
	}

	err = dao.CreateEnterpriseContact(&model.EnterpriseContact{
		Name:     strings.TrimSpace(payload.Name),
		Email:    email,
		Company:  strings.TrimSpace(payload.Company),
		Title:    strings.TrimSpace(payload.Title),
		Phone:    strings.TrimSpace(payload.Phone),
		TeamSize: payload.TeamSize,
		Message:  strings.TrimSpace(payload.Message),
		Status:   "new",
		Created:  time.Now().Unix(),
	})
	if err != nil {
		logrus.Errorf("cannot save enterprise contact: %s", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("{}"))
}
