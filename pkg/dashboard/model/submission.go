package model

// Application is a job application submitted on the careers page.
// Records are write-once, the dashboard never reads them back.
type Application struct {
	ID                int64  `json:"-" meddler:"id,pk"`
	Name              string `json:"name" meddler:"name"`
	Email             string `json:"email" meddler:"email"`
	Location          string `json:"location" meddler:"location"`
	ResumeURL         string `json:"resumeUrl" meddler:"resume_url"`
	ResumeFileName    string `json:"resumeFileName" meddler:"resume_file_name"`
	ResumeContentType string `json:"resumeContentType" meddler:"resume_content_type"`
	ResumeSize        int64  `json:"resumeSize" meddler:"resume_size"`
	Created           int64  `json:"created" meddler:"created"`
}

// WaitlistSubmission is a product waitlist signup
type WaitlistSubmission struct {
	ID       int64  `json:"-" meddler:"id,pk"`
	Name     string `json:"name" meddler:"name"`
	Email    string `json:"email" meddler:"email"`
	Location string `json:"location" meddler:"location"`
	UseCase  string `json:"useCase" meddler:"use_case"`
	Company  string `json:"company" meddler:"company"`
	Position string `json:"position" meddler:"position"`
	Created  int64  `json:"created" meddler:"created"`
}

// EnterpriseContact is a sales inquiry from the enterprise contact page
type EnterpriseContact struct {
	ID       int64  `json:"-" meddler:"id,pk"`
	Name     string `json:"name" meddler:"name"`
	Email    string `json:"email" meddler:"email"`
	Company  string `json:"company" meddler:"company"`
	Title    string `json:"title" meddler:"title"`
	Phone    string `json:"phone" meddler:"phone"`
	TeamSize string `json:"teamSize" meddler:"team_size"`
	Message  string `json:"message" meddler:"message"`
	Status   string `json:"status" meddler:"status"`
	Created  int64  `json:"created" meddler:"created"`
}

// AcceptedUser marks a user as let in from the waitlist.
// The row's existence grants access, it carries no other meaning.
// Rows are written by the admin API, the dashboard only reads them.
type AcceptedUser struct {
	ID       int64  `json:"-" meddler:"id,pk"`
	Login    string `json:"login" meddler:"login"`
	Accepted int64  `json:"accepted" meddler:"accepted"`
}
