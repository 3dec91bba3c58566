package models

// GenerateRequest is the payload sent to the resume-tailoring API when the
// source resume is plain text.
type GenerateRequest struct {
	// ResumeText is the full plaintext of the source resume.
	ResumeText string `json:"resume_text"`

	// JobDescription is the target vacancy text the resume is tailored to.
	JobDescription string `json:"job_description"`
}

// GenerateFileRequest describes a generation request whose source resume is
// uploaded as a file (PDF/DOCX). The file itself travels as a multipart part;
// this struct carries the accompanying fields.
type GenerateFileRequest struct {
	// FilePath is the local path of the resume file to upload.
	FilePath string `json:"-"`

	// JobDescription is the target vacancy text the resume is tailored to.
	JobDescription string `json:"job_description"`
}

// GenerateResponse is the resume-tailoring API's answer to a generation call.
type GenerateResponse struct {
	// TailoredResume is the generated resume text.
	TailoredResume string `json:"tailored_resume"`

	// Summary is an optional short description of the changes made.
	Summary string `json:"summary,omitempty"`

	// CreditsRemaining is the backend's view of the caller's balance after
	// the generation, when the backend reports it.
	CreditsRemaining int64 `json:"credits_remaining,omitempty"`
}
