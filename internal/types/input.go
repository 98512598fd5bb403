// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxUploadedResumeBytes caps uploaded resume files and the text taken from them.
const MaxUploadedResumeBytes = 5 * 1024 * 1024

// ErrNameOrResumeRequired is returned when a generation request carries neither
// a name nor uploaded resume text.
var ErrNameOrResumeRequired = errors.New("please provide at least your full name or upload a resume")

// PersonalInfo holds the contact block of the builder form.
type PersonalInfo struct {
	Name           string `json:"name" validate:"max=200"`
	Email          string `json:"email" validate:"max=320"`
	Phone          string `json:"phone" validate:"max=50"`
	LinkedIn       string `json:"linkedin,omitempty" validate:"max=500"`
	Portfolio      string `json:"portfolio,omitempty" validate:"max=500"`
	Address        string `json:"address,omitempty" validate:"max=500"`
	TargetRole     string `json:"targetRole,omitempty" validate:"max=200"`
	TargetIndustry string `json:"targetIndustry,omitempty" validate:"max=200"`
}

// ExperienceInput is one job as typed by the user. Achievements is free text.
type ExperienceInput struct {
	JobTitle     string `json:"jobTitle"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Achievements string `json:"achievements"`
}

// EducationInput is one education entry as typed by the user.
type EducationInput struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduationDate"`
	Notes          string `json:"notes,omitempty"`
}

// UserInput is the raw form data sent to the content generator.
// Its JSON encoding is embedded verbatim in the generation prompt.
type UserInput struct {
	Personal   PersonalInfo      `json:"personal"`
	Summary    string            `json:"summary"`
	Experience []ExperienceInput `json:"experience" validate:"max=50"`
	Education  []EducationInput  `json:"education" validate:"max=20"`
	Skills     string            `json:"skills"`
}

// GenerateRequest bundles the user input with the optional context used to
// tailor the generated resume.
type GenerateRequest struct {
	Input                     UserInput `json:"input"`
	JobDescription            string    `json:"jobDescription,omitempty" validate:"max=100000"`
	CustomizationInstructions string    `json:"customizationInstructions,omitempty" validate:"max=10000"`
	UploadedResumeText        string    `json:"uploadedResumeText,omitempty" validate:"max=5242880"`
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.Input.Personal.Name) == "" && strings.TrimSpace(r.UploadedResumeText) == "" {
		return ErrNameOrResumeRequired
	}
	return nil
}

// FeedbackRequest asks for a critique of a generated resume.
type FeedbackRequest struct {
	Resume                    ResumeDocument `json:"resume"`
	JobDescription            string         `json:"jobDescription,omitempty" validate:"max=100000"`
	CustomizationInstructions string         `json:"customizationInstructions,omitempty" validate:"max=10000"`
	TargetRole                string         `json:"targetRole,omitempty" validate:"max=200"`
	TargetIndustry            string         `json:"targetIndustry,omitempty" validate:"max=200"`
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
