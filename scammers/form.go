package scammers

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/linesmerrill/scammer-blacklist/models"
)

// Form field names, as posted by the report page
const (
	FieldProfileLink = "profileLink"
	FieldName        = "name"
	FieldCompany     = "company"
	FieldScamType    = "scamType"
	FieldNotes       = "notes"
)

// FormFields lists the form fields in the order they appear on the page
var FormFields = []string{FieldProfileLink, FieldName, FieldCompany, FieldScamType, FieldNotes}

// MinNotesLength is the minimum length of notes authored through the form
const MinNotesLength = 10

var linkedInProfileRE = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[a-zA-Z0-9_-]+/?.*$`)

var fieldMessages = map[string]map[string]string{
	FieldProfileLink: {
		"required":         "Please enter a valid URL",
		"url":              "Please enter a valid URL",
		"linkedin_profile": "Please enter a valid LinkedIn profile URL (e.g., https://www.linkedin.com/in/username)",
	},
	FieldScamType: {
		"required": "Please select a scam type",
		"oneof":    "Please select a valid scam type",
	},
	FieldNotes: {
		"notes_length": "Please provide more details (at least 10 characters)",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	if err := v.RegisterValidation("linkedin_profile", func(fl validator.FieldLevel) bool {
		return linkedInProfileRE.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("notes_length", func(fl validator.FieldLevel) bool {
		return notesLength(fl.Field().String()) >= MinNotesLength
	}); err != nil {
		panic(err)
	}
	return v
}

// notesLength counts UTF-16 code units, the unit the report API measures notes in
func notesLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// ReportForm holds the values of the report submission form
type ReportForm struct {
	ProfileLink string `form:"profileLink" validate:"required,url,linkedin_profile"`
	Name        string `form:"name"`
	Company     string `form:"company"`
	ScamType    string `form:"scamType" validate:"required,oneof=download-suspicios-repo download-suspicios-software investment-scam romance-scam other"`
	Notes       string `form:"notes" validate:"notes_length"`
}

// FieldErrors maps a form field to the message displayed next to it
type FieldErrors map[string]string

// First returns the first failing field in page order
func (fe FieldErrors) First() (field, message string) {
	for _, f := range FormFields {
		if m, ok := fe[f]; ok {
			return f, m
		}
	}
	return "", ""
}

// ReportFormFromValues reads a ReportForm from posted form values
func ReportFormFromValues(values url.Values) ReportForm {
	return ReportForm{
		ProfileLink: strings.TrimSpace(values.Get(FieldProfileLink)),
		Name:        strings.TrimSpace(values.Get(FieldName)),
		Company:     strings.TrimSpace(values.Get(FieldCompany)),
		ScamType:    values.Get(FieldScamType),
		Notes:       values.Get(FieldNotes),
	}
}

// Validate checks the form against the submission schema. It returns nil when
// the form can be submitted, otherwise the first failing rule of every field.
func (f ReportForm) Validate() FieldErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{FieldProfileLink: err.Error()}
	}
	out := FieldErrors{}
	for _, ve := range verrs {
		field := ve.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field][ve.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out[field] = msg
	}
	return out
}

// Input converts the form to the registry API request body
func (f ReportForm) Input() models.ReportInput {
	return models.ReportInput{
		ProfileLink: f.ProfileLink,
		Name:        f.Name,
		Company:     f.Company,
		ScamType:    models.ScamType(f.ScamType),
		Notes:       f.Notes,
	}
}
