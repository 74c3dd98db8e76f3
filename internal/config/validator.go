package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})

	return validateInst
}

// ValidateDocument performs schema and cross-field validation on the
// image description.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return wardenerrors.NewValidationError("document", "document is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(doc); err != nil {
		return convertValidationError(err)
	}

	// Descriptors that only make sense for one OS family must not appear
	// in a document targeting the other.
	if doc.OS == "linux" {
		if len(doc.Services) > 0 || len(doc.Programs) > 0 ||
			len(doc.RegistryEntries) > 0 || len(doc.Firewall) > 0 {
			return wardenerrors.NewValidationError("os", "windows-only resource kinds present in a linux document", nil)
		}
	}
	if doc.OS == "windows" {
		if len(doc.Processes) > 0 || len(doc.Packages) > 0 || len(doc.ConfigFiles) > 0 {
			return wardenerrors.NewValidationError("os", "linux-only resource kinds present in a windows document", nil)
		}
	}

	seenUsers := make(map[string]struct{}, len(doc.Users))
	for i, user := range doc.Users {
		if _, dup := seenUsers[user.Name]; dup {
			return wardenerrors.NewValidationError(
				fmt.Sprintf("users[%d].name", i), fmt.Sprintf("duplicate user %q", user.Name), nil)
		}
		seenUsers[user.Name] = struct{}{}
	}

	seenQuestions := make(map[string]struct{}, len(doc.ChallengeQuestions))
	for i, question := range doc.ChallengeQuestions {
		if _, dup := seenQuestions[question.Name]; dup {
			return wardenerrors.NewValidationError(
				fmt.Sprintf("challenge_questions[%d].name", i), fmt.Sprintf("duplicate question %q", question.Name), nil)
		}
		seenQuestions[question.Name] = struct{}{}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return wardenerrors.NewValidationError(field, msg, err)
	}

	return wardenerrors.NewValidationError("document", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
