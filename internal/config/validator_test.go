package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

func validDocument() *Document {
	return &Document{
		Format: "warden",
		OS:     "linux",
		Score:  100,
		Users: []UserEntry{
			{Name: "alice", Allowed: true},
		},
	}
}

func requireValidationError(t *testing.T, err error) *wardenerrors.ValidationError {
	t.Helper()

	var validationErr *wardenerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	return validationErr
}

func TestValidateDocumentAccepts(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateDocument(validDocument()))
}

func TestValidateDocumentNil(t *testing.T) {
	t.Parallel()

	requireValidationError(t, ValidateDocument(nil))
}

func TestValidateDocumentUnknownFormat(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Format = "other"

	err := requireValidationError(t, ValidateDocument(doc))
	require.Contains(t, err.Field, "format")
}

func TestValidateDocumentUnknownOS(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.OS = "darwin"

	requireValidationError(t, ValidateDocument(doc))
}

func TestValidateDocumentMissingScore(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Score = 0

	requireValidationError(t, ValidateDocument(doc))
}

func TestValidateDocumentWindowsKindsRejectedOnLinux(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Services = []ServiceEntry{{Name: "wuauserv"}}

	err := requireValidationError(t, ValidateDocument(doc))
	require.Equal(t, "os", err.Field)
}

func TestValidateDocumentLinuxKindsRejectedOnWindows(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.OS = "windows"
	doc.Packages = []PackageEntry{{Name: "ufw"}}

	err := requireValidationError(t, ValidateDocument(doc))
	require.Equal(t, "os", err.Field)
}

func TestValidateDocumentDuplicateUsers(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Users = append(doc.Users, UserEntry{Name: "alice"})

	err := requireValidationError(t, ValidateDocument(doc))
	require.Contains(t, err.Message, "duplicate user")
}

func TestValidateDocumentDuplicateQuestions(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.ChallengeQuestions = []QuestionEntry{
		{Name: "Question 1", Content: "a", Answer: "b"},
		{Name: "Question 1", Content: "c", Answer: "d"},
	}

	err := requireValidationError(t, ValidateDocument(doc))
	require.Contains(t, err.Message, "duplicate question")
}

func TestValidateDocumentInvalidRegistryHive(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.OS = "windows"
	doc.Users = nil
	doc.RegistryEntries = []RegistryEntry{
		{Hive: "HKEY_CLASSES_ROOT", KeyPath: `SOFTWARE\X`, ValueName: "Y"},
	}

	requireValidationError(t, ValidateDocument(doc))
}
