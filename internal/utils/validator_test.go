package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type usernameFixture struct {
	Username string `validate:"required,max=20,username_validation"`
}

func TestUsernameValidation(t *testing.T) {
	validator := GetValidator()

	valid := []string{"traveler", "user.name", "user-name", "user_name", "User123"}
	for _, username := range valid {
		assert.NoError(t, validator.Validate.Struct(&usernameFixture{Username: username}), username)
	}

	invalid := []string{"", "user name", "user@name", "über", "a-very-long-username-over-twenty"}
	for _, username := range invalid {
		assert.Error(t, validator.Validate.Struct(&usernameFixture{Username: username}), username)
	}
}

type sanitizeFixture struct {
	Title  string
	Nested struct {
		Comment string
	}
	Tags []string
}

func TestSanitizeStructStripsMarkup(t *testing.T) {
	validator := GetValidator()

	fixture := &sanitizeFixture{
		Title: `Hello <script>alert("x")</script>World`,
		Tags:  []string{"<b>beach</b>", "hiking"},
	}
	fixture.Nested.Comment = `<img src=x onerror=alert(1)>nice`

	validator.SanitizeStruct(fixture)

	assert.Equal(t, "Hello World", fixture.Title)
	assert.Equal(t, "nice", fixture.Nested.Comment)
	assert.Equal(t, []string{"beach", "hiking"}, fixture.Tags)
}
