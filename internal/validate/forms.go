// ABOUTME: Per-form validators returning the cleaned input ready to send.
// ABOUTME: Covers comments, contact, posts, profiles, login, and signup.
package validate

import (
	"strings"

	"github.com/2389-research/inkwell/internal/models"
)

type commentForm struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// Comment trims text and checks it is 1 to 1000 characters.
func Comment(text string) (string, error) {
	f := commentForm{Text: strings.TrimSpace(text)}
	if err := check(f); err != nil {
		return "", err
	}
	return f.Text, nil
}

type contactForm struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Contact validates the contact form. Lengths are measured after trimming.
func Contact(in models.ContactInput) (models.ContactInput, error) {
	f := contactForm{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := check(f); err != nil {
		return models.ContactInput{}, err
	}
	return models.ContactInput(f), nil
}

type postForm struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"richtext"`
	CoverImage string `json:"coverImage" validate:"omitempty,url"`
}

// Post validates a post form and parses its comma separated tags.
func Post(title, content, coverImage, tags string) (models.PostInput, error) {
	f := postForm{
		Title:      strings.TrimSpace(title),
		Content:    content,
		CoverImage: strings.TrimSpace(coverImage),
	}
	if err := check(f); err != nil {
		return models.PostInput{}, err
	}
	return models.PostInput{
		Title:      f.Title,
		Content:    f.Content,
		CoverImage: f.CoverImage,
		Tags:       ParseTags(tags),
	}, nil
}

// ParseTags splits on commas, trims, lower-cases, and drops empty entries.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

type profileForm struct {
	Username string `json:"username" validate:"required"`
	Bio      string `json:"bio" validate:"max=500"`
}

// Profile validates a profile edit.
func Profile(in models.ProfileInput) (models.ProfileInput, error) {
	f := profileForm{
		Username: strings.TrimSpace(in.Username),
		Bio:      strings.TrimSpace(in.Bio),
	}
	if err := check(f); err != nil {
		return models.ProfileInput{}, err
	}
	return models.ProfileInput(f), nil
}

// allRequired is shown when a login or signup field is blank.
const allRequired = "All fields are required"

// Login checks both credentials are present.
func Login(email, password string) (models.Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		e := newError()
		if email == "" {
			e.add("email", allRequired)
		}
		if password == "" {
			e.add("password", allRequired)
		}
		return models.Credentials{}, e
	}
	return models.Credentials{Email: email, Password: password}, nil
}

type signupForm struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// Signup validates registration. Blank fields are reported before format rules.
func Signup(username, email, password, confirm string) (models.Registration, error) {
	f := signupForm{
		Username:        strings.TrimSpace(username),
		Email:           strings.TrimSpace(email),
		Password:        password,
		ConfirmPassword: confirm,
	}
	if f.Username == "" || f.Email == "" || f.Password == "" {
		e := newError()
		if f.Username == "" {
			e.add("username", allRequired)
		}
		if f.Email == "" {
			e.add("email", allRequired)
		}
		if f.Password == "" {
			e.add("password", allRequired)
		}
		return models.Registration{}, e
	}
	if err := check(f); err != nil {
		return models.Registration{}, err
	}
	return models.Registration{Username: f.Username, Email: f.Email, Password: f.Password}, nil
}
