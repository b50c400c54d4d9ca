package validation

import "testing"

type samplePayload struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func TestStructValid(t *testing.T) {
	details := Struct(samplePayload{
		Email:           "ada@x.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if details != nil {
		t.Fatalf("valid payload produced details: %v", details)
	}
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	details := Struct(samplePayload{Email: "not-an-email", Password: "short", ConfirmPassword: "other"})
	if details == nil {
		t.Fatal("invalid payload produced no details")
	}
	if _, ok := details["email"]; !ok {
		t.Fatalf("details keyed by Go field name, want json name: %v", details)
	}
	if got := details["password"]; got != "must be at least 8 characters long" {
		t.Fatalf("password message = %q", got)
	}
	if got := details["confirmPassword"]; got != "must match Password" {
		t.Fatalf("confirmPassword message = %q", got)
	}
}

func TestStructMissingRequired(t *testing.T) {
	details := Struct(samplePayload{})
	if details == nil {
		t.Fatal("empty payload passed validation")
	}
	if got := details["email"]; got != "is required" {
		t.Fatalf("email message = %q", got)
	}
}
