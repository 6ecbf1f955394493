package validator

import "testing"

func TestCheckCollectsFirstError(t *testing.T) {
	v := New()
	v.Check(false, "name", "must be provided")
	v.Check(false, "name", "second message is ignored")

	if v.Valid() {
		t.Fatal("expected validator to be invalid")
	}
	if got := v.Errors["name"]; got != "must be provided" {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestMatchesEmail(t *testing.T) {
	if !Matches("user@example.com", EmailRX) {
		t.Error("valid email rejected")
	}
	if Matches("not-an-email", EmailRX) {
		t.Error("invalid email accepted")
	}
}

func TestMatchesPhoneAndCode(t *testing.T) {
	if !Matches("9876543210", PhoneRX) {
		t.Error("valid phone rejected")
	}
	if Matches("98765", PhoneRX) {
		t.Error("short phone accepted")
	}
	if !Matches("123456", CodeRX) {
		t.Error("valid code rejected")
	}
	if Matches("12345a", CodeRX) {
		t.Error("non-numeric code accepted")
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("cash", "cash", "online") {
		t.Error("permitted value rejected")
	}
	if PermittedValue("card", "cash", "online") {
		t.Error("unknown value accepted")
	}
}
