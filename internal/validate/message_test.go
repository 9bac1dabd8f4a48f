package validate

import (
	"strings"
	"testing"

	"realty-marketplace/internal/apperr"
	"realty-marketplace/internal/models"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"seeker.one@example.com", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"user@", false},
		{"user@domain", false},
		{"user name@example.com", false},
		{"", false},
		{strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidEmail(tt.email); got != tt.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+12025550123", true},
		{"202-555-0123", true},
		{"(202) 555-0123", true},
		{"123456", true},
		{"12345", false},
		{"abc-def", false},
		{"+1 (202) 555-0123", true},
		{"123456789012345678901", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := ValidPhone(tt.phone); got != tt.want {
				t.Errorf("ValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestMessageInsert(t *testing.T) {
	valid := func() models.Message {
		return models.Message{
			PropertyID: "p1",
			SeekerID:   "seeker-1",
			Body:       "Is this still available?",
			Email:      "seeker@example.com",
			Phone:      "+12025550123",
		}
	}

	t.Run("valid message passes", func(t *testing.T) {
		m := valid()
		if err := MessageInsert("seeker-1", &m); err != nil {
			t.Fatalf("MessageInsert() = %v, want nil", err)
		}
	})

	t.Run("contact fields are optional", func(t *testing.T) {
		m := valid()
		m.Email = ""
		m.Phone = ""
		if err := MessageInsert("seeker-1", &m); err != nil {
			t.Fatalf("MessageInsert() = %v, want nil", err)
		}
	})

	t.Run("whitespace body rejected", func(t *testing.T) {
		m := valid()
		m.Body = "   \n\t  "
		if err := MessageInsert("seeker-1", &m); err == nil {
			t.Fatal("whitespace-only body should be rejected")
		}
	})

	t.Run("body at limit passes", func(t *testing.T) {
		m := valid()
		m.Body = strings.Repeat("x", MaxBodyLength)
		if err := MessageInsert("seeker-1", &m); err != nil {
			t.Fatalf("body of %d chars rejected: %v", MaxBodyLength, err)
		}
	})

	t.Run("body over limit rejected", func(t *testing.T) {
		m := valid()
		m.Body = strings.Repeat("x", MaxBodyLength+1)
		if err := MessageInsert("seeker-1", &m); err == nil {
			t.Fatalf("body of %d chars should be rejected", MaxBodyLength+1)
		}
	})

	t.Run("body length counts runes not bytes", func(t *testing.T) {
		m := valid()
		m.Body = strings.Repeat("日", MaxBodyLength)
		if err := MessageInsert("seeker-1", &m); err != nil {
			t.Fatalf("multibyte body at rune limit rejected: %v", err)
		}
	})

	t.Run("seeker mismatch rejected", func(t *testing.T) {
		m := valid()
		if err := MessageInsert("someone-else", &m); err == nil {
			t.Fatal("mismatched seeker should be rejected")
		}
	})

	t.Run("all failures reported at once", func(t *testing.T) {
		m := models.Message{
			PropertyID: "p1",
			SeekerID:   "seeker-2",
			Body:       "",
			Email:      "not-an-email",
			Phone:      "abc",
		}

		err := MessageInsert("seeker-1", &m)
		ve, ok := apperr.AsValidation(err)
		if !ok {
			t.Fatalf("MessageInsert() = %v, want ValidationError", err)
		}
		if len(ve.Reasons) != 4 {
			t.Errorf("got %d reasons, want 4: %v", len(ve.Reasons), ve.Reasons)
		}
	})
}

func TestProfileContact(t *testing.T) {
	if err := ProfileContact(""); err != nil {
		t.Errorf("empty phone should pass: %v", err)
	}
	if err := ProfileContact("+12025550123"); err != nil {
		t.Errorf("valid phone should pass: %v", err)
	}
	if err := ProfileContact("nope"); err == nil {
		t.Error("malformed phone should be rejected")
	}
}
