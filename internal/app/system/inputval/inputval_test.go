package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"a@b.co", true},
		{"admin@mailserver", true},

		// Invalid emails - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid emails - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Invalid emails - bad format
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},

		// Display name format is rejected
		{"User Name <user@example.com>", false},

		{"user @example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"1234567890", true},
		{"0000000000", true},
		{"123456789", false},
		{"12345678901", false},
		{"123-456-789", false},
		{"12345６7890", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsValidPhone(tt.phone); got != tt.want {
			t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestParseFloatIn(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12.5", 12.5, true},
		{" -90 ", -90, true},
		{"90", 90, true},
		{"90.0001", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseFloatIn(tt.in, -90, 90)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseFloatIn(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseIntIn(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"10", 10, true},
		{"1000", 1000, true},
		{"9", 0, false},
		{"1001", 0, false},
		{"50.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseIntIn(tt.in, 10, 1000)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseIntIn(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCheckbox(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "YES"} {
		if !Checkbox(v) {
			t.Errorf("Checkbox(%q) = false", v)
		}
	}
	for _, v := range []string{"", "off", "0", "no"} {
		if Checkbox(v) {
			t.Errorf("Checkbox(%q) = true", v)
		}
	}
}

func TestValidate(t *testing.T) {
	type input struct {
		Name     string `validate:"required,max=10" label:"Full name"`
		Email    string `validate:"omitempty,mailbox" label:"Email"`
		Phone    string `validate:"phone10" label:"Phone number"`
		Radius   string `validate:"floatin=10:1000" label:"Radius" msg:"Radius must be between 10 and 1000 meters"`
		Creating bool
		Password string `validate:"required_if=Creating true" label:"Password"`
	}
	valid := func() input {
		return input{Name: "Ada", Phone: "1234567890", Radius: "100"}
	}

	tests := []struct {
		name   string
		mutate func(*input)
		want   string
	}{
		{"valid", func(*input) {}, ""},
		{"missing name", func(in *input) { in.Name = "" }, "Full name is required"},
		{"long name", func(in *input) { in.Name = "Augusta Ada King" }, "Full name must be at most 10 characters"},
		{"bad email", func(in *input) { in.Email = "not-an-email" }, "A valid email address is required"},
		{"blank email allowed", func(in *input) { in.Email = "" }, ""},
		{"short phone", func(in *input) { in.Phone = "12345" }, "Phone number must be 10 digits"},
		{"radius message override", func(in *input) { in.Radius = "5" }, "Radius must be between 10 and 1000 meters"},
		{"radius not a number", func(in *input) { in.Radius = "wide" }, "Radius must be between 10 and 1000 meters"},
		{"password when creating", func(in *input) { in.Creating = true }, "Password is required"},
		{"password given", func(in *input) { in.Creating = true; in.Password = "secret" }, ""},
		{"first error wins", func(in *input) { in.Name = ""; in.Phone = "" }, "Full name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			res := Validate(in)
			if got := res.First(); got != tt.want {
				t.Errorf("First() = %q, want %q", got, tt.want)
			}
			if res.HasErrors() != (tt.want != "") {
				t.Errorf("HasErrors() = %v", res.HasErrors())
			}
		})
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if got := r.All(); got != "Error 1; Error 2" {
		t.Errorf("All() = %q", got)
	}
	if got := (&Result{}).All(); got != "" {
		t.Errorf("empty All() = %q", got)
	}
}
