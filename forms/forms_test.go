package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "trims", input: "  hello  ", max: DefaultTextMax, want: "hello"},
		{name: "drops control chars", input: "a\x00b\x07c\x7f", max: DefaultTextMax, want: "abc"},
		{name: "keeps newlines and tabs", input: "a\nb\tc\rd", max: DefaultTextMax, want: "a\nb\tc\rd"},
		{name: "truncates by rune", input: "héllo wörld", max: 5, want: "héllo"},
		{name: "empty", input: "", max: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input, tt.max))
		})
	}
}

func TestSanitizeUsername(t *testing.T) {
	assert.Equal(t, "fantasy_king99", SanitizeUsername("fantasy_king99"))
	assert.Equal(t, "badname", SanitizeUsername("bad name!<>"))
	assert.Equal(t, "", SanitizeUsername("   "))
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "coach@example.com", SanitizeEmail("  Coach@Example.COM "))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "O'Brien's Dynasty - 2026", SanitizeName("  O'Brien's Dynasty - 2026!! "))
	assert.Equal(t, "Sunday_League", SanitizeName("<Sunday_League>"))
}

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "Weekly PPR league", want: "Weekly PPR league"},
		{name: "strips tags", input: "<b>Bold</b> move", want: "Bold move"},
		{name: "strips script block", input: "hi<script>alert('x')</script> there", want: "hi there"},
		{name: "strips script across lines", input: "a<SCRIPT type=\"x\">\nbad()\n</script>b", want: "ab"},
		{name: "strips schemes", input: "click JavaScript:void(0) or DATA:text", want: "click void(0) or text"},
		{name: "strips control chars", input: "  tab\tok\x00\x07 ", want: "tab\tok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeDescription(tt.input, DefaultDescriptionMax))
		})
	}

	long := strings.Repeat("x", 600)
	assert.Len(t, SanitizeDescription(long, DefaultDescriptionMax), 500)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{name: "empty", password: "", want: []string{"Password is required"}},
		{name: "valid", password: "Touchd0wn!", want: nil},
		{name: "short", password: "Ab1!", want: []string{"Password must be at least 8 characters"}},
		{
			name:     "lowercase only",
			password: "password",
			want: []string{
				"Password must contain at least one uppercase letter",
				"Password must contain at least one number",
				"Password must contain at least one special character",
			},
		},
		{name: "space counts as special", password: "Fantasy 2026", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePassword(tt.password)
			assert.Equal(t, tt.want, res.Errors)
			assert.Equal(t, len(tt.want) == 0, res.Valid)
		})
	}

	assert.Equal(t, "", PasswordError("Touchd0wn!"))
	assert.Equal(t, "Password must contain at least one uppercase letter", PasswordError("password"))
}

func TestLoginFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form LoginForm
		want FieldErrors
	}{
		{name: "valid", form: LoginForm{Email: "coach@example.com", Password: "x"}},
		{
			name: "missing both",
			form: LoginForm{},
			want: FieldErrors{"email": "Email is required", "password": "Password is required"},
		},
		{
			name: "bad email",
			form: LoginForm{Email: "not-an-email", Password: "x"},
			want: FieldErrors{"email": "Enter a valid email address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.want, fe)
		})
	}
}

func TestSignupFormValidate(t *testing.T) {
	valid := SignupForm{
		Username:        "gridiron_guru",
		Email:           "guru@example.com",
		Password:        "Touchd0wn!",
		ConfirmPassword: "Touchd0wn!",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(f *SignupForm)
		field  string
		want   string
	}{
		{name: "missing username", mutate: func(f *SignupForm) { f.Username = "" }, field: "username", want: "Username is required"},
		{name: "short username", mutate: func(f *SignupForm) { f.Username = "ab" }, field: "username", want: "Username must be at least 3 characters"},
		{name: "long username", mutate: func(f *SignupForm) { f.Username = strings.Repeat("a", 21) }, field: "username", want: "Username must be 20 characters or less"},
		{name: "bad username chars", mutate: func(f *SignupForm) { f.Username = "bad name" }, field: "username", want: "Username can only contain letters, numbers, and underscores"},
		{name: "weak password", mutate: func(f *SignupForm) { f.Password = "touchdown"; f.ConfirmPassword = "touchdown" }, field: "password", want: "Password must contain at least one uppercase letter"},
		{name: "missing confirm", mutate: func(f *SignupForm) { f.ConfirmPassword = "" }, field: "confirmPassword", want: "Please confirm your password"},
		{name: "mismatch", mutate: func(f *SignupForm) { f.ConfirmPassword = "Touchd0wn?" }, field: "confirmPassword", want: "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			var fe FieldErrors
			require.ErrorAs(t, form.Validate(), &fe)
			assert.Equal(t, tt.want, fe[tt.field])
		})
	}
}

func TestFormNormalize(t *testing.T) {
	login := LoginForm{Email: "  Coach@Example.com "}
	login.Normalize()
	assert.Equal(t, "coach@example.com", login.Email)

	signup := SignupForm{Username: " guru ", Email: " GURU@example.com", Password: " spaced "}
	signup.Normalize()
	assert.Equal(t, "guru", signup.Username)
	assert.Equal(t, "guru@example.com", signup.Email)
	assert.Equal(t, " spaced ", signup.Password)

	reset := ResetForm{Email: "A@B.CO "}
	reset.Normalize()
	assert.Equal(t, "a@b.co", reset.Email)
}

func TestFieldErrorsMessage(t *testing.T) {
	fe := FieldErrors{"password": "Password is required", "email": "Email is required"}
	assert.Equal(t, "invalid form: email: Email is required; password: Password is required", fe.Error())
}

func TestCreateLeagueFormValidate(t *testing.T) {
	valid := CreateLeagueForm{Name: "Sunday Dynasty", Description: "Weekly PPR league", MaxTeams: 8}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(f *CreateLeagueForm)
		field  string
		want   string
	}{
		{name: "missing name", mutate: func(f *CreateLeagueForm) { f.Name = "" }, field: "name", want: "League name is required"},
		{name: "blank name", mutate: func(f *CreateLeagueForm) { f.Name = "   " }, field: "name", want: "League name is required"},
		{name: "short name", mutate: func(f *CreateLeagueForm) { f.Name = "ab" }, field: "name", want: "League name must be at least 3 characters"},
		{name: "long name", mutate: func(f *CreateLeagueForm) { f.Name = strings.Repeat("a", 51) }, field: "name", want: "League name must be less than 50 characters"},
		{name: "long description", mutate: func(f *CreateLeagueForm) { f.Description = strings.Repeat("d", 501) }, field: "description", want: "Description must be less than 500 characters"},
		{name: "too few teams", mutate: func(f *CreateLeagueForm) { f.MaxTeams = 1 }, field: "maxTeams", want: "Max teams must be between 2 and 16"},
		{name: "too many teams", mutate: func(f *CreateLeagueForm) { f.MaxTeams = 17 }, field: "maxTeams", want: "Max teams must be between 2 and 16"},
		{name: "unset teams", mutate: func(f *CreateLeagueForm) { f.MaxTeams = 0 }, field: "maxTeams", want: "Max teams must be between 2 and 16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			var fe FieldErrors
			require.ErrorAs(t, form.Validate(), &fe)
			assert.Equal(t, tt.want, fe[tt.field])
			assert.Len(t, fe, 1)
		})
	}

	edges := CreateLeagueForm{Name: strings.Repeat("a", 50), Description: strings.Repeat("d", 500), MaxTeams: 16}
	require.NoError(t, edges.Validate())
	edges = CreateLeagueForm{Name: "abc", MaxTeams: 2}
	require.NoError(t, edges.Validate())
}

func TestCreateLeagueFormNormalize(t *testing.T) {
	form := CreateLeagueForm{
		Name:        "  <The> Gridiron Club!! ",
		Description: " <p>Bring snacks</p><script>steal()</script> ",
		MaxTeams:    10,
	}
	form.Normalize()

	assert.Equal(t, "The Gridiron Club", form.Name)
	assert.Equal(t, "Bring snacks", form.Description)
	assert.Equal(t, 10, form.MaxTeams)
}

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		require.Len(t, code, InviteCodeLength)
		for _, c := range code {
			assert.Contains(t, inviteAlphabet, string(c))
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		seen[code] = true
	}
	assert.Len(t, seen, 50)
}
