package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

func validate(form signupForm) map[string]string {
	if err := binding.Validator.ValidateStruct(form); err != nil {
		return ToDetails(err)
	}
	return nil
}

func TestStrongPasswordAlias(t *testing.T) {
	Init()

	ok := signupForm{Email: "a@example.com", Password: "Password!1"}
	require.Nil(t, validate(ok))

	cases := map[string]string{
		"too short":  "Pw!1",
		"no digit":   "Password!",
		"no upper":   "password!1",
		"no lower":   "PASSWORD!1",
		"no symbol":  "Password11",
	}
	for name, pwd := range cases {
		t.Run(name, func(t *testing.T) {
			details := validate(signupForm{Email: "a@example.com", Password: pwd})
			require.Contains(t, details, "password")
		})
	}
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	Init()

	details := validate(signupForm{Email: "not-an-email", Password: "Password!1"})
	require.Contains(t, details, "email")
	require.Equal(t, "must be a valid email", details["email"])
}

func TestToDetailsNilError(t *testing.T) {
	require.Nil(t, ToDetails(nil))
}
