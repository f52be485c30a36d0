package httpapi

import (
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	validation "github.com/go-ozzo/ozzo-validation"
)

const maxUserNameLength = 255

// credentialsPayload carries username and password from the query string
// or a form body.
type credentialsPayload struct {
	UserName string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate checks a registration request.
func (r credentialsPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, validation.Length(1, maxUserNameLength)),
		validation.Field(&r.Password, validation.By(maxBytes(auth.MaxPasswordBytes))),
	)
}

// ValidateLogin checks a token request. Password length is left to
// auth.Hasher.Verify, which treats an over-long password as a mismatch.
func (r credentialsPayload) ValidateLogin() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.Required, validation.Length(1, maxUserNameLength)),
	)
}

// maxBytes limits the encoded length of a string; bcrypt looks at bytes,
// not runes.
func maxBytes(n int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if len(s) > n {
			return fmt.Errorf("must be no more than %d bytes", n)
		}
		return nil
	}
}
