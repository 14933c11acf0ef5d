package request_models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	PasswordVersion LooseInt `json:"passwordVersion"`
}

// LooseInt accepts a JSON number or a base-10 numeric string. Anything else
// decodes to 0, which never matches a stored version.
type LooseInt int

func (v *LooseInt) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var (
		n   int
		err error
	)
	if s, ok := raw.(string); ok {
		n, err = strconv.Atoi(strings.TrimSpace(s))
	} else {
		n, err = cast.ToIntE(raw)
	}
	if err != nil {
		n = 0
	}
	*v = LooseInt(n)
	return nil
}
