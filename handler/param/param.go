package param

import (
	"encoding/json"
	"fmt"
	"net/http"
	"overseer/core"

	"github.com/asaskevich/govalidator"
)

// Binding decode the json body into v and validate its `valid` tags
func Binding(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidArgument, err)
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidArgument, err)
	}

	return nil
}
