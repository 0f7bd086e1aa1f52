package restapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/foliohq/folioclient/internal/wirecase"
)

// Call describes one endpoint invocation. It is stateless and constructed
// per call. Params and Body carry camelCase keys; the transport converts
// them to the snake_case wire format at dispatch.
type Call struct {
	Method string
	Path   string
	Params map[string]interface{}
	Body   interface{}

	// Accept decides which status codes continue to envelope unwrapping.
	// Nil means AcceptSuccess.
	Accept StatusValidator
}

// acceptStatus applies the call's validator, defaulting to AcceptSuccess.
func (c Call) acceptStatus(status int) bool {
	if c.Accept == nil {
		return AcceptSuccess(status)
	}
	return c.Accept(status)
}

// queryValues converts camelCase params to snake_case query values. Slices
// encode comma-separated, matching the backend's list parameter format.
func queryValues(params map[string]interface{}) url.Values {
	wired, ok := wirecase.ToWire(params).(map[string]interface{})
	if !ok {
		return url.Values{}
	}

	values := url.Values{}
	for k, v := range wired {
		values.Set(k, formatQueryValue(v))
	}
	return values
}

func formatQueryValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, formatQueryValue(p))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(t, ",")
	default:
		return fmt.Sprint(t)
	}
}
