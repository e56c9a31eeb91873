package parser

import "sort"

// ServerFaultConstant is the status emitted for untagged variants and for
// the unreachable default arm of every rendered error set.
const ServerFaultConstant = "http.StatusInternalServerError"

// statusConstants maps the status names accepted by -Status to the net/http
// constant written into generated code.
var statusConstants = map[string]string{
	"Ok":                            "http.StatusOK",
	"Created":                       "http.StatusCreated",
	"Accepted":                      "http.StatusAccepted",
	"NoContent":                     "http.StatusNoContent",
	"MovedPermanently":              "http.StatusMovedPermanently",
	"Found":                         "http.StatusFound",
	"SeeOther":                      "http.StatusSeeOther",
	"NotModified":                   "http.StatusNotModified",
	"TemporaryRedirect":             "http.StatusTemporaryRedirect",
	"PermanentRedirect":             "http.StatusPermanentRedirect",
	"BadRequest":                    "http.StatusBadRequest",
	"Unauthorized":                  "http.StatusUnauthorized",
	"PaymentRequired":               "http.StatusPaymentRequired",
	"Forbidden":                     "http.StatusForbidden",
	"NotFound":                      "http.StatusNotFound",
	"MethodNotAllowed":              "http.StatusMethodNotAllowed",
	"NotAcceptable":                 "http.StatusNotAcceptable",
	"ProxyAuthenticationRequired":   "http.StatusProxyAuthRequired",
	"RequestTimeout":                "http.StatusRequestTimeout",
	"Conflict":                      "http.StatusConflict",
	"Gone":                          "http.StatusGone",
	"LengthRequired":                "http.StatusLengthRequired",
	"PreconditionFailed":            "http.StatusPreconditionFailed",
	"PayloadTooLarge":               "http.StatusRequestEntityTooLarge",
	"UriTooLong":                    "http.StatusRequestURITooLong",
	"UnsupportedMediaType":          "http.StatusUnsupportedMediaType",
	"RangeNotSatisfiable":           "http.StatusRequestedRangeNotSatisfiable",
	"ExpectationFailed":             "http.StatusExpectationFailed",
	"ImATeapot":                     "http.StatusTeapot",
	"MisdirectedRequest":            "http.StatusMisdirectedRequest",
	"UnprocessableEntity":           "http.StatusUnprocessableEntity",
	"Locked":                        "http.StatusLocked",
	"FailedDependency":              "http.StatusFailedDependency",
	"UpgradeRequired":               "http.StatusUpgradeRequired",
	"PreconditionRequired":          "http.StatusPreconditionRequired",
	"TooManyRequests":               "http.StatusTooManyRequests",
	"RequestHeaderFieldsTooLarge":   "http.StatusRequestHeaderFieldsTooLarge",
	"UnavailableForLegalReasons":    "http.StatusUnavailableForLegalReasons",
	"InternalServerError":           "http.StatusInternalServerError",
	"NotImplemented":                "http.StatusNotImplemented",
	"BadGateway":                    "http.StatusBadGateway",
	"ServiceUnavailable":            "http.StatusServiceUnavailable",
	"GatewayTimeout":                "http.StatusGatewayTimeout",
	"HttpVersionNotSupported":       "http.StatusHTTPVersionNotSupported",
	"VariantAlsoNegotiates":         "http.StatusVariantAlsoNegotiates",
	"InsufficientStorage":           "http.StatusInsufficientStorage",
	"LoopDetected":                  "http.StatusLoopDetected",
	"NotExtended":                   "http.StatusNotExtended",
	"NetworkAuthenticationRequired": "http.StatusNetworkAuthenticationRequired",
}

// ResolveStatus returns the net/http constant expression for a -Status name.
// The match is exact.
func ResolveStatus(name string) (string, bool) {
	constant, ok := statusConstants[name]
	return constant, ok
}

// StatusNames returns every accepted -Status name in sorted order.
func StatusNames() []string {
	names := make([]string, 0, len(statusConstants))
	for name := range statusConstants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
