// Package httputil holds the JSON request and response helpers shared by
// the API handlers.
//
// Every error response has the same shape:
//
//	{"error": {"code": "INVALID_INPUT", "message": "input is not valid UTF-8"}}
//
// The status is derived from the error code with [errors.HTTPStatus], so
// handlers only return coded errors and never pick status codes by hand.
//
// [errors.HTTPStatus]: github.com/USQVE/bleprint/pkg/errors.HTTPStatus
package httputil
