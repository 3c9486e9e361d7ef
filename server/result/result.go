// Package result contains the results that relay endpoints return and the
// logic for writing them out as HTTP responses.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every JSON error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// CommandErrorResponse is the body of the response sent when a submitted
// command line is malformed. Rule names the syntax rule the line broke and
// Input is the offending text.
type CommandErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
	Rule   string `json:"rule"`
	Input  string `json:"input"`
}

// internalFormat splits the optional internal message args that most
// constructors take into a format string and its arguments. def is used as the
// format string if none are given.
func internalFormat(def string, internalMsg []interface{}) (string, []interface{}) {
	if len(internalMsg) < 1 {
		return def, nil
	}
	return internalMsg[0].(string), internalMsg[1:]
}

// OK returns a Result containing an HTTP-200 along with a more detailed message
// (if desired; if none is provided it defaults to a generic one) that is not
// displayed to the user.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	format, args := internalFormat("OK", internalMsg)
	return Response(http.StatusOK, respObj, format, args...)
}

// NoContent returns a Result containing an HTTP-204.
func NoContent(internalMsg ...interface{}) Result {
	format, args := internalFormat("no content", internalMsg)
	return Response(http.StatusNoContent, nil, format, args...)
}

// Created returns a Result containing an HTTP-201.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	format, args := internalFormat("created", internalMsg)
	return Response(http.StatusCreated, respObj, format, args...)
}

// Conflict returns a Result containing an HTTP-409.
func Conflict(userMsg string, internalMsg ...interface{}) Result {
	format, args := internalFormat("conflict", internalMsg)
	return Err(http.StatusConflict, userMsg, format, args...)
}

// BadRequest returns a Result containing an HTTP-400.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	format, args := internalFormat("bad request", internalMsg)
	return Err(http.StatusBadRequest, userMsg, format, args...)
}

// BadCommand returns a Result containing an HTTP-400 whose body is a
// CommandErrorResponse.
func BadCommand(userMsg, rule, input string, internalMsg ...interface{}) Result {
	format, args := internalFormat("bad command", internalMsg)

	r := Err(http.StatusBadRequest, userMsg, format, args...)
	r.resp = CommandErrorResponse{
		Error:  userMsg,
		Status: http.StatusBadRequest,
		Rule:   rule,
		Input:  input,
	}
	return r
}

// MethodNotAllowed returns a Result containing an HTTP-405.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	format, args := internalFormat("method not allowed", internalMsg)
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, format, args...)
}

// NotFound returns a Result containing an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	format, args := internalFormat("not found", internalMsg)
	return Err(http.StatusNotFound, "The requested resource was not found", format, args...)
}

// Forbidden returns a Result containing an HTTP-403.
func Forbidden(internalMsg ...interface{}) Result {
	format, args := internalFormat("forbidden", internalMsg)
	return Err(http.StatusForbidden, "You don't have permission to do that", format, args...)
}

// Unauthorized returns a Result containing an HTTP-401 along with the proper
// WWW-Authenticate header. If userMsg is empty a generic one is used.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	format, args := internalFormat("unauthorized", internalMsg)

	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}

	return Err(http.StatusUnauthorized, userMsg, format, args...).
		WithHeader("WWW-Authenticate", `Bearer realm="Salvo relay", charset="utf-8"`)
}

// InternalServerError returns a Result containing an HTTP-500. If internalMsg
// is provided the first argument must be a format string and the rest are its
// arguments.
func InternalServerError(internalMsg ...interface{}) Result {
	format, args := internalFormat("internal server error", internalMsg)
	return Err(http.StatusInternalServerError, "An internal server error occurred", format, args...)
}

// Response returns a successful JSON Result. If status is http.StatusNoContent,
// respObj is not read and may be nil.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       false,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

// Err returns an error Result whose body is an ErrorResponse.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Redirection returns a Result that permanently redirects the client to uri.
func Redirection(uri string) Result {
	return Result{
		Status:      http.StatusPermanentRedirect,
		InternalMsg: fmt.Sprintf("redirect -> %s", uri),
		redir:       uri,
	}
}

// TextErr is like Err but writes userMsg as plain text with no JSON encoding.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsJSON:      false,
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

// Result is the outcome of an endpoint. InternalMsg is logged but never sent to
// the client.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp  interface{}
	redir string // only used for redirects
	hdrs  [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// Body returns the object that will be written as the response body.
func (r Result) Body() interface{} {
	return r.resp
}

// WithHeader returns a copy of r that also sets the given header.
func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(cp.hdrs, r.hdrs)
	cp.hdrs = append(cp.hdrs, [2]string{name, val})
	return cp
}

// PrepareMarshaledResponse marshals the response body if the Result is JSON.
// Calling it again after a successful call has no effect.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent && r.redir == "" {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes r to w. It panics if r was never populated or its body
// cannot be marshaled.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	err := r.PrepareMarshaledResponse()
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte

	if r.redir != "" {
		w.Header().Set("Location", r.redir)
	} else if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		respBytes = r.respJSONBytes
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}
