package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// Client errors (4xx)
	TagNotFound     = goerr.NewTag("not_found")     // 404
	TagValidation   = goerr.NewTag("validation")    // 400
	TagInvalidState = goerr.NewTag("invalid_state") // 409

	// Server errors (5xx)
	TagInternal = goerr.NewTag("internal") // 500
	TagExternal = goerr.NewTag("external") // 502/503
	TagTimeout  = goerr.NewTag("timeout")  // 504

	// Backend response errors
	TagInvalidLLMResponse = goerr.NewTag("invalid_llm_response")
	TagInvalidRequest     = goerr.NewTag("invalid_request")
)
