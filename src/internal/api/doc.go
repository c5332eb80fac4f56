// Package api provides the read-only status API of the updater's service mode.
//
// Endpoints:
//   - GET /health          liveness plus the result of the last run
//   - GET /api/v1/status   run counters and the last run outcome
//   - GET /api/v1/config   effective configuration with secrets masked
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "ERROR_CODE",
//	    "message": "Human-readable error message"
//	  }
//	}
//
// Access is restricted to loopback and private networks.
package api
