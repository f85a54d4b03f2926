// Package definition loads connector catalogs, either from the
// process-definition service over HTTP or from a local JSON file.
//
// The service is queried at
//
//	GET {baseURL}/api/processDefinitionData/{processingType}
//
// and the "edgesForNodes" field of the response is decoded into a
// [connector.Catalog]. Responses are cached and transient failures (network
// errors, 429, 5xx) are retried with exponential backoff.
package definition
