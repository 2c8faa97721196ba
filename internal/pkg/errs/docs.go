// Package errs holds the error vocabulary shared by the print farm core.
//
// Every error type pairs a sentinel (ErrValueIsInvalid, ErrObjectNotFound, ...)
// with a struct carrying the offending parameter and an optional cause. The
// struct's Unwrap returns the sentinel, so callers classify failures with
// errors.Is and read details with errors.As:
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    // notFound.ParamName == "product"
//	}
//
// Transport adapters map the sentinels onto status codes; domain packages add
// their own sentinels (insufficient stock, invalid transition) in the same shape.
package errs
