package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrorDuplicateRecord marks a unique business-key collision (mr_id, bill_id, trf_id, ...).
var ErrorDuplicateRecord = errors.New("duplicate record")

// ErrorInvalidAdjustment marks an adjustment outside [0, computed total].
var ErrorInvalidAdjustment = errors.New("invalid adjustment")

// ErrorInvalidInput marks a client-correctable business-rule failure.
var ErrorInvalidInput = errors.New("invalid input")

// ErrorResourceInUse marks a delete blocked by referencing records.
var ErrorResourceInUse = errors.New("resource in use")
