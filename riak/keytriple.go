package riak

import "strings"

// validateName rejects empty strings and anything containing a forward
// slash, the character Riak uses to separate path segments in its REST
// API and which the binary protocol forbids in bucket/key names by
// convention.
func validateName(field, value string) error {
	if value == "" {
		return &ValidationError{Reason: field + " must not be empty"}
	}
	if strings.Contains(value, "/") {
		return &ValidationError{Reason: field + " must not contain '/'"}
	}
	return nil
}

// validateKeyTriple validates a bucket-type (optional), bucket, and key.
func validateKeyTriple(bucketType, bucket, key string) error {
	if bucketType != "" {
		if err := validateName("bucket-type", bucketType); err != nil {
			return err
		}
	}
	if err := validateName("bucket", bucket); err != nil {
		return err
	}
	if err := validateName("key", key); err != nil {
		return err
	}
	return nil
}

// validateBucket validates a bucket-type (optional) and bucket only, for
// bucket-level operations that carry no key.
func validateBucket(bucketType, bucket string) error {
	if bucketType != "" {
		if err := validateName("bucket-type", bucketType); err != nil {
			return err
		}
	}
	return validateName("bucket", bucket)
}
