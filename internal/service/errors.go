package service

import "errors"

// Kind classifies a domain failure so the HTTP layer can map it to a status
// code without parsing message text. The message strings themselves are part
// of the API contract and must not change.
type Kind int

const (
	KindMissingField Kind = iota + 1
	KindInvalidValue
	KindAlreadyExists
	KindNotFound
	KindForbidden
	KindInvalidCredential
	KindDuplicateReview
	KindStore
)

// DomainError is a classified failure with a caller-facing message.
type DomainError struct {
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// KindOf extracts the Kind from err, or 0 when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func errMissing(msg string) error {
	return &DomainError{Kind: KindMissingField, Message: msg}
}

func errInvalid(msg string) error {
	return &DomainError{Kind: KindInvalidValue, Message: msg}
}

func errExists(msg string) error {
	return &DomainError{Kind: KindAlreadyExists, Message: msg}
}

func errNotFound(msg string) error {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

func errForbidden(msg string) error {
	return &DomainError{Kind: KindForbidden, Message: msg}
}

func errCredential(msg string) error {
	return &DomainError{Kind: KindInvalidCredential, Message: msg}
}

func errDuplicate(msg string) error {
	return &DomainError{Kind: KindDuplicateReview, Message: msg}
}

func errStore(msg string) error {
	return &DomainError{Kind: KindStore, Message: msg}
}
