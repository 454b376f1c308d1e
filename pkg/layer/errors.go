package layer

import (
	"errors"
	"fmt"
)

// ErrSerialize and ErrDeserialize are the two failure classes of the wire
// codec. Every concrete failure wraps one of them so callers can match with
// errors.Is while logs keep the detail.
var (
	ErrSerialize   = errors.New("serialize error")
	ErrDeserialize = errors.New("deserialize error")
)

var (
	errSequenceNumberOverflow    = errors.New("sequence number overflow")
	errBufferTooSmall            = errors.New("buffer too small")
	errUnsupportedVersion        = errors.New("unsupported protocol version")
	errInvalidContentType        = errors.New("invalid record content type")
	errInvalidHandshakeType      = errors.New("invalid handshake type")
	errCookieTooLong             = errors.New("cookie too long")
	errLengthMismatch            = errors.New("length mismatch")
	errInvalidHashAlgorithm      = errors.New("invalid hash algorithm")
	errInvalidSignatureAlgorithm = errors.New("invalid signature algorithm")
	errInvalidCertificateType    = errors.New("invalid certificate type")
	errInvalidCompressionMethod  = errors.New("invalid compression method")
	errInvalidCurveType          = errors.New("curve type is not named_curve")
	errInvalidNamedCurve         = errors.New("invalid named curve")
	errDuplicateNamedGroup       = errors.New("duplicate named group")
	errHandshakeMessageUnset     = errors.New("handshake message unset")
	errUnableToMarshalFragmented = errors.New("unable to marshal fragmented")
)

func serializeErr(cause error) error {
	return fmt.Errorf("%w: %w", ErrSerialize, cause)
}

func deserializeErr(cause error) error {
	return fmt.Errorf("%w: %w", ErrDeserialize, cause)
}
